package controller

import (
	"errors"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"
	"reflecta-journal-be/pkg/voice"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{
		voiceService: voiceService,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("start", c.Start)
	h.Post("stop", c.Stop)
	h.Get("state", c.State)
	h.Post("clear", c.Clear)
}

func (c *voiceController) Start(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartVoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.voiceService.Start(ctx.Context(), userId, &req)
	if err != nil {
		// Unsupported environments and acquisition failures answer with the
		// session's error state rather than a 500.
		if errors.Is(err, voice.ErrNotSupported) || errors.Is(err, voice.ErrAlreadyRecording) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.SuccessResponse("Voice capture unavailable", res))
		}
		if res != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.SuccessResponse("Voice capture failed to start", res))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start voice capture", res))
}

func (c *voiceController) Stop(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.voiceService.Stop(ctx.Context(), userId)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success stop voice capture", res))
}

func (c *voiceController) State(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	return ctx.JSON(serverutils.SuccessResponse("Success get voice state", c.voiceService.State(userId)))
}

func (c *voiceController) Clear(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	return ctx.JSON(serverutils.SuccessResponse("Success clear transcript", c.voiceService.ClearTranscript(userId)))
}

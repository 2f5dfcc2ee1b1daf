package controller

import (
	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISpeechController interface {
	RegisterRoutes(r fiber.Router)
	Synthesize(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
}

type speechController struct {
	speechService service.ISpeechService
}

func NewSpeechController(speechService service.ISpeechService) ISpeechController {
	return &speechController{
		speechService: speechService,
	}
}

func (c *speechController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/speech/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("synthesize", c.Synthesize)
	h.Post("stop", c.Stop)
}

func (c *speechController) Synthesize(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SynthesizeSpeechRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.speechService.Synthesize(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	// Raw audio goes out as the body; the native directive stays JSON.
	if !res.UseNative && ctx.Query("raw") == "true" {
		ctx.Set(fiber.HeaderContentType, res.ContentType)
		return ctx.Send(res.Audio)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success synthesize speech", res))
}

func (c *speechController) Stop(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	c.speechService.Stop(userId)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success stop speech", nil))
}

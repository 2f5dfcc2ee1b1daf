package controller

import (
	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDialogueController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type dialogueController struct {
	dialogueService service.IDialogueService
}

func NewDialogueController(dialogueService service.IDialogueService) IDialogueController {
	return &dialogueController{
		dialogueService: dialogueService,
	}
}

func (c *dialogueController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dialogue/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Send)
}

func (c *dialogueController) Send(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendDialogueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogueService.Send(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send dialogue", res))
}

package controller

import (
	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Activate(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	AddUserMessage(ctx *fiber.Ctx) error
	AddAIMessage(ctx *fiber.Ctx) error
	AddExchange(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	GetLast(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IChatHistoryService
}

func NewHistoryController(historyService service.IChatHistoryService) IHistoryController {
	return &historyController{
		historyService: historyService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("activate", c.Activate)
	h.Get("", c.State)
	h.Get("last", c.GetLast)
	h.Post("user-message", c.AddUserMessage)
	h.Post("ai-message", c.AddAIMessage)
	h.Post("exchange", c.AddExchange)
	h.Delete("", c.Clear)
}

func (c *historyController) Activate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.historyService.Activate(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success activate history", res))
}

func (c *historyController) State(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	return ctx.JSON(serverutils.SuccessResponse("Success get history", c.historyService.State(userId)))
}

func (c *historyController) AddUserMessage(ctx *fiber.Ctx) error {
	return c.addMessage(ctx, true)
}

func (c *historyController) AddAIMessage(ctx *fiber.Ctx) error {
	return c.addMessage(ctx, false)
}

func (c *historyController) addMessage(ctx *fiber.Ctx, isUser bool) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.AddHistoryMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var err error
	if isUser {
		err = c.historyService.AddUserMessage(ctx.Context(), userId, req.Text)
	} else {
		err = c.historyService.AddAIMessage(ctx.Context(), userId, req.Text)
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success add message", nil))
}

func (c *historyController) AddExchange(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.AddExchangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.historyService.AddExchange(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success add exchange", nil))
}

func (c *historyController) Clear(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.historyService.ClearHistory(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear history", nil))
}

func (c *historyController) GetLast(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	n := ctx.QueryInt("n", 10)

	res, err := c.historyService.GetLastMessages(ctx.Context(), userId, n)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get last messages", res))
}

package controller

import (
	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	GetByDate(ctx *fiber.Ctx) error
	GetGrouped(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	LastError(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatMessageService
}

func NewChatController(chatService service.IChatMessageService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("message", c.Send)
	h.Get("messages", c.GetAll)
	h.Get("messages/by-date", c.GetByDate)
	h.Get("messages/grouped", c.GetGrouped)
	h.Get("last-error", c.LastError)
	h.Delete("message/:id", c.Delete)
	h.Delete("messages", c.Clear)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 100)

	res, err := c.chatService.GetAll(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) GetByDate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	date := ctx.Query("date")
	if date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "date query parameter is required")
	}

	res, err := c.chatService.GetByDate(ctx.Context(), userId, date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages by date", res))
}

func (c *chatController) GetGrouped(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.chatService.GetGrouped(ctx.Context(), userId, ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get grouped messages", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.chatService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete message", nil))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.chatService.Clear(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear messages", nil))
}

func (c *chatController) LastError(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	return ctx.JSON(serverutils.SuccessResponse("Success get last error", fiber.Map{
		"last_error": c.chatService.LastError(userId),
	}))
}

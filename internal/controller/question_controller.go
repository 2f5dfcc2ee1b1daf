package controller

import (
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router)
	GetDaily(ctx *fiber.Ctx) error
}

type questionController struct {
	questionService service.IQuestionService
}

func NewQuestionController(questionService service.IQuestionService) IQuestionController {
	return &questionController{
		questionService: questionService,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/question/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("daily", c.GetDaily)
}

func (c *questionController) GetDaily(ctx *fiber.Ctx) error {
	res, err := c.questionService.GetDailyQuestion(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get daily question", res))
}

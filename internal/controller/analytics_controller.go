package controller

import (
	"reflecta-journal-be/internal/pkg/serverutils"
	"reflecta-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
}

type analyticsController struct {
	analyticsService service.IAnalyticsService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService) IAnalyticsController {
	return &analyticsController{
		analyticsService: analyticsService,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Get)
}

func (c *analyticsController) Get(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	period := ctx.Query("period", "week")

	res, err := c.analyticsService.GetAnalytics(ctx.Context(), userId, period)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analytics", res))
}

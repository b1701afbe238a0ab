package controller

import (
	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/internal/pkg/serverutils"
	"ai-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChartController interface {
	RegisterRoutes(r fiber.Router)
	Auto(ctx *fiber.Ctx) error
	Custom(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type chartController struct {
	service service.IChartService
}

func NewChartController(service service.IChartService) IChartController {
	return &chartController{service: service}
}

func (c *chartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chart/v1")
	h.Post("/auto", c.Auto)
	h.Post("/custom", c.Custom)
	h.Get("", c.List)
}

func (c *chartController) Auto(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Auto(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Charts recommended", res))
}

func (c *chartController) Custom(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.CustomChartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("body", "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Custom(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chart created", res))
}

func (c *chartController) List(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session charts", res))
}

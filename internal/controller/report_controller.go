package controller

import (
	"errors"
	"io/fs"

	"ai-analytics-be/internal/pkg/serverutils"
	"ai-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Post("", c.Generate)
	h.Get("/:filename", c.Download)
}

func (c *reportController) Generate(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Report generated", res))
}

func (c *reportController) Download(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	path, err := c.service.Download(ctx.Context(), sessionID, ctx.Params("filename"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		return err
	}

	return ctx.Download(path)
}

package controller

import (
	"io"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/internal/pkg/serverutils"
	"ai-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDatasetController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	CleaningNeeds(ctx *fiber.Ctx) error
	Clean(ctx *fiber.Ctx) error
}

type datasetController struct {
	service service.IDatasetService
}

func NewDatasetController(service service.IDatasetService) IDatasetController {
	return &datasetController{service: service}
}

func (c *datasetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dataset/v1")
	h.Post("/upload", c.Upload)
	h.Get("/cleaning/needs", c.CleaningNeeds)
	h.Post("/clean", c.Clean)
}

func (c *datasetController) Upload(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.NewValidation("file", "multipart file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), sessionID, fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Dataset uploaded", res))
}

func (c *datasetController) CleaningNeeds(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CleaningNeeds(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Cleaning needs", res))
}

func (c *datasetController) Clean(ctx *fiber.Ctx) error {
	sessionID, err := serverutils.SessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.CleanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidation("body", "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ApplyCleaning(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Cleaning applied", res))
}

package controller

import (
	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/serverutils"
	"ai-transcript-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlaygroundController interface {
	RegisterRoutes(r fiber.Router)
	TestExtract(ctx *fiber.Ctx) error
	Prompt(ctx *fiber.Ctx) error
}

type playgroundController struct {
	playgroundService service.IPlaygroundService
}

func NewPlaygroundController(playgroundService service.IPlaygroundService) IPlaygroundController {
	return &playgroundController{
		playgroundService: playgroundService,
	}
}

func (c *playgroundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/test")
	h.Post("/extract", c.TestExtract)
	h.Get("/prompt", c.Prompt)
}

func (c *playgroundController) TestExtract(ctx *fiber.Ctx) error {
	var req dto.TestExtractionRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.playgroundService.Run(ctx.UserContext(), &req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindUnavailable {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":    err.Error(),
				"entities": []interface{}{},
			})
		}
		return err
	}
	return ctx.JSON(res)
}

func (c *playgroundController) Prompt(ctx *fiber.Ctx) error {
	return ctx.JSON(c.playgroundService.Prompt(ctx.UserContext()))
}

package controller

import (
	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/pkg/serverutils"
	"ai-transcript-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILLMConfigController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type llmConfigController struct {
	llmConfigService service.ILLMConfigService
}

func NewLLMConfigController(llmConfigService service.ILLMConfigService) ILLMConfigController {
	return &llmConfigController{
		llmConfigService: llmConfigService,
	}
}

func (c *llmConfigController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/config")
	h.Get("/llm", c.Get)
	h.Put("/llm", c.Update)
}

func (c *llmConfigController) Get(ctx *fiber.Ctx) error {
	return ctx.JSON(c.llmConfigService.Get(ctx.UserContext()))
}

func (c *llmConfigController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateLLMConfigRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.llmConfigService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

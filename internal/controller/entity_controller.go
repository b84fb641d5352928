package controller

import (
	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/pkg/serverutils"
	"ai-transcript-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEntityController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Merge(ctx *fiber.Ctx) error
}

type entityController struct {
	entityService service.IEntityService
}

func NewEntityController(entityService service.IEntityService) IEntityController {
	return &entityController{
		entityService: entityService,
	}
}

func (c *entityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/entities")
	h.Get("", c.List)
	// merge before :id so "merge" is never read as an id
	h.Post("/merge", c.Merge)
	h.Put("/merge", c.Merge)
	h.Put("/:id", c.Update)
}

func (c *entityController) List(ctx *fiber.Ctx) error {
	res, err := c.entityService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *entityController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateEntityRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.entityService.Update(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse())
}

func (c *entityController) Merge(ctx *fiber.Ctx) error {
	var req dto.MergeEntitiesRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.entityService.Merge(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

package controller

import (
	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/serverutils"
	"ai-transcript-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Entities(ctx *fiber.Ctx) error
	ExtractEntities(ctx *fiber.Ctx) error
}

type messageController struct {
	messageService service.IMessageService
}

func NewMessageController(messageService service.IMessageService) IMessageController {
	return &messageController{
		messageService: messageService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	r.Get("/stats", c.Stats)

	h := r.Group("/messages")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/entities", c.Entities)
	h.Post("/:id/extract-entities", c.ExtractEntities)
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	req := dto.ListMessagesRequest{
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	}

	res, err := c.messageService.List(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *messageController) Stats(ctx *fiber.Ctx) error {
	res, err := c.messageService.Stats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *messageController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *messageController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *messageController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.messageService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse())
}

func (c *messageController) Entities(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.messageService.Entities(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// ExtractEntities reports its own failures with an empty entity list rather than going
// through the error middleware.
func (c *messageController) ExtractEntities(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.messageService.ExtractEntities(ctx.UserContext(), id)
	if err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return err
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ExtractEntitiesResponse{
			Success:  false,
			Entities: []dto.EntityResponse{},
			Error:    err.Error(),
		})
	}
	return ctx.JSON(res)
}

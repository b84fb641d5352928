package controller

import (
	"ai-transcript-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const defaultLogLimit = 100

type ILogController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type logController struct {
	logger logger.ILogger
}

func NewLogController(logger logger.ILogger) ILogController {
	return &logController{
		logger: logger,
	}
}

func (c *logController) RegisterRoutes(r fiber.Router) {
	r.Get("/logs", c.List)
}

func (c *logController) List(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", defaultLogLimit)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(logs)
}

package controller

import (
	"strconv"

	"ai-transcript-notes-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

func parseIdParam(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid id")
	}
	return id, nil
}

package serverutils

import (
	"errors"
	"net/http"

	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into {"error": "..."} responses.
// Internal errors are logged with their cause and reported with a generic message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			status := statusFor(appErr.Kind)
			if status >= http.StatusInternalServerError {
				log.Error("HTTP", appErr.Message, map[string]interface{}{
					"path":   c.Path(),
					"method": c.Method(),
					"error":  err.Error(),
				})
			}
			return c.Status(status).JSON(ErrorResponse(appErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":   c.Path(),
			"method": c.Method(),
			"error":  err.Error(),
		})
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
	}
}

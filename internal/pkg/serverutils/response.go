package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body of every failed request.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}

// SuccessResponse is the body of mutations that return nothing else.
func SuccessResponse() fiber.Map {
	return fiber.Map{"success": true}
}

package serverutils

import "github.com/gofiber/fiber/v2"

func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"code":  code,
		"error": message,
	}
}

func ValidationErrorResponse(details []ErrorDetail) fiber.Map {
	return fiber.Map{
		"code":   fiber.StatusBadRequest,
		"error":  "validation failed",
		"fields": details,
	}
}

package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// jsonError writes the uniform error body used across the API. Internal
// details stay in the logs; callers only see the generic code and message.
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func internalError(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Something went wrong")
}

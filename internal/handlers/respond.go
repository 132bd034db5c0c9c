package handlers

import (
	"errors"
	"log"

	"freshcart/internal/repositories"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the response envelope. Validation
// and not-found errors carry their specific message to the caller; anything
// else is a store failure and returns a generic message without leaking
// internals.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, repositories.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "The resource was modified concurrently, please retry",
		})
	default:
		log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

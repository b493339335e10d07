package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
)

// ErrorHandler shapes every error that escapes a handler, including panics
// recovered by the recover middleware, into the service's error payload.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}

package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler turns any error escaping a handler into the JSON {message}
// contract. Unexpected errors stay generic; the detail is already logged
// where they happened.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		logrus.WithError(err).Error("unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}

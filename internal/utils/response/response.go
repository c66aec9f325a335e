package response

import (
	goerrors "errors"

	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/errors"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError maps a service error to its HTTP response. Domain errors carry
// their own status and code; anything else is an unexpected server failure.
func FromError(c *fiber.Ctx, err error) error {
	var de *errors.DomainError
	if goerrors.As(err, &de) {
		return c.Status(de.Status).JSON(fiber.Map{
			"error": de.Message,
			"code":  de.Code,
		})
	}
	return ServerError(c, "something went wrong, please try again")
}

package presenters

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the failure envelope every endpoint shares. The err
// detail wins over the generic message when present; storage-layer causes are
// already summarized by the services, so nothing sensitive leaks here.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	errMsg := message
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   errMsg,
	})
}

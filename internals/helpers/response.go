package helper

import (
	"github.com/gofiber/fiber/v2"
)

// JSON envelope shared by every handler: {code, status, message, data|errors}.

func JsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

func JsonCreated(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusCreated, message, data)
}

func JsonUpdated(c *fiber.Ctx, message string, data interface{}) error {
	return jsonSuccess(c, fiber.StatusOK, message, data)
}

func JsonDeleted(c *fiber.Ctx, message string) error {
	return jsonSuccess(c, fiber.StatusOK, message, nil)
}

func JsonList(c *fiber.Ctx, message string, data interface{}, pagination Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":       fiber.StatusOK,
		"status":     "success",
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

func jsonSuccess(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// JsonValidationError renders a FieldErrors map next to a 422, one message
// list per offending field.
func JsonValidationError(c *fiber.Ctx, fieldErrors FieldErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"code":    fiber.StatusUnprocessableEntity,
		"status":  "error",
		"message": "Validation failed.",
		"errors":  fieldErrors,
	})
}

// FromFiberError converts an error bubbling out of a transaction (usually a
// *fiber.Error) into the consistent JSON envelope. Anything else becomes 500
// without leaking internals.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Something went wrong.")
}

package middleware

import (
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes the success envelope with the HTTP status mirrored in
// the body.
func JsonResponse(c *fiber.Ctx, statusCode int, msg string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"status":  statusCode,
		"msg":     msg,
	}
	for k, v := range toMap(data) {
		body[k] = v
	}
	return c.Status(statusCode).JSON(body)
}

// ErrorResponse maps a typed service error to the error envelope.
func ErrorResponse(c *fiber.Ctx, err error) error {
	status, msg := utils.StatusOf(err)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"status":  status,
		"msg":     msg,
	})
}

// ValidationErrorResponse reports per-field validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"status":  fiber.StatusBadRequest,
		"msg":     "Validation failed!",
		"errors":  errors,
	})
}

func toMap(data interface{}) fiber.Map {
	if data == nil {
		return nil
	}
	if m, ok := data.(fiber.Map); ok {
		return m
	}
	return fiber.Map{"data": data}
}

package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validationError turns validator.v10 failures into the field->tag map
// the panel shows inline.
func validationError(c *fiber.Ctx, err error) error {
	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range verrs {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Проверьте правильность заполнения полей",
		"fields": fields,
	})
}

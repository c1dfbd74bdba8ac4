package serverutils

import (
	"errors"

	"ai-brain-be/internal/entity"
	"ai-brain-be/pkg/ai/gateway"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// StatusFor maps a domain error to an HTTP status and a message safe to show.
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	var gatewayErr *gateway.Error

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.Is(err, entity.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, entity.ErrRequestInFlight):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrConfirmationRequired):
		return fiber.StatusBadRequest, err.Error()
	case errors.As(err, &gatewayErr):
		if gatewayErr.Kind == gateway.KindValidation {
			return fiber.StatusBadRequest, gatewayErr.Message
		}
		return fiber.StatusInternalServerError, gatewayErr.Message
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

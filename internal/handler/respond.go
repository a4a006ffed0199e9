package handler

import (
	"errors"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/service"

	"github.com/gofiber/fiber/v2"
)

// fail maps the service error taxonomy to HTTP responses. Handlers never
// inspect error strings.
func fail(c *fiber.Ctx, err error) error {
	var (
		validation *apperr.ValidationError
		notFound   *apperr.NotFoundError
		invalid    *apperr.InvalidStateError
		mismatch   *apperr.PaymentMismatchError
		duplicate  *apperr.DuplicateKeyError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validation.Error(),
			"error":   "VALIDATION_ERROR",
		})

	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
			"error":   "NOT_FOUND",
		})

	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": invalid.Error(),
			"error":   "INVALID_STATE",
		})

	case errors.As(err, &mismatch):
		body := fiber.Map{
			"message":  mismatch.Error(),
			"error":    "PAYMENT_MISMATCH",
			"required": mismatch.Required,
			"provided": mismatch.Provided,
		}
		if d := mismatch.Difference(); d < 0 {
			body["shortage"] = -d
		} else {
			body["excess"] = d
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)

	case errors.As(err, &duplicate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": duplicate.Error(),
			"error":   "DUPLICATE_KEY_ERROR",
		})

	case errors.Is(err, apperr.ErrTransactionFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "operation could not be completed, no changes were made",
			"error":   "TRANSACTION_FAILURE",
		})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// actor returns the authenticated user's email for audit fields
// (set by the RequireAuth middleware).
func actor(c *fiber.Ctx) string {
	email := c.Locals("user_email")
	if email == nil {
		return "system"
	}
	return email.(string)
}

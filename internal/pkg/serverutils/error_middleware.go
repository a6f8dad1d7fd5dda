package serverutils

import (
	"errors"

	"ai-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors surfaced by controllers into
// consistent JSON error bodies. Service sentinel errors get their
// documented status codes, fiber errors keep theirs, everything else
// is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		switch {
		case errors.Is(err, service.ErrConfirmationExpired):
			status = fiber.StatusGone
		case errors.Is(err, service.ErrConversationNotFound),
			errors.Is(err, service.ErrTenantNotFound),
			errors.Is(err, service.ErrContactNotFound),
			errors.Is(err, service.ErrBoletoNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, service.ErrContactOptedOut),
			errors.Is(err, service.ErrBoletoAlreadyPaid),
			errors.Is(err, service.ErrBoletoAlreadyCancelled),
			errors.Is(err, service.ErrNotConfirmed):
			status = fiber.StatusConflict
		case errors.Is(err, service.ErrEmailTaken):
			status = fiber.StatusConflict
		case errors.Is(err, service.ErrInvalidCredentials):
			status = fiber.StatusUnauthorized
		case errors.Is(err, service.ErrTenantMismatch):
			status = fiber.StatusForbidden
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}

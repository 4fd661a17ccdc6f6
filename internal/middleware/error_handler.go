package middleware

import (
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Typed application errors keep
// their code and status; everything else is a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return response.Error(c, appErr)
	}
	if e, ok := err.(*fiber.Error); ok {
		return response.Error(c, &apperrors.Error{
			Code:    apperrors.CodeInternal,
			Status:  e.Code,
			Message: e.Message,
		})
	}
	log.Error().Str("trace_id", GetTraceID(c)).Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return response.Error(c, apperrors.Internal("Internal server error"))
}

package errorhandler

import (
	"context"
	"net/http"

	"github.com/ua-volunteer/volunteer-api/internal/pkg/logger"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
)

// Internal reports an unexpected failure of op as a 500 without leaking err to the client.
func Internal(ctx context.Context, w http.ResponseWriter, op string, err error) {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("operation", op).
		Msg("Request failed")

	response.InternalError(w)
}

// LogValidationError logs field errors at warn level and sends a 422.
func LogValidationError(ctx context.Context, w http.ResponseWriter, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")

	response.ValidationError(w, fieldErrors)
}

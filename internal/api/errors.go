package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/generation"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/session"
	"github.com/phrazzld/scry-study/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var genErr *generation.GenerationError

	switch {
	case errors.Is(err, session.ErrInvalidToken),
		errors.Is(err, session.ErrExpiredToken),
		errors.Is(err, session.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrNoActiveQuiz):
		return http.StatusConflict

	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, generation.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Everything the completion round trip can produce is an upstream failure.
	case errors.Is(err, completion.ErrTransport),
		errors.Is(err, completion.ErrMalformedResponse),
		errors.Is(err, generation.ErrUnexpectedFormat),
		errors.Is(err, generation.ErrInvalidCard),
		errors.As(err, &genErr):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var genErr *generation.GenerationError

	switch {
	case errors.Is(err, session.ErrMissingToken):
		return "Quiz token is required"
	case errors.Is(err, session.ErrExpiredToken):
		return "Quiz token has expired"
	case errors.Is(err, session.ErrInvalidToken):
		return "Invalid quiz token"

	case errors.Is(err, service.ErrNoActiveQuiz):
		return "No active quiz"

	case errors.Is(err, service.ErrDeckNotFound), errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, service.ErrEmptySourceText):
		return "Source text is required"
	case errors.Is(err, service.ErrInvalidCount):
		return "Count must be a whole number"
	case errors.Is(err, service.ErrCountOutOfRange), errors.Is(err, generation.ErrInvalidArgument):
		return "Count is out of range"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, completion.ErrContentBlocked):
		return "The completion service refused to process this text"
	case errors.Is(err, completion.ErrTransport):
		return "The completion service could not be reached"
	case errors.Is(err, completion.ErrMalformedResponse),
		errors.Is(err, generation.ErrUnexpectedFormat),
		errors.Is(err, generation.ErrInvalidCard),
		errors.As(err, &genErr):
		return "The completion service returned an unusable response"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted detail. fallback replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateRequest.Count' Error:Field validation for 'Count' failed on the 'min' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	default:
		return "validation failed"
	}
}

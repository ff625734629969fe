package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/ads-api/internal/api/shared"
	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/service"
	"github.com/phrazzld/ads-api/internal/service/auth"
	"github.com/phrazzld/ads-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &verrs),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Internal server error"
	}

	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &verrs),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthenticated):
		return "Not authenticated"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not have permission to modify this advertisement"

	case errors.Is(err, store.ErrAdvertisementNotFound):
		return "Advertisement not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrUserExists):
		return "Username or email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	default:
		return "Internal server error"
	}
}

// ValidationDetails flattens domain and request validation failures into
// per-field details. It returns nil if err carries no field information.
func ValidationDetails(err error) []shared.FieldError {
	var details []shared.FieldError

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details = append(details, shared.FieldError{
				Field:   fe.Field(),
				Message: validationTagMessage(fe),
			})
		}
		return details
	}

	var domainErrs domain.ValidationErrors
	if errors.As(err, &domainErrs) {
		for _, ve := range domainErrs {
			details = append(details, shared.FieldError{Field: ve.Field, Message: ve.Message})
		}
		return details
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return []shared.FieldError{{Field: ve.Field, Message: ve.Message}}
	}

	return nil
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return "is invalid"
	}
}

// HandleAPIError writes the response for err. Validation failures carry
// per-field details; everything else gets the safe message for its status.
// A non-empty fallback replaces the generic message on 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	if status == http.StatusBadRequest {
		if details := ValidationDetails(err); len(details) > 0 {
			shared.RespondWithValidationError(w, r, details)
			return
		}
	}

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

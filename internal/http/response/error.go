package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/bucketlist/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details,omitempty"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationFailed sends a 400 validation error with field details.
func ValidationFailed(w http.ResponseWriter, field, issue string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []ErrorField{
				{Field: field, Issue: issue},
			},
		},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// Forbidden sends a 403 Forbidden error.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, "FORBIDDEN", message, http.StatusForbidden)
}

// Conflict sends a 409 Conflict error.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, "CONFLICT", message, http.StatusConflict)
}

// UnprocessableEntity sends a 422 for business rule violations.
func UnprocessableEntity(w http.ResponseWriter, message string) {
	Error(w, "BUSINESS_RULE_VIOLATION", message, http.StatusUnprocessableEntity)
}

// InternalError sends a 500 Internal Server Error.
// Logs the error server-side with request context but returns a generic
// message to the client to prevent information disclosure.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error", "error", err)
	}
	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// Error sends a generic error response.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// FromDomainError maps the error taxonomy to HTTP responses. Each
// variant has exactly one status code; unknown errors become a generic
// 500 with the detail logged server-side only.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthenticationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		ruleErr       *domain.BusinessRuleError
		networkErr    *domain.NetworkError
		dbErr         *domain.DatabaseError
	)

	switch {
	case errors.As(err, &validationErr):
		ValidationFailed(w, validationErr.Field, validationErr.Message)
	case errors.As(err, &authErr):
		if authErr.Reason == domain.AuthReasonInsufficientPermissions {
			Forbidden(w, authErr.Message)
			return
		}
		Unauthorized(w, "invalid or expired API key")
	case errors.As(err, &notFoundErr):
		NotFound(w, notFoundErr.Resource)
	case errors.As(err, &conflictErr):
		Conflict(w, conflictErr.Message)
	case errors.As(err, &ruleErr):
		UnprocessableEntity(w, ruleErr.Message)
	case errors.As(err, &networkErr):
		slog.ErrorContext(r.Context(), "upstream unavailable", "error", err)
		Error(w, "UPSTREAM_UNAVAILABLE", "a dependency is unavailable", http.StatusBadGateway)
	case errors.As(err, &dbErr):
		InternalError(w, r, err)
	default:
		InternalError(w, r, err)
	}
}

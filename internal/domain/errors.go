package domain

import (
	"errors"
	"fmt"
)

// The error taxonomy: eight mutually exclusive variants that form the
// single failure vocabulary of the application. Every failure from the
// store, validation, or business-rule checks is mapped into exactly one
// of these before it crosses the service boundary; no raw driver error
// escapes the persistence layer.
//
// Constructors never fail and fill defaults; the Is* guards are total
// over any error value (errors.As through wrap chains).

// AuthFailureReason classifies authentication failures.
type AuthFailureReason string

const (
	AuthReasonInvalidCredentials      AuthFailureReason = "invalid_credentials"
	AuthReasonTokenExpired            AuthFailureReason = "token_expired"
	AuthReasonInsufficientPermissions AuthFailureReason = "insufficient_permissions"
	AuthReasonUserNotFound            AuthFailureReason = "user_not_found"
)

// ValidationError reports a structurally invalid field value.
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError. Code may be empty.
func NewValidationError(field, message, code string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Code: code}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// DatabaseError reports a persistence failure other than row-not-found.
// Code carries the store's error code when known; Operation names the
// repository operation that failed.
type DatabaseError struct {
	Message   string
	Code      string
	Operation string
}

func (e *DatabaseError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("database error in %s: %s", e.Operation, e.Message)
	}
	return "database error: " + e.Message
}

func NewDatabaseError(message, code, operation string) *DatabaseError {
	return &DatabaseError{Message: message, Code: code, Operation: operation}
}

func IsDatabaseError(err error) bool {
	var target *DatabaseError
	return errors.As(err, &target)
}

// AuthenticationError reports an identity or permission failure.
type AuthenticationError struct {
	Message string
	Reason  AuthFailureReason
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (%s): %s", e.Reason, e.Message)
}

func NewAuthenticationError(message string, reason AuthFailureReason) *AuthenticationError {
	if message == "" {
		message = "authentication failed"
	}
	return &AuthenticationError{Message: message, Reason: reason}
}

func IsAuthenticationError(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// NotFoundError reports a missing resource for operations where absence
// is an error (update, delete). Lookups where absence is a normal outcome
// (FindByID, GetUserStats) return nil instead.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError creates a NotFoundError. When message is empty it is
// templated from resource and id.
func NewNotFoundError(resource, id, message string) *NotFoundError {
	if message == "" {
		if id != "" {
			message = fmt.Sprintf("%s %s not found", resource, id)
		} else {
			message = resource + " not found"
		}
	}
	return &NotFoundError{Resource: resource, ID: id, Message: message}
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ConflictError reports a uniqueness or concurrent-modification conflict.
type ConflictError struct {
	Resource        string
	Message         string
	ConflictingData map[string]any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Message)
}

func NewConflictError(resource, message string, conflictingData map[string]any) *ConflictError {
	if message == "" {
		message = resource + " already exists"
	}
	return &ConflictError{Resource: resource, Message: message, ConflictingData: conflictingData}
}

func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// NetworkError reports a transport-level failure reaching an external
// collaborator.
type NetworkError struct {
	Message    string
	StatusCode int
	URL        string
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error (%d): %s", e.StatusCode, e.Message)
	}
	return "network error: " + e.Message
}

func NewNetworkError(message string, statusCode int, url string) *NetworkError {
	return &NetworkError{Message: message, StatusCode: statusCode, URL: url}
}

func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// BusinessRuleError reports a domain rule violation on structurally valid
// input.
type BusinessRuleError struct {
	Rule    string
	Message string
	Context map[string]any
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]any) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

func IsBusinessRuleError(err error) bool {
	var target *BusinessRuleError
	return errors.As(err, &target)
}

// ApplicationError is the generic variant for failures that fit no other
// case. Cause, when set, participates in errors.Is/As chains via Unwrap.
type ApplicationError struct {
	Message string
	Cause   error
	Context map[string]any
}

func (e *ApplicationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ApplicationError) Unwrap() error {
	return e.Cause
}

func NewApplicationError(message string, cause error, context map[string]any) *ApplicationError {
	if message == "" {
		message = "internal application error"
	}
	return &ApplicationError{Message: message, Cause: cause, Context: context}
}

func IsApplicationError(err error) bool {
	var target *ApplicationError
	return errors.As(err, &target)
}

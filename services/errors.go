package services

import (
	"errors"
	"fmt"

	"github.com/nexohub/nexohub-api/security"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeBadRequest      ErrorType = "bad_request"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeInternal        ErrorType = "internal"
	ErrorTypePolicyViolation ErrorType = "policy_violation"
)

// DomainError represents a structured error with additional context.
// Message is safe to show to the caller; Err is only logged.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail returns a copy of the error carrying an extra detail.
// The receiver is left untouched so package-level errors stay immutable.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Type: e.Type, Message: e.Message, Err: e.Err, Details: details}
}

// Because returns a copy of the error with err recorded as the private cause.
func (e *DomainError) Because(err error) *DomainError {
	return &DomainError{Type: e.Type, Message: e.Message, Err: err, Details: e.Details}
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Not Found Errors
	ErrUserNotFound       = NewDomainError(ErrorTypeNotFound, "User not found", nil)
	ErrParkingLotNotFound = NewDomainError(ErrorTypeNotFound, "ParkingLot not found", nil)

	// Validation Errors
	ErrInvalidInput = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrInvalidEmail = NewDomainError(ErrorTypeValidation, "invalid email format", nil)
	ErrInvalidRole  = NewDomainError(ErrorTypeValidation, "invalid role", nil)

	ErrPasswordTooLong = NewDomainError(ErrorTypeValidation, "Password is too long.", nil)

	// Bad Request Errors
	ErrTenantNotAssigned = NewDomainError(ErrorTypeBadRequest, "parking_admin has no tenant assigned", nil)
	ErrNotTenantAdmin    = NewDomainError(ErrorTypeBadRequest, "User is not parking_admin", nil)

	// Authentication Errors. Every cause shares one public message.
	ErrUnauthorized       = NewDomainError(ErrorTypeUnauthorized, "Could not validate credentials", nil)
	ErrInvalidCredentials = NewDomainError(ErrorTypeUnauthorized, "Invalid credentials.", nil)

	// Permission Errors
	ErrForbidden = NewDomainError(ErrorTypeForbidden, "Not enough permissions", nil)

	// Conflict Errors
	ErrDuplicateEmail = NewDomainError(ErrorTypeConflict, "Email already registered.", nil)

	// Internal Errors
	ErrDatabaseError     = NewDomainError(ErrorTypeInternal, "database error", nil)
	ErrTransactionFailed = NewDomainError(ErrorTypeInternal, "transaction failed", nil)

	// Policy Violation Errors
	ErrPolicyViolation = NewDomainError(ErrorTypePolicyViolation, security.PasswordPolicyMessage, nil)
)

// Error type checking helper functions

func hasType(err error, errType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errType
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsBadRequestError checks if an error is a bad request error
func IsBadRequestError(err error) bool {
	return hasType(err, ErrorTypeBadRequest)
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return hasType(err, ErrorTypeUnauthorized)
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return hasType(err, ErrorTypeForbidden)
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return hasType(err, ErrorTypeConflict)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return hasType(err, ErrorTypeInternal)
}

// IsPolicyViolationError checks if an error is a policy violation error
func IsPolicyViolationError(err error) bool {
	return hasType(err, ErrorTypePolicyViolation)
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

package shared

import "errors"

// ErrorKind classifies a domain error so callers can map it to the right
// surface (HTTP status, UI message, access-denied page).
type ErrorKind string

const (
	// KindValidation marks a violated operation precondition the caller can fix
	// by choosing a different document set (e.g. cancelling a done move).
	KindValidation ErrorKind = "VALIDATION"
	// KindUser marks a business-rule violation surfaced as a blocking message.
	KindUser ErrorKind = "USER"
	// KindConfiguration marks an environment/data issue an administrator must
	// fix before retrying (e.g. a warehouse missing an operation type).
	KindConfiguration ErrorKind = "CONFIGURATION"
	// KindPermission marks a missing authorization role.
	KindPermission ErrorKind = "PERMISSION"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so sentinel errors work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewValidationError creates a validation-kind domain error
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

// NewUserError creates a user-kind domain error
func NewUserError(code, message string) *DomainError {
	return &DomainError{Kind: KindUser, Code: code, Message: message}
}

// NewConfigurationError creates a configuration-kind domain error
func NewConfigurationError(code, message string) *DomainError {
	return &DomainError{Kind: KindConfiguration, Code: code, Message: message}
}

// NewPermissionError creates a permission-kind domain error
func NewPermissionError(code, message string) *DomainError {
	return &DomainError{Kind: KindPermission, Code: code, Message: message}
}

// KindOf returns the kind of err if it is a DomainError, empty otherwise.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = &DomainError{Kind: KindUser, Code: "NOT_FOUND", Message: "Resource not found"}

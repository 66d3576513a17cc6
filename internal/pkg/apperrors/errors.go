package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Configuration errors
	ErrConfigMissing = errors.New("missing required configuration")

	// Store errors
	ErrStoreQuery = errors.New("store query failed")
)

// Member / profile errors
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Alumni errors
var (
	ErrAlumnusNotFound = errors.New("alumnus not found")
)

// Chapter errors
var (
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrChapterAlreadyExists = errors.New("chapter with this name or letters already exists")
	ErrChapterHasRelations  = errors.New("chapter has associated members and cannot be deleted")
)

// Connection errors
var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists between these members")
	ErrSelfConnection     = errors.New("cannot create a connection with yourself")
	ErrNotConnected       = errors.New("members are not connected")
)

// Invitation errors
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrInvitationRevoked  = errors.New("invitation has been revoked")
	ErrInvitationUsed     = errors.New("invitation has already been accepted")
)

// Document errors
var (
	ErrDocumentNotFound = errors.New("document not found")
)

// Message errors
var (
	ErrMessageNotFound      = errors.New("message not found")
	ErrConversationNotFound = errors.New("conversation not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewStoreError wraps an upstream store failure together with the driver's
// message and SQLSTATE code so handlers can echo them back.
func NewStoreError(message, code string) error {
	return &StoreError{
		Err:     ErrStoreQuery,
		Message: message,
		Code:    code,
	}
}

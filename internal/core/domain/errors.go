package domain

import "errors"

// Authentication and access-control failures. Each maps to a fixed HTTP
// status in the API error handler.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRoleUnavailable     = errors.New("user role unavailable")
	ErrExternalRejected    = errors.New("external identity service rejected the credentials")
	ErrExternalUnavailable = errors.New("external identity service unavailable")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("access forbidden")
	ErrTooManyRequests     = errors.New("too many requests")
)

// Failure classes for resource operations.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// ResourceError carries a client-facing message on top of a failure class.
type ResourceError struct {
	Kind    error
	Message string
}

func (e *ResourceError) Error() string { return e.Message }

func (e *ResourceError) Unwrap() error { return e.Kind }

// NotFound returns a ResourceError of class ErrNotFound.
func NotFound(msg string) error { return &ResourceError{Kind: ErrNotFound, Message: msg} }

// Conflict returns a ResourceError of class ErrConflict.
func Conflict(msg string) error { return &ResourceError{Kind: ErrConflict, Message: msg} }

// Invalid returns a ResourceError of class ErrInvalidInput.
func Invalid(msg string) error { return &ResourceError{Kind: ErrInvalidInput, Message: msg} }

var (
	ErrUserNotFound     = NotFound("El usuario no existe.")
	ErrRoleNotFound     = NotFound("El rol no existe.")
	ErrBoardNotFound    = NotFound("El tablero no existe.")
	ErrCategoryNotFound = NotFound("La categoría no existe.")
	ErrSlideNotFound    = NotFound("La diapositiva no existe.")

	// ErrUnknownRole is returned by registration when the requested role
	// cannot be resolved by id or by name.
	ErrUnknownRole = Invalid("Rol no encontrado")
)

package domain

import "errors"

// Error kinds. Every error returned by the core wraps exactly one of them so the
// transport layer can pick a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrForbidden       = errors.New("action not permitted")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error carries a short, machine-stable reason alongside its kind.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

var (
	ErrNotPermitted = newError(ErrForbidden, "action not permitted")

	ErrEmptyCart          = newError(ErrValidation, "no items in cart")
	ErrInvalidQuantity    = newError(ErrValidation, "quantity must be a positive integer")
	ErrCartLineExists     = newError(ErrConflict, "menu item already in cart")
	ErrInvalidUnitPrice   = newError(ErrValidation, "menu item has no valid price")
	ErrOrderLinesRejected = newError(ErrValidation, "order lines rejected")

	ErrInvalidStatus       = newError(ErrValidation, "invalid data format")
	ErrInvalidDeliveryCrew = newError(ErrValidation, "not a valid delivery crew id")
	ErrNoUpdateField       = newError(ErrValidation, "no valid field to update")
	ErrAmbiguousUpdate     = newError(ErrValidation, "only one field may be updated at a time")
	ErrInvalidTransition   = newError(ErrValidation, "invalid status transition")

	ErrOrderNotFound    = newError(ErrNotFound, "order not found")
	ErrMenuItemNotFound = newError(ErrNotFound, "menu item not found")
	ErrCategoryNotFound = newError(ErrNotFound, "category not found")
	ErrUnknownGroup     = newError(ErrNotFound, "group not found")
	ErrUserNotFound     = newError(ErrNotFound, "user not found")

	ErrInvalidMenuItem = newError(ErrValidation, "invalid menu item")
	ErrInvalidCategory = newError(ErrValidation, "invalid category")
	ErrInvalidOrdering = newError(ErrValidation, "ordering must be price or -price")
	ErrMenuItemInUse   = newError(ErrConflict, "menu item is referenced by orders")
	ErrCategoryExists  = newError(ErrConflict, "category already exists")

	ErrUserExists         = newError(ErrConflict, "user already exists")
	ErrInvalidSignup      = newError(ErrValidation, "username and password are required")
	ErrMissingUsername    = newError(ErrValidation, "username is required")
	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid credentials")
)

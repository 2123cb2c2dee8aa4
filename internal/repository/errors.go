// Package repository defines error values that are reused across multiple
// repositories.  These sentinels let handlers distinguish failure modes
// without string matching: not-found errors map to HTTP 404 and cover both
// "row absent" and "row owned by someone else", so the existence of other
// users' data never leaks.  ErrForbidden is reserved for create operations
// that explicitly name an apartment the caller does not own.
package repository

import "errors"

// ErrForbidden is returned when the caller names a resource they do not
// own in a create payload.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// Not-found sentinels, one per entity.  Deliberately identical for
// "does not exist" and "not owned by caller".
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrIncomeNotFound    = errors.New("income not found")
	ErrExpenseNotFound   = errors.New("expense not found")
)

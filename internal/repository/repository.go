package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// Sentinel errors returned by implementations so services can react to the
// store's constraint machinery without knowing the driver.
var (
	// ErrNotFound is returned when a lookup or delete matched zero rows.
	ErrNotFound = errors.New("row not found")
	// ErrDuplicate is returned when an insert violated a unique constraint.
	ErrDuplicate = errors.New("unique constraint violated")
	// ErrForeignKeyViolation is returned when the store rejected a write
	// because of a referential-integrity constraint. On a category delete it
	// means documents still reference the row; on a document insert it means
	// the category id does not resolve.
	ErrForeignKeyViolation = errors.New("referential integrity constraint violated")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

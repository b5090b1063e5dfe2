package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a complaint or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIdentityNotFound is returned when no user matches a login identifier.
	// It matches ErrNotFound under errors.Is.
	ErrIdentityNotFound = fmt.Errorf("identity %w", ErrNotFound)
	// ErrDuplicateID is returned when a generated complaint id is already taken.
	ErrDuplicateID = errors.New("duplicate complaint id")
	// ErrInvalidStatus is returned for status values outside the closed set.
	ErrInvalidStatus = errors.New("invalid complaint status")
)

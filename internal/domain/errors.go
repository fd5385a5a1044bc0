package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used with errors.Is across store implementations.
var (
	// ErrNotFound marks lookups for rows that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks transport or transaction failures. Operations
	// failing with it performed no partial write and are safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidEnumValueError reports an input that is not a member of its closed
// vocabulary. It is raised before any store mutation is attempted.
type InvalidEnumValueError struct {
	Field   string   `json:"campo"`
	Value   string   `json:"valor"`
	Allowed []string `json:"valores_permitidos"`
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q, allowed: %s",
		e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

// ValidationError reports a non-enum input constraint violation, e.g. a
// non-positive hospital capacity or a malformed trip duration.
type ValidationError struct {
	Field   string `json:"campo"`
	Message string `json:"mensaje"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

// NotFoundError reports a missing referenced row.
type NotFoundError struct {
	Entity string `json:"entidad"`
	ID     int64  `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: not found", e.Entity, e.ID)
}

// Unwrap ties NotFoundError to the ErrNotFound sentinel.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateAssignmentError reports an attempt to bind a person to an
// ambulance they are already assigned to.
type DuplicateAssignmentError struct {
	PersonnelID int64 `json:"personal_id"`
	AmbulanceID int64 `json:"ambulancia_id"`
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("personnel %d is already assigned to ambulance %d",
		e.PersonnelID, e.AmbulanceID)
}

// UniqueConstraintError reports a column-level uniqueness violation, e.g. a
// duplicate plate, email or hospital name.
type UniqueConstraintError struct {
	Entity string `json:"entidad"`
	Field  string `json:"campo"`
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("%s: duplicate value for unique field %q", e.Entity, e.Field)
}

// ConflictError reports a delete blocked by referencing rows, e.g. removing a
// role that personnel still hold.
type ConflictError struct {
	Entity string `json:"entidad"`
	Reason string `json:"motivo"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// StoreError wraps an infrastructure failure with the operation that hit it.
// It unwraps to ErrStoreUnavailable so callers can detect retryability.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return ErrStoreUnavailable }

// NewStoreError builds a StoreError for op. The cause is kept for logs only;
// callers branch on the sentinel.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

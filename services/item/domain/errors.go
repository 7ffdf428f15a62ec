package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrStorageFailure matches every *StorageError.
	ErrStorageFailure = errors.New("storage failure")

	// ErrNameRequired is returned when a name is absent, empty, or only whitespace.
	ErrNameRequired = &ValidationError{Field: "name", Message: "name is required"}

	// ErrNameTooLong is returned when a name exceeds the store column width.
	ErrNameTooLong = &ValidationError{Field: "name", Message: fmt.Sprintf("name must not exceed %d characters", MaxNameLength)}
)

// MaxNameLength is the width of the items.name column.
const MaxNameLength = 255

// ValidationError reports caller input that fails a precondition. It never
// reaches the store and is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError reports that the persistence medium could not complete Op.
// Transient is set only when the driver guarantees the request never reached
// the server, so repeating it cannot duplicate a write.
type StorageError struct {
	Op        string
	Err       error
	Transient bool
}

// NewStorageError wraps err as a StorageError for op.
func NewStorageError(op string, err error, transient bool) *StorageError {
	return &StorageError{Op: op, Err: err, Transient: transient}
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageFailure) true for any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

// IsTransient reports whether err carries a transient StorageError.
func IsTransient(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Transient
}

// UnavailableError is the service-level form of a StorageError: the store
// could not complete the operation and no partial success is inferred.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

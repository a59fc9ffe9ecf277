// Package errors defines the shared error taxonomy for collection,
// catalog, navigation, and rename operations. Callers classify failures
// with errors.Is against the exported sentinels rather than inspecting
// platform error values directly.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Re-exported for convenience so callers need a single errors import.
var (
	// Is reports whether any error in err's chain matches target.
	Is = errors.Is
	// As finds the first error in err's chain that matches target.
	As = errors.As
	// Unwrap unwraps an error to access the underlying error.
	Unwrap = errors.Unwrap
)

var (
	// ErrNotFound indicates a path, directory, or id was missing when an
	// operation required it to be present.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates a permission failure during a scan or
	// rename. It is surfaced to the caller, never retried.
	ErrAccessDenied = errors.New("access denied")

	// ErrConflict indicates a rename target path is already occupied.
	ErrConflict = errors.New("target path already exists")

	// ErrIOFailure indicates a generic I/O error during rename or delete.
	ErrIOFailure = errors.New("i/o failure")

	// ErrInvalidID indicates a caller referenced an id not present in the
	// current collection. This is a programming error in correct flows.
	ErrInvalidID = errors.New("invalid id")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidIDf wraps ErrInvalidID with a formatted message.
func InvalidIDf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidID)...)
}

// Classify maps a raw filesystem error onto the taxonomy, preserving the
// original error in the chain. A nil error stays nil.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
}

// IsNotExist reports whether err indicates a missing file, either raw or
// already classified.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotFound) || os.IsNotExist(err)
}

// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors distinguishing fatal and per-link failures

package errors

import (
	"errors"
	"fmt"
)

// DependencyError represents a missing external tool dependency.
// It is fatal: the run must abort before any work is dispatched.
type DependencyError struct {
	Tool string
	Path string
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("required tool not found: %s", e.Tool)
	}
	return fmt.Sprintf("required tool not found: %s (looked in %s)", e.Tool, e.Path)
}

// FetchError represents a failed download of a link target.
// It is recovered at the worker boundary and never aborts the run.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download failed: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download failed: %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any
func (e *FetchError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError represents a link whose extension cannot be
// thumbnailed. An empty Ext means the URL carried no extension at all.
type UnsupportedTypeError struct {
	URL string
	Ext string
}

// Error implements the error interface
func (e *UnsupportedTypeError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unrecognized file type: %s", e.URL)
	}
	return fmt.Sprintf("unsupported file type %q: %s", e.Ext, e.URL)
}

// PersistError represents a failure to write the output document.
// It is fatal: the run produces no output.
type PersistError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save document to %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying save error
func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsDependency checks if an error is a DependencyError
func IsDependency(err error) bool {
	var depErr *DependencyError
	return errors.As(err, &depErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsUnsupportedType checks if an error is an UnsupportedTypeError
func IsUnsupportedType(err error) bool {
	var typeErr *UnsupportedTypeError
	return errors.As(err, &typeErr)
}

// IsPersist checks if an error is a PersistError
func IsPersist(err error) bool {
	var persistErr *PersistError
	return errors.As(err, &persistErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

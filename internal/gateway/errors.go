package gateway

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by operations that require a session when
// none exists.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthError wraps a failed credential or auth-transport call.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "auth: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError reports the first client-side field constraint violated.
// No network effect has occurred when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// UploadError wraps a failed object-storage write.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed table insert or update.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "persistence: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// FetchError wraps a failed table query.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

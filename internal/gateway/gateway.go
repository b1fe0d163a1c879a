package gateway

import (
	"context"
	"time"

	"jobmarket-go/internal/models"
)

// Identity is the backend's authenticated principal, distinct from the
// richer profile record.
type Identity struct {
	ID    string
	Email string
}

// AuthAPI covers password authentication and session lifecycle.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// CurrentSession restores a previously established session. It returns
	// (nil, nil) when no session exists.
	CurrentSession(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
}

// ProfileAPI covers reads and writes of the profiles table.
type ProfileAPI interface {
	// ProfileByID returns the profile row for an identity, or nil when the
	// identity has not completed onboarding yet.
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
	// ProfileByUsername looks a username up while excluding one identity's
	// own row, so callers can check availability before an update.
	ProfileByUsername(ctx context.Context, username, excludingID string) (*models.Profile, error)
	ProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	// UpdateProfile writes only the given columns of one profile row.
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
}

// JobAPI covers the jobs table.
type JobAPI interface {
	InsertJob(ctx context.Context, row models.Job) error
	// ActiveJobs returns the listings visible at the given instant, joined
	// with the owning-profile projection, newest first.
	ActiveJobs(ctx context.Context, now time.Time) ([]models.Job, error)
}

// StorageAPI covers object storage.
type StorageAPI interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error
	PublicURL(bucket, key string) string
}

// Gateway aggregates every backend surface this client consumes.
type Gateway interface {
	AuthAPI
	ProfileAPI
	JobAPI
	StorageAPI
}

package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmarket-go/internal/gateway"
	"jobmarket-go/internal/models"
	"jobmarket-go/internal/session"
	"jobmarket-go/internal/uploader"
)

// Repository loads and creates job listings on behalf of the signed-in
// user.
type Repository struct {
	sessions *session.Store
	backend  gateway.JobAPI
	images   *uploader.Uploader
	now      func() time.Time
}

// NewRepository creates a job repository.
func NewRepository(sessions *session.Store, backend gateway.JobAPI, images *uploader.Uploader) *Repository {
	return &Repository{sessions: sessions, backend: backend, images: images, now: time.Now}
}

// ListActiveJobs returns the listings visible right now, newest first. The
// slice is a private snapshot owned by the caller; refreshing means calling
// this again and replacing the old slice wholesale. An empty slice is a
// valid result.
func (r *Repository) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	return r.backend.ActiveJobs(ctx, r.now())
}

// CreateJobInput carries the submitted listing form fields. Prices are the
// numeric strings the backend stores and matter only when Negotiable is
// false. ImageSource is a local path or an http(s) URL; empty means no
// image.
type CreateJobInput struct {
	Title       string
	Category    string
	Description string
	Location    string
	Email       string
	ContactName string
	PhoneNumber string
	Negotiable  bool
	MinPrice    string
	MaxPrice    string
	ImageSource string
}

// CreateJob validates the submission, uploads the image when one was
// supplied and inserts the listing with a 30 day visibility window.
// Validation failures abort before any network call; an upload failure
// aborts before the row is written. After a successful create, callers
// should refresh their listing snapshot with ListActiveJobs.
func (r *Repository) CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	snap := r.sessions.Current()
	if snap.User == nil {
		return nil, gateway.ErrNotAuthenticated
	}
	if err := validateJobInput(in); err != nil {
		return nil, err
	}

	var imageURL string
	if in.ImageSource != "" {
		url, err := r.images.UploadJobImage(ctx, snap.User.ID, in.ImageSource)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	createdAt := r.now().UTC()
	row := models.Job{
		ID:          uuid.NewString(),
		UserID:      snap.User.ID,
		ImageURL:    imageURL,
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Negotiable:  in.Negotiable,
		MinPrice:    strings.TrimSpace(in.MinPrice),
		MaxPrice:    strings.TrimSpace(in.MaxPrice),
		ContactName: strings.TrimSpace(in.ContactName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(models.VisibilityWindow),
		IsActive:    true,
	}
	if in.Negotiable {
		row.MinPrice, row.MaxPrice = "", ""
	}

	if err := r.backend.InsertJob(ctx, row); err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID searches a fetched snapshot for one listing.
func FindByID(listings []models.Job, id string) *models.Job {
	for i := range listings {
		if listings[i].ID == id {
			return &listings[i]
		}
	}
	return nil
}

package models

import "time"

// VisibilityWindow is how long a listing stays visible after creation.
const VisibilityWindow = 30 * 24 * time.Hour

// JobOwner is the minimal profile projection embedded in a job row by the
// profiles join.
type JobOwner struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// Job mirrors a row of the backend "jobs" table. MinPrice and MaxPrice are
// the numeric strings the backend stores; they are meaningful only when
// Negotiable is false.
type Job struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Negotiable  bool      `json:"negotiable"`
	MinPrice    string    `json:"min_price,omitempty"`
	MaxPrice    string    `json:"max_price,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsActive    bool      `json:"is_active"`
	Owner       *JobOwner `json:"profiles,omitempty"`
}

// Visible reports whether the listing belongs in the browse list at the
// given instant: active and not yet expired.
func (j Job) Visible(now time.Time) bool {
	return j.IsActive && j.ExpiresAt.After(now)
}

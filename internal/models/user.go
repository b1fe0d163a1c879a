package models

// Profile mirrors a row of the backend "profiles" table, keyed by the
// identity id.
type Profile struct {
	ID                  string `json:"id"`
	Name                string `json:"name,omitempty"`
	Username            string `json:"username,omitempty"`
	Role                string `json:"role,omitempty"`
	ProfileImageURL     string `json:"profile_image_url,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed,omitempty"`
}

// User is the in-memory session user: the profile record merged with the
// identity's email. A nil *User means unauthenticated.
type User struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Username            string `json:"username"`
	Role                string `json:"role"`
	ProfileImageURL     string `json:"profile_image_url,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

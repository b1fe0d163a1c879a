package session

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"

	"jobmarket-go/internal/gateway"
	"jobmarket-go/internal/models"
)

// MinPasswordLength is enforced at sign-up before any backend call.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Snapshot is an immutable view of the session state handed to observers.
// Loading is true only between process start and the completion of the
// initial restore.
type Snapshot struct {
	User    *models.User
	Loading bool
}

// Listener receives a snapshot after every state change.
type Listener func(Snapshot)

// Store owns the process-wide session state. It is the only writer; the
// route guard and screens observe it through Current and Subscribe.
type Store struct {
	auth     gateway.AuthAPI
	profiles gateway.ProfileAPI

	mu        sync.RWMutex
	user      *models.User
	loading   bool
	restored  bool
	listeners []Listener
}

// NewStore creates a session store. It starts in the loading state until
// Restore completes.
func NewStore(auth gateway.AuthAPI, profiles gateway.ProfileAPI) *Store {
	return &Store{auth: auth, profiles: profiles, loading: true}
}

// Current returns the present session snapshot.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{User: s.user, Loading: s.loading}
}

// Subscribe registers a listener invoked after every state change.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) publish(user *models.User, loading bool) {
	s.mu.Lock()
	s.user = user
	s.loading = loading
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	snap := Snapshot{User: user, Loading: loading}
	for _, fn := range listeners {
		fn(snap)
	}
}

// setUser changes the user without touching the loading flag; only the
// startup restore ever clears it.
func (s *Store) setUser(user *models.User) {
	s.mu.RLock()
	loading := s.loading
	s.mu.RUnlock()
	s.publish(user, loading)
}

// Restore resolves the startup session exactly once. Errors are logged and
// swallowed: the session simply resolves to unauthenticated, and the
// loading state always terminates.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return
	}
	s.restored = true
	s.mu.Unlock()

	var user *models.User
	identity, err := s.auth.CurrentSession(ctx)
	if err != nil {
		log.Printf("Error restoring session: %v", err)
	} else if identity != nil {
		user, err = s.fetchUser(ctx, identity)
		if err != nil {
			log.Printf("Error fetching profile during restore: %v", err)
			user = nil
		}
	}
	s.publish(user, false)
}

// SignIn authenticates with email and password. On failure the error
// propagates and the current user is left unchanged.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	identity, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	user, err := s.fetchUser(ctx, identity)
	if err != nil {
		return err
	}
	s.setUser(user)
	return nil
}

// SignUp registers a new identity. Credentials are validated before any
// backend call; the resulting user has an incomplete profile until
// onboarding supplies name, username and role.
func (s *Store) SignUp(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}
	identity, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	user, err := s.fetchUser(ctx, identity)
	if err != nil {
		return err
	}
	s.setUser(user)
	return nil
}

// UserUpdate carries the profile fields to change; nil fields are left
// untouched.
type UserUpdate struct {
	Name                *string
	Username            *string
	Email               *string
	Role                *string
	ProfileImageURL     *string
	OnboardingCompleted *bool
}

// UpdateUser writes the provided fields to the backend profile record and,
// only after the write succeeds, merges the same fields into the local
// user. The email lives on the identity rather than the profile row, so it
// is merged locally only.
func (s *Store) UpdateUser(ctx context.Context, update UserUpdate) error {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()
	if user == nil {
		return gateway.ErrNotAuthenticated
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if update.ProfileImageURL != nil {
		fields["profile_image_url"] = *update.ProfileImageURL
	}
	if update.OnboardingCompleted != nil {
		fields["onboarding_completed"] = *update.OnboardingCompleted
	}

	if len(fields) > 0 {
		if err := s.profiles.UpdateProfile(ctx, user.ID, fields); err != nil {
			return err
		}
	}

	merged := *user
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Username != nil {
		merged.Username = *update.Username
	}
	if update.Email != nil {
		merged.Email = *update.Email
	}
	if update.Role != nil {
		merged.Role = *update.Role
	}
	if update.ProfileImageURL != nil {
		merged.ProfileImageURL = *update.ProfileImageURL
	}
	if update.OnboardingCompleted != nil {
		merged.OnboardingCompleted = *update.OnboardingCompleted
	}
	s.setUser(&merged)
	return nil
}

// SignOut invalidates the backend session. The local user is cleared even
// when invalidation fails.
func (s *Store) SignOut(ctx context.Context) error {
	err := s.auth.SignOut(ctx)
	s.setUser(nil)
	return err
}

func (s *Store) fetchUser(ctx context.Context, identity *gateway.Identity) (*models.User, error) {
	profile, err := s.profiles.ProfileByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	user := &models.User{ID: identity.ID, Email: identity.Email}
	if profile != nil {
		user.Name = profile.Name
		user.Username = profile.Username
		user.Role = profile.Role
		user.ProfileImageURL = profile.ProfileImageURL
		user.OnboardingCompleted = profile.OnboardingCompleted
	}
	return user, nil
}

func validateCredentials(email, password string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &gateway.ValidationError{Field: "email", Message: "email address is not valid"}
	}
	if len(password) < MinPasswordLength {
		return &gateway.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		}
	}
	return nil
}

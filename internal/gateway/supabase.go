package gateway

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	supabase "github.com/nedpals/supabase-go"
	storagego "github.com/supabase-community/storage-go"

	"jobmarket-go/internal/models"
)

// Supabase implements Gateway against a Supabase project, using the
// supabase-go SDK for auth and table access and storage-go for buckets.
type Supabase struct {
	client  *supabase.Client
	storage *storagego.Client
	baseURL string
	apiKey  string
	cache   *TokenCache

	accessToken  string
	refreshToken string
}

// NewSupabase creates a gateway for the given project. The token cache is
// optional; without one, sessions do not survive process restarts.
func NewSupabase(supabaseURL, supabaseKey string, cache *TokenCache) (*Supabase, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	return &Supabase{
		client:  supabase.CreateClient(supabaseURL, supabaseKey),
		storage: storagego.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil),
		baseURL: supabaseURL,
		apiKey:  supabaseKey,
		cache:   cache,
	}, nil
}

// setTokens makes subsequent table and storage requests act as the
// signed-in user, so row-level security applies, and persists the pair.
func (g *Supabase) setTokens(access, refresh string) {
	g.accessToken = access
	g.refreshToken = refresh
	g.client.DB.AddHeader("Authorization", "Bearer "+access)
	g.storage = storagego.NewClient(g.baseURL+"/storage/v1", access, nil)

	if g.cache != nil {
		if err := g.cache.Save(CachedSession{AccessToken: access, RefreshToken: refresh}); err != nil {
			log.Printf("Warning: could not persist session: %v", err)
		}
	}
}

func (g *Supabase) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	user, err := g.client.Auth.SignUp(ctx, supabase.UserCredentials{Email: email, Password: password})
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (g *Supabase) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	details, err := g.client.Auth.SignIn(ctx, supabase.UserCredentials{Email: email, Password: password})
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	g.setTokens(details.AccessToken, details.RefreshToken)
	return &Identity{ID: details.User.ID, Email: details.User.Email}, nil
}

func (g *Supabase) CurrentSession(ctx context.Context) (*Identity, error) {
	if g.accessToken == "" && g.cache != nil {
		cached, err := g.cache.Load()
		if err != nil || cached == nil {
			return nil, err
		}
		g.accessToken = cached.AccessToken
		g.refreshToken = cached.RefreshToken
	}
	if g.accessToken == "" {
		return nil, nil
	}

	user, err := g.client.Auth.User(ctx, g.accessToken)
	if err == nil {
		g.setTokens(g.accessToken, g.refreshToken)
		return &Identity{ID: user.ID, Email: user.Email}, nil
	}
	if g.refreshToken == "" {
		return nil, &AuthError{Err: err}
	}

	// The cached access token may only have expired; try a single refresh.
	details, refreshErr := g.client.Auth.RefreshUser(ctx, g.accessToken, g.refreshToken)
	if refreshErr != nil {
		return nil, &AuthError{Err: err}
	}
	g.setTokens(details.AccessToken, details.RefreshToken)
	return &Identity{ID: details.User.ID, Email: details.User.Email}, nil
}

func (g *Supabase) SignOut(ctx context.Context) error {
	var signOutErr error
	if g.accessToken != "" {
		if err := g.client.Auth.SignOut(ctx, g.accessToken); err != nil {
			signOutErr = &AuthError{Err: err}
		}
	}

	// The local session is discarded even when invalidation fails.
	g.accessToken = ""
	g.refreshToken = ""
	if g.cache != nil {
		if err := g.cache.Clear(); err != nil {
			log.Printf("Warning: could not clear session file: %v", err)
		}
	}
	return signOutErr
}

func (g *Supabase) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var rows []models.Profile
	if err := g.client.DB.From("profiles").Select("*").Eq("id", id).ExecuteWithContext(ctx, &rows); err != nil {
		return nil, &FetchError{Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (g *Supabase) ProfileByUsername(ctx context.Context, username, excludingID string) (*models.Profile, error) {
	var rows []models.Profile
	err := g.client.DB.From("profiles").
		Select("*").
		Eq("username", username).
		Neq("id", excludingID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (g *Supabase) ProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var rows []models.Profile
	if err := g.client.DB.From("profiles").Select("*").Eq("email", email).ExecuteWithContext(ctx, &rows); err != nil {
		return nil, &FetchError{Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (g *Supabase) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	var rows []models.Profile
	if err := g.client.DB.From("profiles").Update(fields).Eq("id", id).ExecuteWithContext(ctx, &rows); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (g *Supabase) InsertJob(ctx context.Context, row models.Job) error {
	var rows []models.Job
	if err := g.client.DB.From("jobs").Insert(row).ExecuteWithContext(ctx, &rows); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (g *Supabase) ActiveJobs(ctx context.Context, now time.Time) ([]models.Job, error) {
	var rows []models.Job
	err := g.client.DB.From("jobs").
		Select("*, profiles(id, name, username, profile_image_url)").
		OrderBy("created_at", "desc").
		Eq("is_active", "true").
		Gt("expires_at", now.UTC().Format(time.RFC3339)).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	// The server filter uses its own clock; re-check against the caller's
	// so an expired row never leaves the gateway.
	visible := rows[:0]
	for _, row := range rows {
		if row.Visible(now) {
			visible = append(visible, row)
		}
	}
	return visible, nil
}

func (g *Supabase) Upload(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error {
	_, err := g.storage.UploadFile(bucket, key, bytes.NewReader(data), storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &overwrite,
	})
	if err != nil {
		return &UploadError{Err: err}
	}
	return nil
}

func (g *Supabase) PublicURL(bucket, key string) string {
	return g.storage.GetPublicUrl(bucket, key).SignedURL
}

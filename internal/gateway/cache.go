package gateway

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CachedSession is the token pair persisted between process runs so a
// signed-in user stays signed in across invocations.
type CachedSession struct {
	AccessToken  string `yaml:"access_token"`
	RefreshToken string `yaml:"refresh_token"`
}

// TokenCache stores the session token pair in a YAML file.
type TokenCache struct {
	Path string
}

// DefaultSessionFile returns the path to ~/.jobmarket/session.yaml.
func DefaultSessionFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".jobmarket", "session.yaml"), nil
}

// Load reads the cached session. A missing or empty file is not an error;
// it returns (nil, nil).
func (c *TokenCache) Load() (*CachedSession, error) {
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s CachedSession
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	if s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

// Save writes the session, creating the parent directory if needed. The
// file holds bearer tokens, so it is not group or world readable.
func (c *TokenCache) Save(s CachedSession) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return os.WriteFile(c.Path, data, 0600)
}

// Clear removes the cached session if present.
func (c *TokenCache) Clear() error {
	err := os.Remove(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

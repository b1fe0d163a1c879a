package gateway

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenCache_RoundTrip(t *testing.T) {
	cache := &TokenCache{Path: filepath.Join(t.TempDir(), "nested", "session.yaml")}

	if err := cache.Save(CachedSession{AccessToken: "access-1", RefreshToken: "refresh-1"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got == nil || got.AccessToken != "access-1" || got.RefreshToken != "refresh-1" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestTokenCache_MissingFileIsNotAnError(t *testing.T) {
	cache := &TokenCache{Path: filepath.Join(t.TempDir(), "session.yaml")}

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

func TestTokenCache_Clear(t *testing.T) {
	cache := &TokenCache{Path: filepath.Join(t.TempDir(), "session.yaml")}
	if err := cache.Save(CachedSession{AccessToken: "access-1"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := os.Stat(cache.Path); !os.IsNotExist(err) {
		t.Error("Clear() should remove the session file")
	}

	// Clearing twice is fine.
	if err := cache.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}

func TestTokenCache_FilePermissions(t *testing.T) {
	cache := &TokenCache{Path: filepath.Join(t.TempDir(), "session.yaml")}
	if err := cache.Save(CachedSession{AccessToken: "access-1"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(cache.Path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

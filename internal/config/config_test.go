package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")

	cfg := DefaultConfig()
	if cfg.Supabase.URL != "https://proj.supabase.co" {
		t.Errorf("Supabase.URL = %s", cfg.Supabase.URL)
	}
	if cfg.Supabase.Key != "anon-key" {
		t.Errorf("Supabase.Key = %s", cfg.Supabase.Key)
	}
	if cfg.Client.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.Client.RequestTimeout)
	}
}

func TestLoadConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Supabase.URL != "https://proj.supabase.co" {
		t.Errorf("Supabase.URL = %s", cfg.Supabase.URL)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")
	t.Setenv("SUPABASE_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"supabase": {"url": "https://file.supabase.co", "key": "file-key"}}`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Supabase.URL != "https://file.supabase.co" {
		t.Errorf("Supabase.URL = %s, want the file value", cfg.Supabase.URL)
	}
	if cfg.Supabase.Key != "file-key" {
		t.Errorf("Supabase.Key = %s, want the file value", cfg.Supabase.Key)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Supabase: SupabaseConfig{URL: "https://proj.supabase.co", Key: "anon-key"},
		Client:   ClientConfig{RequestTimeout: 10 * time.Second},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate(valid) = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing URL", func(c *Config) { c.Supabase.URL = "" }},
		{"missing key", func(c *Config) { c.Supabase.Key = "" }},
		{"zero timeout", func(c *Config) { c.Client.RequestTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

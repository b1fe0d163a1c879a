package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration
type Config struct {
	Supabase SupabaseConfig `json:"supabase"`
	Client   ClientConfig   `json:"client"`
}

// SupabaseConfig holds the backend project settings
type SupabaseConfig struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ClientConfig holds local client settings
type ClientConfig struct {
	RequestTimeout time.Duration `json:"request_timeout"`
	// SessionFile is where the signed-in session is cached between runs;
	// empty means ~/.jobmarket/session.yaml.
	SessionFile string `json:"session_file"`
}

// DefaultConfig returns a default configuration. Supabase credentials come
// from the SUPABASE_URL and SUPABASE_KEY environment variables unless a
// config file overrides them.
func DefaultConfig() *Config {
	return &Config{
		Supabase: SupabaseConfig{
			URL: os.Getenv("SUPABASE_URL"),
			Key: os.Getenv("SUPABASE_KEY"),
		},
		Client: ClientConfig{
			RequestTimeout: 30 * time.Second,
		},
	}
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("supabase URL is required")
	}

	if c.Supabase.Key == "" {
		return fmt.Errorf("supabase key is required")
	}

	if c.Client.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	return nil
}

package config

import (
	"fmt"
	"net/url"
	"time"
)

// ClientConfig configures the admin command line client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// LoadClient reads client settings from ROOTS_API_URL, ROOTS_API_KEY and
// ROOTS_API_TIMEOUT_SECONDS. Callers may override fields before Validate.
func LoadClient() *ClientConfig {
	return &ClientConfig{
		BaseURL: getEnv("ROOTS_API_URL", "http://localhost:8080"),
		APIKey:  getEnv("ROOTS_API_KEY", ""),
		Timeout: time.Duration(getEnvAsInt("ROOTS_API_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

// Validate validates the client configuration.
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API URL: %q", c.BaseURL)
	}

	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("client timeout must be positive")
	}

	return nil
}

package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL points at a local API server
const DefaultBaseURL = "http://localhost:8080/api/v1"

// Config is the client state kept between runs
type Config struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token,omitempty"`
	Email   string `yaml:"email,omitempty"`
	UserID  string `yaml:"user_id,omitempty"`
	Role    string `yaml:"role,omitempty"`
}

// DefaultConfigPath resolves ONESTOP_CONFIG, falling back to ~/.onestop.yaml
func DefaultConfigPath() string {
	if env := os.Getenv("ONESTOP_CONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".onestop.yaml"
	}
	return filepath.Join(home, ".onestop.yaml")
}

// LoadConfig reads path. A missing file yields the default config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{BaseURL: DefaultBaseURL}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// Save writes the config readable only by the current user
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ClearSession forgets the logged in account
func (c *Config) ClearSession() {
	c.Token = ""
	c.Email = ""
	c.UserID = ""
	c.Role = ""
}

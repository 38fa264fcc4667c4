// Package config provides configuration management for sny.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/sanity-cli/api"
)

var (
	// ErrMissingProjectID is returned by Validate when no project is configured.
	ErrMissingProjectID = errors.New("project_id is required")
	// ErrMissingDataset is returned by Validate when no dataset is configured.
	ErrMissingDataset = errors.New("dataset is required")
)

var (
	projectIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	datasetPattern   = regexp.MustCompile(`^[a-z0-9~][a-z0-9_-]{0,63}$`)
)

// Config holds the sny configuration.
type Config struct {
	ProjectID    string `yaml:"project_id"`
	Dataset      string `yaml:"dataset"`
	APIVersion   string `yaml:"api_version,omitempty"`
	APIHost      string `yaml:"api_host,omitempty"`
	UseCDN       bool   `yaml:"use_cdn,omitempty"`
	Token        string `yaml:"token,omitempty"`
	Perspective  string `yaml:"perspective,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return ErrMissingProjectID
	}
	if c.Dataset == "" {
		return ErrMissingDataset
	}

	if !projectIDPattern.MatchString(c.ProjectID) {
		return fmt.Errorf("invalid project_id %q: must be lowercase letters, digits and dashes", c.ProjectID)
	}
	if !datasetPattern.MatchString(c.Dataset) {
		return fmt.Errorf("invalid dataset %q: must be lowercase letters, digits, dashes and underscores", c.Dataset)
	}

	switch c.Perspective {
	case "", api.PerspectiveRaw, api.PerspectivePublished, api.PerspectiveDrafts:
	default:
		return fmt.Errorf("invalid perspective %q: must be raw, published or drafts", c.Perspective)
	}

	return nil
}

// BaseURL returns the versioned API root for the configured project.
func (c *Config) BaseURL() string {
	return api.BaseURL(c.ProjectID, c.APIHost, c.APIVersion, c.UseCDN)
}

// NewClient builds an API client from the configuration.
func (c *Config) NewClient() *api.Client {
	client := api.NewClient(c.BaseURL(), c.Dataset, c.Token)
	client.Perspective = c.Perspective
	return client
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: SNY_* → SANITY_* → existing config value
func (c *Config) LoadFromEnv() {
	if v := getEnvWithFallback("SNY_PROJECT_ID", "SANITY_PROJECT_ID"); v != "" {
		c.ProjectID = v
	}
	if v := getEnvWithFallback("SNY_DATASET", "SANITY_DATASET"); v != "" {
		c.Dataset = v
	}
	if v := getEnvWithFallback("SNY_API_VERSION", "SANITY_API_VERSION"); v != "" {
		c.APIVersion = v
	}
	if v := getEnvWithFallback("SNY_API_HOST", "SANITY_API_HOST"); v != "" {
		c.APIHost = v
	}
	if v := getEnvWithFallback("SNY_TOKEN", "SANITY_TOKEN"); v != "" {
		c.Token = v
	}
	if v := getEnvWithFallback("SNY_PERSPECTIVE", "SANITY_PERSPECTIVE"); v != "" {
		c.Perspective = v
	}
	if v := getEnvWithFallback("SNY_USE_CDN", "SANITY_USE_CDN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UseCDN = b
		}
	}
	if v := os.Getenv("SNY_OUTPUT_FORMAT"); v != "" {
		c.OutputFormat = v
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path under the
// XDG config home.
func DefaultConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "sny", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

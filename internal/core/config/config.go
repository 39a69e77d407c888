// Package config handles loading and merging Pullcheck configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// Server configures the webhook HTTP listener.
	Server ServerConfig `yaml:"server"`

	// GitHub configures credentials and the default repository.
	GitHub GitHubConfig `yaml:"github"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GitHubConfig holds GitHub credentials and routing defaults.
type GitHubConfig struct {
	Username string `yaml:"username"`
	Token    string `yaml:"token"`

	// Owner and Repo are the fallback repository used when a webhook
	// payload does not carry a repository name.
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`

	// IgnoreLabel disables all description rules for a pull request
	// carrying this label.
	IgnoreLabel string `yaml:"ignore_label"`

	// APIBaseURL overrides the GitHub API endpoint (tests, GHE).
	APIBaseURL string `yaml:"api_base_url,omitempty"`
}

// Load reads a config file from the given path and expands environment
// variables, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// FromEnv builds a config purely from environment variables and defaults,
// for deployments without a config file.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	// Search in common locations
	candidates := []string{
		".github/pullcheck.yaml",
		".github/pullcheck.yml",
		".pullcheck.yaml",
		".pullcheck.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		c.GitHub.Username = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_OWNER"); v != "" {
		c.GitHub.Owner = v
	}
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		c.GitHub.Repo = v
	}
	if v := os.Getenv("GITHUB_IGNORE_LABEL"); v != "" {
		c.GitHub.IgnoreLabel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.GitHub.Owner == "" {
		c.GitHub.Owner = "kelvintaywl"
	}
	if c.GitHub.Repo == "" {
		c.GitHub.Repo = "pull_requests"
	}
	if c.GitHub.IgnoreLabel == "" {
		c.GitHub.IgnoreLabel = "pr_ignore"
	}
}

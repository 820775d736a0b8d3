// Package config provides configuration management for the buildrun CLI.
package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration.
type Config struct {
	// GitHubToken is the API token for authenticating with GitHub.
	// It is read from the environment and must never be logged or echoed.
	GitHubToken string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}

	return &Config{
		GitHubToken: token,
	}, nil
}

// MustLoadFromEnv loads configuration from environment variables and panics on error.
// This is useful for initialization in main() where configuration errors should be fatal.
func MustLoadFromEnv() *Config {
	cfg, err := LoadFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

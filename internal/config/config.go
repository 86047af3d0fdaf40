// Package config loads runtime settings from the environment and an optional
// .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/provider"
)

// DefaultOutputSubdir is the Desktop folder generated images are saved to.
const DefaultOutputSubdir = "generated-images"

// Config holds all configuration for the server.
type Config struct {
	// OpenAIAPIKey authenticates direct-mode calls. Hosted mode does not use it.
	OpenAIAPIKey string

	// OpenAIBaseURL overrides the OpenAI API endpoint. Empty means the default.
	OpenAIBaseURL string

	// HostedURL is the hosted generation proxy endpoint.
	HostedURL string

	// ImageSize is the size requested in direct mode.
	ImageSize string

	// OutputSubdir is the folder under ~/Desktop that images are written to.
	OutputSubdir string

	// Debug enables verbose logging.
	Debug bool
}

// Load reads a .env file if one exists, then builds a Config from the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY") // fallback
	}

	return &Config{
		OpenAIAPIKey:  apiKey,
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		HostedURL:     getenv("IMAGE_GEN_HOSTED_URL", provider.DefaultHostedURL),
		ImageSize:     getenv("IMAGE_GEN_SIZE", provider.DefaultSize),
		OutputSubdir:  getenv("IMAGE_GEN_OUTPUT_SUBDIR", DefaultOutputSubdir),
		Debug:         strings.EqualFold(os.Getenv("IMAGE_MCP_LOG_LEVEL"), "debug"),
	}
}

// ProviderOptions returns the provider settings derived from c.
func (c *Config) ProviderOptions() provider.Options {
	return provider.Options{
		HostedURL: c.HostedURL,
		APIKey:    c.OpenAIAPIKey,
		BaseURL:   c.OpenAIBaseURL,
		Size:      c.ImageSize,
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

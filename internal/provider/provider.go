package provider

import (
	"context"
	"net/http"
	"strings"
)

const (
	// DefaultHostedURL is the first-party generation proxy.
	DefaultHostedURL = "https://imagegen.sololink.cloud/api/generate-image"

	// DefaultModel is the OpenAI model used in direct mode.
	DefaultModel = "dall-e-3"

	// DefaultSize is the image size requested in direct mode.
	DefaultSize = "1024x1024"

	// hostedUpstream is the provider name the proxy forwards to.
	hostedUpstream = "openai"
)

// Generator produces image bytes for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Options configures both strategies. Zero values fall back to the defaults.
type Options struct {
	// HostedURL is the proxy endpoint used by Hosted.
	HostedURL string

	// APIKey is the OpenAI credential used by Direct.
	APIKey string

	// BaseURL overrides the OpenAI API base URL used by Direct.
	BaseURL string

	// Size is the image size requested by Direct, e.g. "1024x1024".
	Size string

	// HTTPClient is shared by both strategies. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// New returns the Hosted strategy when useHosted is true and the Direct
// strategy otherwise.
func New(useHosted bool, opts Options) Generator {
	if useHosted {
		return NewHosted(opts.HostedURL, opts.HTTPClient)
	}
	return NewDirect(opts.APIKey, opts.BaseURL, opts.HTTPClient, WithSize(opts.Size))
}

// promptPreview shortens a prompt for log lines.
func promptPreview(prompt string) string {
	const max = 30
	r := []rune(strings.TrimSpace(prompt))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max]) + "..."
}

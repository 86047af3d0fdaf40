package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/diag"
)

// Direct generates images by calling the OpenAI images API.
type Direct struct {
	client *openai.Client
	model  string
	size   string
}

// DirectOption customizes a Direct generator.
type DirectOption func(*Direct)

// WithSize sets the requested image size. An empty size keeps the default.
func WithSize(size string) DirectOption {
	return func(d *Direct) {
		if size != "" {
			d.size = size
		}
	}
}

// WithModel sets the image model. An empty model keeps the default.
func WithModel(model string) DirectOption {
	return func(d *Direct) {
		if model != "" {
			d.model = model
		}
	}
}

// NewDirect returns a Direct generator authenticated with apiKey. baseURL
// overrides the OpenAI endpoint when non-empty; httpClient may be nil.
func NewDirect(apiKey, baseURL string, httpClient *http.Client, opts ...DirectOption) *Direct {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	d := &Direct{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultModel,
		size:   DefaultSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate requests a single image with an inline base64 payload and returns
// the decoded bytes.
func (d *Direct) Generate(ctx context.Context, prompt string) ([]byte, error) {
	log.Printf("Generating image with prompt: %q", promptPreview(prompt))
	diag.Debugf("Making direct request to OpenAI API (model %s, size %s)", d.model, d.size)

	resp, err := d.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          d.model,
		N:              1,
		Size:           d.size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		pErr := translateOpenAIError(err)
		log.Printf("Error generating image: %v", pErr)
		return nil, pErr
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, directError(0, nil, "no image data in response")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, directError(0, err, "failed to decode image data")
	}

	if revised := resp.Data[0].RevisedPrompt; revised != "" {
		diag.Debugf("Revised prompt: %q", promptPreview(revised))
	}
	diag.Debugf("Image generated successfully from OpenAI API (%d bytes)", len(data))
	return data, nil
}

func translateOpenAIError(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return directError(apiErr.HTTPStatusCode, nil, "API request failed: %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return directError(reqErr.HTTPStatusCode, reqErr.Err, "API request failed: %d", reqErr.HTTPStatusCode)
	}

	return directError(0, err, "API request failed")
}

var _ Generator = (*Direct)(nil)

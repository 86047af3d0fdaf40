package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/diag"
)

// Hosted generates images through the first-party proxy.
type Hosted struct {
	endpoint   string
	httpClient *http.Client
}

type hostedRequest struct {
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
}

type hostedResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// NewHosted returns a Hosted generator posting to endpoint. An empty endpoint
// selects DefaultHostedURL; a nil client selects http.DefaultClient.
func NewHosted(endpoint string, httpClient *http.Client) *Hosted {
	if endpoint == "" {
		endpoint = DefaultHostedURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Hosted{endpoint: endpoint, httpClient: httpClient}
}

// Generate posts the prompt to the proxy, then downloads the first image URL
// from its answer.
func (h *Hosted) Generate(ctx context.Context, prompt string) ([]byte, error) {
	log.Printf("Generating image with prompt: %q", promptPreview(prompt))
	diag.Debugf("Making request to hosted API at %s", h.endpoint)

	imageURL, err := h.requestImageURL(ctx, prompt)
	if err != nil {
		log.Printf("Error generating image: %v", err)
		return nil, err
	}

	diag.Debugf("Fetching image from URL: %s", imageURL)
	data, err := h.fetch(ctx, imageURL)
	if err != nil {
		log.Printf("Error generating image: %v", err)
		return nil, err
	}

	diag.Debugf("Fetched %d bytes from hosted API", len(data))
	return data, nil
}

func (h *Hosted) requestImageURL(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(hostedRequest{Prompt: prompt, Provider: hostedUpstream})
	if err != nil {
		return "", hostedError(0, err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", hostedError(0, err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", hostedError(0, err, "failed to send request")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			text = []byte("failed to read error body: " + err.Error())
		}
		return "", hostedError(resp.StatusCode, nil, "API request failed: %s: %s",
			resp.Status, strings.TrimSpace(string(text)))
	}

	var result hostedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", hostedError(resp.StatusCode, err, "failed to decode response")
	}

	if len(result.Images) == 0 || strings.TrimSpace(result.Images[0].URL) == "" {
		return "", hostedError(resp.StatusCode, nil, "no image URL in response")
	}
	return strings.TrimSpace(result.Images[0].URL), nil
}

func (h *Hosted) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, hostedError(0, err, "invalid image URL %q", url)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, hostedError(0, err, "failed to fetch image")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, hostedError(resp.StatusCode, nil, "image download failed: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, hostedError(resp.StatusCode, err, "failed to read image")
	}
	return data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

var _ Generator = (*Hosted)(nil)

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newHostedBackend serves the proxy endpoint at /api/generate-image and the
// image itself at /y.png.
func newHostedBackend(t *testing.T, image []byte) (*httptest.Server, *hostedRequest) {
	t.Helper()
	var got hostedRequest

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/api/generate-image", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []map[string]string{{"url": srv.URL + "/y.png"}},
		})
	})
	mux.HandleFunc("/y.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(image)
	})

	return srv, &got
}

func TestHosted_Generate(t *testing.T) {
	want := []byte("\x89PNG fake image bytes")
	srv, got := newHostedBackend(t, want)

	h := NewHosted(srv.URL+"/api/generate-image", srv.Client())
	data, err := h.Generate(context.Background(), "a cat")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !bytes.Equal(data, want) {
		t.Errorf("data = %q, want %q", data, want)
	}
	if got.Prompt != "a cat" {
		t.Errorf("request prompt = %q, want %q", got.Prompt, "a cat")
	}
	if got.Provider != "openai" {
		t.Errorf("request provider = %q, want openai", got.Provider)
	}
}

func TestHosted_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHosted(srv.URL, srv.Client()).Generate(context.Background(), "a cat")

	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if pErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", pErr.StatusCode)
	}
	if pErr.Backend != BackendHosted {
		t.Errorf("Backend = %s, want %s", pErr.Backend, BackendHosted)
	}
	msg := err.Error()
	if !strings.Contains(msg, "500") || !strings.Contains(msg, "boom") {
		t.Errorf("error %q should contain status and body", msg)
	}
}

func TestHosted_Non2xxBodyReadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declare more body than is sent so the client read fails mid-body.
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("partial"))
	}))
	defer srv.Close()

	_, err := NewHosted(srv.URL, srv.Client()).Generate(context.Background(), "a cat")

	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if pErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", pErr.StatusCode)
	}
	if msg := err.Error(); !strings.Contains(msg, "failed to read error body") {
		t.Errorf("error %q should report the body read failure", msg)
	}
}

func TestHosted_ResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty images", `{"images":[]}`, "no image URL in response"},
		{"missing images", `{"status":"ok"}`, "no image URL in response"},
		{"blank url", `{"images":[{"url":"  "}]}`, "no image URL in response"},
		{"malformed json", `{"images":`, "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHosted(srv.URL, srv.Client()).Generate(context.Background(), "p")

			var pErr *ProviderError
			if !errors.As(err, &pErr) {
				t.Fatalf("expected ProviderError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestHosted_ImageDownloadFails(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/gen", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":[{"url":"` + srv.URL + `/missing.png"}]}`))
	})

	_, err := NewHosted(srv.URL+"/gen", srv.Client()).Generate(context.Background(), "p")

	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", pErr.StatusCode)
	}
}

func TestHosted_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHosted(url, nil).Generate(context.Background(), "p")

	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", pErr.StatusCode)
	}
	if pErr.Unwrap() == nil {
		t.Error("expected wrapped transport error")
	}
}

func TestHosted_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHosted(srv.URL, srv.Client()).Generate(ctx, "p")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewHosted_Defaults(t *testing.T) {
	h := NewHosted("", nil)
	if h.endpoint != DefaultHostedURL {
		t.Errorf("endpoint = %s, want %s", h.endpoint, DefaultHostedURL)
	}
	if h.httpClient != http.DefaultClient {
		t.Error("expected http.DefaultClient")
	}
}

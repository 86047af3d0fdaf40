package provider

import (
	"fmt"
	"strings"
)

// Backend names used in ProviderError.
const (
	BackendHosted = "hosted"
	BackendDirect = "direct"
	BackendImage  = "image"
)

// ProviderError reports a failed image generation.
type ProviderError struct {
	// Backend is BackendHosted, BackendDirect, or BackendImage for bytes that
	// could not be decoded after a successful call.
	Backend string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Message describes the failure.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	if e.Backend != "" {
		b.WriteString(e.Backend)
		b.WriteString(" provider: ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func hostedError(status int, err error, format string, args ...interface{}) *ProviderError {
	return &ProviderError{Backend: BackendHosted, StatusCode: status, Message: fmt.Sprintf(format, args...), Err: err}
}

func directError(status int, err error, format string, args ...interface{}) *ProviderError {
	return &ProviderError{Backend: BackendDirect, StatusCode: status, Message: fmt.Sprintf(format, args...), Err: err}
}

// InvalidImage wraps a decode failure of bytes a provider returned.
func InvalidImage(err error) *ProviderError {
	return &ProviderError{Backend: BackendImage, Message: "invalid image data", Err: err}
}

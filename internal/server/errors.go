package server

import (
	"errors"
	"fmt"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/provider"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/storage"
)

// JSON-RPC 2.0 error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

// ValidationError reports malformed tool arguments.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "Invalid image generation arguments: " + e.Reason
}

// UnknownToolError reports a tools/call for a tool this server does not have.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

var errNoImageData = errors.New("no image data returned")

// fault is the protocol-level classification of an error.
type fault struct {
	Kind string
	Code int

	// Wrap prefixes the message with "Failed to generate image: ".
	Wrap bool
}

var (
	faultValidation  = fault{Kind: "validation", Code: codeInvalidParams}
	faultUnknownTool = fault{Kind: "unknown_tool", Code: codeMethodNotFound}
	faultProvider    = fault{Kind: "provider", Code: codeInternalError, Wrap: true}
	faultPersistence = fault{Kind: "persistence", Code: codeInternalError, Wrap: true}
	faultInternal    = fault{Kind: "internal", Code: codeInternalError, Wrap: true}
)

// classify maps an error to its fault. The first matching kind wins.
func classify(err error) fault {
	var (
		vErr *ValidationError
		uErr *UnknownToolError
		pErr *provider.ProviderError
		sErr *storage.PersistenceError
	)

	switch {
	case errors.As(err, &vErr):
		return faultValidation
	case errors.As(err, &uErr):
		return faultUnknownTool
	case errors.As(err, &pErr):
		return faultProvider
	case errors.As(err, &sErr):
		return faultPersistence
	default:
		return faultInternal
	}
}

// toMCPError converts err into a JSON-RPC error, keeping its message.
func toMCPError(err error) *MCPError {
	f := classify(err)
	msg := err.Error()
	if f.Wrap {
		msg = "Failed to generate image: " + msg
	}
	return &MCPError{Code: f.Code, Message: msg, Data: f.Kind}
}

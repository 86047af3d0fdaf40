package server

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/diag"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/imaging"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/provider"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke ("generate_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// TextContent is one item of a tool result's content list.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the result of a successful tools/call.
type ToolResult struct {
	Content []TextContent `json:"content"`

	// Meta describes the saved image.
	Meta *imaging.ImageInfo `json:"_meta,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "Image generated and saved to: <path>"}]
//	}
//
// Failures become JSON-RPC errors through classify; see errors.go.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	log.Printf("Received tool call: %s", params.Name)

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log.Printf("Error in %s tool: %v", params.Name, err)
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   toMCPError(err),
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	switch name {
	case toolGenerateImage:
		return s.handleGenerateImage(ctx, args)
	default:
		return nil, &UnknownToolError{Name: name}
	}
}

// handleGenerateImage validates the arguments, generates the image with the
// selected provider, normalizes it to PNG and saves it.
func (s *Server) handleGenerateImage(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	req, err := ParseGenerationArgs(args)
	if err != nil {
		return nil, err
	}
	diag.Debugf("Using hosted API: %t", req.UseHostedAPI)

	gen := s.providers(req.UseHostedAPI)
	data, err := gen.Generate(ctx, req.Prompt)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errNoImageData
	}

	pngData, format, err := imaging.NormalizePNG(data)
	if err != nil {
		return nil, provider.InvalidImage(err)
	}
	if format != "png" {
		diag.Debugf("Converted %s image to png", format)
	}

	info, err := imaging.Describe(pngData)
	if err != nil {
		return nil, provider.InvalidImage(err)
	}
	if diag.Enabled() {
		if summary, err := json.Marshal(info); err == nil {
			diag.Debugf("Image summary: %s", summary)
		}
	}

	fileName := OutputFilename(req.ImageName)
	diag.Debugf("Saving image with filename: %s", fileName)

	path, err := s.saver.Save(fileName, pngData)
	if err != nil {
		return nil, err
	}
	log.Printf("Image saved successfully to: %s", path)

	return &ToolResult{
		Content: []TextContent{
			{Type: "text", Text: "Image generated and saved to: " + path},
		},
		Meta: info,
	}, nil
}

// OutputFilename drops everything from the first "." in imageName and adds
// ".png", so callers cannot pick the extension.
func OutputFilename(imageName string) string {
	if i := strings.Index(imageName, "."); i >= 0 {
		imageName = imageName[:i]
	}
	return imageName + ".png"
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

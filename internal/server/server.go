package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/diag"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/provider"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/storage"
)

const (
	// ServerName is reported in the initialize handshake.
	ServerName = "image-generator"

	// ServerVersion is reported in the initialize handshake.
	ServerVersion = "0.1.0"

	protocolVersion = "2024-11-05"

	// maxLineSize caps a single request line; longer lines are skipped.
	maxLineSize = 1024 * 1024
)

// ProviderFactory returns the generator to use for one tool call.
type ProviderFactory func(useHosted bool) provider.Generator

// Server handles MCP protocol communication
type Server struct {
	saver     *storage.Saver
	providers ProviderFactory
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server that writes every generated image through saver and
// asks providers for a generator on each call. The saver is shared for the
// lifetime of the server.
func New(saver *storage.Saver, providers ProviderFactory) *Server {
	return &Server{
		saver:     saver,
		providers: providers,
	}
}

// Run serves MCP over stdin/stdout until ctx is cancelled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from in and writes responses to
// out. Requests are handled one at a time. It returns nil when in reaches EOF
// or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		reader := bufio.NewReaderSize(in, 64*1024)

		for {
			line, tooLong, err := readLine(reader, maxLineSize)
			if tooLong {
				log.Printf("Skipping request line longer than %d bytes", maxLineSize)
			} else if len(line) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					readErr <- nil
					return
				}
			}
			if err != nil {
				if err == io.EOF {
					err = nil
				}
				readErr <- err
				return
			}
		}
	}()

	encoder := json.NewEncoder(out)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutting down: %v", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read error: %w", err)
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}

			var req MCPRequest
			if err := json.Unmarshal(line, &req); err != nil {
				log.Printf("Failed to parse request: %v", err)
				continue
			}

			resp := s.handleRequest(ctx, &req)
			if resp != nil {
				if err := encoder.Encode(resp); err != nil {
					log.Printf("Failed to encode response: %v", err)
				}
			}
		}
	}
}

// readLine reads one newline-terminated line without its line ending. A line
// longer than limit is drained from r and reported as tooLong with no data.
// err is io.EOF when the input ended, possibly after a final unterminated line.
func readLine(r *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		var chunk []byte
		chunk, err = r.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return bytes.TrimRight(line, "\r\n"), tooLong, err
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	diag.Debugf("Received %s request", req.Method)

	// Notifications never get a reply, even when the method is unknown.
	if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": ServerVersion,
			},
		},
	}
}

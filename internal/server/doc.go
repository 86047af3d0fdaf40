// Package server implements the MCP (Model Context Protocol) server that
// exposes the generate_image tool.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # generate_image
//
// Arguments:
//   - prompt (string, required): what to draw
//   - imageName (string, required): file name without extension
//   - useHostedApi (boolean, default true): hosted proxy or direct OpenAI
//
// The image is saved as <imageName>.png in the output directory; any extension
// in imageName is dropped. An existing file is never overwritten; a timestamp
// is appended instead. On success the result text is
// "Image generated and saved to: <path>" and _meta carries the image summary.
//
// # Error Handling
//
// Errors are mapped to JSON-RPC error codes by kind:
//   - ValidationError: -32602 (invalid params)
//   - UnknownToolError: -32601 (method not found)
//   - provider.ProviderError, storage.PersistenceError, other: -32603 (internal)
//
// Internal errors carry "Failed to generate image: <cause>" as the message and
// the kind name in data. A failed call never stops the server.
//
// # Usage
//
//	saver, _ := storage.NewDesktopSaver("generated-images")
//	srv := server.New(saver, func(useHosted bool) provider.Generator {
//	    return provider.New(useHosted, opts)
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

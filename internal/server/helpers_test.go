package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/provider"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/storage"
)

// fakeGenerator returns canned bytes or an error and records the prompts it saw.
type fakeGenerator struct {
	data    []byte
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	f.prompts = append(f.prompts, prompt)
	return f.data, f.err
}

// testEnv bundles a server with the saver and fake provider behind it.
type testEnv struct {
	server    *Server
	saver     *storage.Saver
	gen       *fakeGenerator
	modesSeen []bool
}

func newTestEnv(t *testing.T, gen *fakeGenerator) *testEnv {
	t.Helper()
	saver, err := storage.NewSaver(t.TempDir())
	if err != nil {
		t.Fatalf("NewSaver: %v", err)
	}

	env := &testEnv{saver: saver, gen: gen}
	env.server = New(saver, func(useHosted bool) provider.Generator {
		env.modesSeen = append(env.modesSeen, useHosted)
		return gen
	})
	return env
}

// testPNG returns a small encoded PNG of a single color.
func testPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// callRequest builds a tools/call request for name with the given arguments.
func callRequest(t *testing.T, name string, args interface{}) *MCPRequest {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	return &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	}
}

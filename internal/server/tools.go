package server

// toolGenerateImage is the only tool this server exposes.
const toolGenerateImage = "generate_image"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        toolGenerateImage,
			Description: "Generate an image from a prompt and save it as a PNG in the generated-images folder on the desktop.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "A prompt detailing what image to generate.",
					},
					"imageName": map[string]interface{}{
						"type":        "string",
						"description": "The filename for the image excluding any extensions.",
					},
					"useHostedApi": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to use the hosted API at imagegen.sololink.cloud (true) or generate directly with OpenAI (false).",
						"default":     true,
					},
				},
				"required": []string{"prompt", "imageName"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

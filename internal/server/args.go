package server

import (
	"encoding/json"
	"log"
)

// GenerationRequest holds validated generate_image arguments.
type GenerationRequest struct {
	Prompt       string
	ImageName    string
	UseHostedAPI bool
}

// IsValidGenerationArgs reports whether args, as decoded from JSON, has the
// shape generate_image expects: an object with string "prompt" and
// "imageName" fields and, optionally, a boolean "useHostedApi".
func IsValidGenerationArgs(args interface{}) bool {
	return checkGenerationArgs(args) == ""
}

// checkGenerationArgs returns the reason args is invalid, or "" if it is valid.
func checkGenerationArgs(args interface{}) string {
	obj, ok := args.(map[string]interface{})
	if !ok || obj == nil {
		return "arguments is not an object or is null"
	}

	if v, ok := obj["prompt"]; !ok || !isString(v) {
		return "missing or invalid 'prompt' parameter"
	}

	if v, ok := obj["imageName"]; !ok || !isString(v) {
		return "missing or invalid 'imageName' parameter"
	}

	if v, ok := obj["useHostedApi"]; ok {
		if _, isBool := v.(bool); !isBool {
			return "invalid 'useHostedApi' parameter, must be a boolean if provided"
		}
	}

	return ""
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

// ParseGenerationArgs decodes and validates raw tool arguments. UseHostedAPI
// defaults to true when the field is absent.
func ParseGenerationArgs(raw json.RawMessage) (*GenerationRequest, error) {
	var args interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			log.Printf("Invalid arguments: %v", err)
			return nil, &ValidationError{Reason: "arguments are not valid JSON"}
		}
	}

	if reason := checkGenerationArgs(args); reason != "" {
		log.Printf("Invalid arguments (%s): %s", reason, raw)
		return nil, &ValidationError{Reason: reason}
	}

	obj := args.(map[string]interface{})
	req := &GenerationRequest{
		Prompt:       obj["prompt"].(string),
		ImageName:    obj["imageName"].(string),
		UseHostedAPI: true,
	}
	if v, ok := obj["useHostedApi"].(bool); ok {
		req.UseHostedAPI = v
	}
	return req, nil
}

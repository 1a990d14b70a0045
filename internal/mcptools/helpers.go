// Package mcptools exposes the health-check engine as MCP tools.
//
// Each tool is a struct holding its dependencies, with Definition() returning
// the mcp.Tool schema and Handle() answering a call.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jonathan/health-check/internal/types"
)

// floatArg extracts a numeric argument, returning defaultVal if missing (JSON numbers are float64).
func floatArg(req mcp.CallToolRequest, key string, defaultVal float64) float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return v
}

// answersArg decodes the "answers" argument, a JSON object of question ID to choice index.
// It accepts either an encoded string or an already decoded object.
func answersArg(req mcp.CallToolRequest) (types.Answers, error) {
	raw, ok := req.GetArguments()["answers"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("'answers' is required")
	}

	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("'answers' is not valid JSON: %w", err)
		}
		data = encoded
	}

	var answers types.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("'answers' must map question IDs to choice indexes: %w", err)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("'answers' is empty")
	}
	return answers, nil
}

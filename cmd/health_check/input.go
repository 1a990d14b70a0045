package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/jonathan/health-check/internal/types"
)

// readRequest loads an answers document from path ("-" for stdin). The document is
// YAML or JSON and is either a full request or a bare map of question ID to choice index.
func readRequest(path string, stdin io.Reader) (*types.AssessmentRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read answers %s: %w", path, err)
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse answers %s: %w", path, err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("answers %s must be an object: %w", path, err)
	}

	req := &types.AssessmentRequest{}
	if _, ok := probe["answers"]; ok {
		if err := json.Unmarshal(jsonData, req); err != nil {
			return nil, fmt.Errorf("failed to decode request %s: %w", path, err)
		}
		return req, nil
	}

	if err := json.Unmarshal(jsonData, &req.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers %s: %w", path, err)
	}
	return req, nil
}

// parseAnswerFlags turns repeated "question=index" flags into answers.
func parseAnswerFlags(values []string) (types.Answers, error) {
	answers := types.Answers{}
	for _, v := range values {
		id, idx, ok := strings.Cut(v, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --answer %q: want question=index", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			return nil, fmt.Errorf("invalid --answer %q: %w", v, err)
		}
		answers[id] = n
	}
	return answers, nil
}

// buildRequest merges an optional answers file with --answer flags; flags win.
func buildRequest(path string, flags []string, stdin io.Reader) (*types.AssessmentRequest, error) {
	req := &types.AssessmentRequest{Answers: types.Answers{}}
	if path != "" {
		loaded, err := readRequest(path, stdin)
		if err != nil {
			return nil, err
		}
		req = loaded
		if req.Answers == nil {
			req.Answers = types.Answers{}
		}
	}

	overrides, err := parseAnswerFlags(flags)
	if err != nil {
		return nil, err
	}
	for id, idx := range overrides {
		req.Answers[id] = idx
	}

	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("no answers given: use --answers or --answer")
	}
	return req, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/health-check/internal/pipeline"
)

// Event names on /assessments/stream
const (
	eventStep     = "step"
	eventComplete = "complete"
	eventError    = "error"
)

// SSEWriter streams assessment progress as server-sent events. Every event
// carries an increasing id so clients can tell where a dropped stream stopped.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	nextID  int
}

// NewSSEWriter switches w to an event stream. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one named event with a JSON payload.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}

	s.nextID++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.nextID, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteStep forwards a pipeline progress event.
func (s *SSEWriter) WriteStep(event pipeline.ProgressEvent) error {
	return s.WriteEvent(eventStep, event)
}

// WriteResult ends the stream with the run result.
func (s *SSEWriter) WriteResult(res *pipeline.RunResult) error {
	return s.WriteEvent(eventComplete, res)
}

// WriteError ends the stream with an error message.
func (s *SSEWriter) WriteError(message string) error {
	return s.WriteEvent(eventError, map[string]string{"error": message})
}

package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Encoder frames generation events for the client, one JSON object per
// line, flushing after every event. It also accumulates relayed chunk text
// so the caller can parse the full payload once the provider stream ends.
//
// The encoder itself is write-only and enforces nothing about terminal
// events; emitting exactly one end or error per request is the
// orchestrator's job.
type Encoder struct {
	w       io.Writer
	flusher http.Flusher
	buf     strings.Builder
}

func NewEncoder(w io.Writer) *Encoder {
	enc := &Encoder{w: w}
	if f, ok := w.(http.Flusher); ok {
		enc.flusher = f
	}
	return enc
}

func (e *Encoder) Start(message string) error {
	return e.emit(map[string]any{"type": "start", "message": message})
}

func (e *Encoder) Chunk(text string) error {
	e.buf.WriteString(text)
	return e.emit(map[string]any{"type": "chunk", "content": text})
}

// End emits the terminal success event. Extra carries the artifact payload
// keyed by kind plus file/credit bookkeeping per the wire contract.
func (e *Encoder) End(extra map[string]any) error {
	event := map[string]any{"type": "end"}
	for k, v := range extra {
		event[k] = v
	}
	return e.emit(event)
}

func (e *Encoder) Error(message string) error {
	return e.emit(map[string]any{"type": "error", "message": message})
}

// Text returns everything relayed through Chunk so far.
func (e *Encoder) Text() string {
	return e.buf.String()
}

func (e *Encoder) emit(event map[string]any) error {
	// json.Marshal escapes control characters, so embedded newlines in
	// model output cannot break the line framing.
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal stream event: %w", err)
	}
	if _, err := e.w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write stream event: %w", err)
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}

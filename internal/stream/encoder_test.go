package stream

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEncoderFramesOneEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Start("Generating worksheet"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := enc.Chunk(`{"title":`); err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if err := enc.Chunk(`"T"}`); err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if err := enc.End(map[string]any{"credits_used": 1}); err != nil {
		t.Fatalf("End: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines: want=4 got=%d (%q)", len(lines), buf.String())
	}
	for i, line := range lines {
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("line %d not parseable JSON: %v (%q)", i+1, err, line)
		}
	}
	var last map[string]any
	_ = json.Unmarshal([]byte(lines[3]), &last)
	if last["type"] != "end" || last["credits_used"] != float64(1) {
		t.Fatalf("end event: got %v", last)
	}
}

func TestEncoderEscapesControlCharacters(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Chunk("line one\nline two\ttabbed"); err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("embedded newline corrupted framing: %q", out)
	}
	var event map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSuffix(out, "\n")), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event["content"] != "line one\nline two\ttabbed" {
		t.Fatalf("content round-trip: got %q", event["content"])
	}
}

func TestEncoderAccumulatesChunkText(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{})
	_ = enc.Chunk("{\"a\":")
	_ = enc.Chunk("1}")
	if enc.Text() != "{\"a\":1}" {
		t.Fatalf("Text: want=%q got=%q", "{\"a\":1}", enc.Text())
	}
}

func TestEncoderErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Error("generation failed"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	var event map[string]any
	if err := json.Unmarshal(bytes.TrimRight(buf.Bytes(), "\n"), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event["type"] != "error" || event["message"] != "generation failed" {
		t.Fatalf("error event: got %v", event)
	}
}

package openai

import (
	"errors"
	"strings"
	"testing"
)

func TestReadSSEFlushesOnBlankLineAndEOF(t *testing.T) {
	body := ": keepalive\n" +
		"data: {\"a\":1}\n" +
		"\n" +
		"data: first\n" +
		"data: second\n" +
		"\n" +
		"data: tail-without-blank"

	var got []string
	err := readSSE(strings.NewReader(body), func(data string) error {
		got = append(got, data)
		return nil
	})
	if err != nil {
		t.Fatalf("readSSE: %v", err)
	}

	want := []string{`{"a":1}`, "first\nsecond", "tail-without-blank"}
	if len(got) != len(want) {
		t.Fatalf("event count: want=%d got=%d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: want=%q got=%q", i, want[i], got[i])
		}
	}
}

func TestReadSSEStopsOnCallbackError(t *testing.T) {
	body := "data: one\n\ndata: two\n\n"
	stop := errors.New("done")

	calls := 0
	err := readSSE(strings.NewReader(body), func(data string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("want callback error surfaced, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("reader must stop after the callback errors, got %d calls", calls)
	}
}

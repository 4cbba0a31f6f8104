package openai

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// readSSE walks a text/event-stream body and hands each event's data
// payload to onData. Multi-line data fields are joined with newlines per
// the SSE spec.
func readSSE(r io.Reader, onData func(data string) error) error {
	br := bufio.NewReader(r)
	var dataLines []string

	flush := func() error {
		if len(dataLines) == 0 {
			return nil
		}
		data := strings.Join(dataLines, "\n")
		dataLines = nil
		if onData == nil {
			return nil
		}
		return onData(data)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return flush()
			}
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		// Blank line ends the event.
		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}

		// Comment.
		if strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
}

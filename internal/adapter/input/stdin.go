package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// StdinAdapter reads messages from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads messages from standard input.
// Supports two formats:
// 1. JSON array of {"title": ..., "message": ...} objects
// 2. One message per line, with an optional title before the first tab
func (a *StdinAdapter) Import(ctx context.Context) ([]Message, error) {
	scanner := bufio.NewScanner(a.reader)
	const maxSize = 10 * 1024 * 1024 // 10MB max
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var data []byte
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data = append(data, scanner.Bytes()...)
		data = append(data, '\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		return parseJSONArray(trimmed)
	}
	return parseLines(string(data)), nil
}

// parseJSONArray parses a JSON array of messages.
func parseJSONArray(data []byte) ([]Message, error) {
	var entries []Message
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to parse JSON input",
			Err:     err,
		}
	}

	messages := make([]Message, 0, len(entries))
	for _, e := range entries {
		m := Message{Title: sanitizeString(e.Title), Message: sanitizeString(e.Message)}
		if m.Title == "" && m.Message == "" {
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func parseLines(data string) []Message {
	var messages []Message
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		title, message, found := strings.Cut(line, "\t")
		if !found {
			title, message = "", title
		}
		messages = append(messages, Message{
			Title:   sanitizeString(title),
			Message: sanitizeString(strings.ReplaceAll(message, `\n`, "\n")),
		})
	}
	return messages
}

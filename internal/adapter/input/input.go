// Package input provides input adapters that produce toasts to send.
package input

import (
	"context"
	"strings"
)

// Message is one toast to submit.
type Message struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// InputAdapter fetches messages from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "stdin", "clipboard").
	Name() string

	// Import fetches messages from the source.
	Import(ctx context.Context) ([]Message, error)
}

// TextReader reads a single block of text, such as the clipboard contents.
type TextReader interface {
	Read(ctx context.Context) (string, error)
}

// NewAdapter creates an InputAdapter for the specified source.
// clip is only used by the clipboard source.
func NewAdapter(source string, clip TextReader) (InputAdapter, error) {
	switch source {
	case "stdin", "-":
		return NewStdinAdapter(), nil
	case "clipboard":
		if clip == nil {
			return nil, &AdapterError{Source: source, Message: "no clipboard reader configured"}
		}
		return NewClipboardAdapter(clip), nil
	default:
		return nil, &AdapterError{
			Source:  source,
			Message: "unknown or unavailable adapter",
		}
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Source + ": " + e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// sanitizeString replaces control characters other than newline and tab.
func sanitizeString(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r < 32 && r != '\n' && r != '\t' {
			result.WriteRune(' ')
		} else {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

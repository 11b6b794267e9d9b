package input

import (
	"context"
)

// ClipboardAdapter turns the clipboard contents into a single untitled message.
type ClipboardAdapter struct {
	reader TextReader
}

// NewClipboardAdapter creates a ClipboardAdapter reading through r.
func NewClipboardAdapter(r TextReader) *ClipboardAdapter {
	return &ClipboardAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *ClipboardAdapter) Name() string {
	return "clipboard"
}

// Import reads the clipboard.
func (a *ClipboardAdapter) Import(ctx context.Context) ([]Message, error) {
	text, err := a.reader.Read(ctx)
	if err != nil {
		return nil, &AdapterError{Source: "clipboard", Message: "failed to read clipboard", Err: err}
	}
	return []Message{{Message: text}}, nil
}

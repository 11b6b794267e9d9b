// Package output provides output formatters for toast status.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/cliptoast/internal/toast"
)

// Formatter formats a status snapshot for output.
type Formatter interface {
	// Format writes the formatted status to the writer.
	Format(w io.Writer, st toast.Status) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatWaybar FormatType = "waybar"
)

// ValidFormats returns all format types.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatWaybar}
}

// NewFormatter creates a formatter for the specified format type.
// Unknown formats fall back to plain text.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatWaybar:
		return NewWaybarFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template       string // Custom per-toast template for plain format
	MessageMaxLen  int    // Maximum message length (0 = unlimited)
	IncludeNewline bool   // Include newlines in messages (default: replace with space)
	// Now is the reference time for ages. Zero means time.Now.
	Now time.Time
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		MessageMaxLen: 80,
	}
}

func (o FormatterOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/cliptoast/internal/toast"
)

// PlainFormatter formats status as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs(opts.now())).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// templateData provides data for custom templates.
type templateData struct {
	Index int
	toast.Info
	Age string
}

// Format writes the status as plain text.
func (f *PlainFormatter) Format(w io.Writer, st toast.Status) error {
	now := f.opts.now()

	if f.template != nil {
		for i, info := range st.Visible {
			data := templateData{Index: i + 1, Info: info, Age: age(info.CreatedAt, now)}
			if err := f.template.Execute(w, data); err != nil {
				return err
			}
		}
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "anchor: %s\n", st.Anchor)
	fmt.Fprintf(&sb, "visible: %d/%d\n", len(st.Visible), toast.VisibleLimit)
	for _, info := range st.Visible {
		fmt.Fprintf(&sb, "  [%d] %s %s (%s, %.0f%%)\n",
			info.Slot, info.State, displayTitle(info.Title), age(info.CreatedAt, now), info.Opacity*100)
		if msg := sanitizeMessage(info.Message, f.opts.MessageMaxLen, f.opts.IncludeNewline); msg != "" {
			sb.WriteString("      " + msg + "\n")
		}
	}

	fmt.Fprintf(&sb, "queued: %d\n", len(st.Queued))
	for i, q := range st.Queued {
		fmt.Fprintf(&sb, "  %d. %s (queued %s)\n", i+1, displayTitle(q.Title), age(q.QueuedAt, now))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func displayTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

// templateFuncs returns template helper functions.
func templateFuncs(now time.Time) template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			return sanitizeMessage(s, maxLen, true)
		},
		"age": func(t time.Time) string {
			return age(t, now)
		},
	}
}

// age returns a human-readable duration since t.
func age(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// sanitizeMessage cleans up message text for single-line display.
func sanitizeMessage(msg string, maxLen int, includeNewline bool) string {
	if !includeNewline {
		msg = strings.ReplaceAll(msg, "\r", "")
		msg = strings.ReplaceAll(msg, "\n", " ")
	}

	// Collapse multiple spaces
	for strings.Contains(msg, "  ") {
		msg = strings.ReplaceAll(msg, "  ", " ")
	}

	msg = strings.TrimSpace(msg)

	runes := []rune(msg)
	if maxLen > 0 && len(runes) > maxLen {
		if maxLen <= 3 {
			return string(runes[:maxLen])
		}
		return string(runes[:maxLen-3]) + "..."
	}

	return msg
}

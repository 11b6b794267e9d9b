// Package clipboard reads text from the system clipboard.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

const defaultTimeout = 5 * time.Second

var (
	// ErrEmpty is returned when the clipboard holds no text.
	ErrEmpty = errors.New("clipboard is empty")

	// ErrNoSelectionTool is returned when no command can read the primary selection.
	ErrNoSelectionTool = errors.New("no primary selection tool found (install wl-clipboard, xclip or xsel)")
)

// Commands that print the primary selection, i.e. the highlighted text.
var (
	waylandSelection = []string{"wl-paste --primary --no-newline"}
	x11Selection     = []string{"xclip -o -selection primary", "xsel --primary --output"}
)

// Reader reads the clipboard with a configured command, or with the
// system clipboard library when no command is set.
type Reader struct {
	command string
	timeout time.Duration
	readAll func() (string, error)
}

// NewReader creates a Reader. command is split on whitespace, e.g.
// "wl-paste --no-newline" or "xclip -o -selection clipboard".
func NewReader(command string) *Reader {
	return &Reader{
		command: strings.TrimSpace(command),
		timeout: defaultTimeout,
		readAll: clipboard.ReadAll,
	}
}

// NewSelectionReader creates a Reader for the primary selection. An empty
// command picks the first selection tool found on PATH, preferring
// wl-paste under Wayland.
func NewSelectionReader(command string) *Reader {
	r := NewReader(command)
	if r.command == "" {
		r.command = selectionCommand(exec.LookPath, os.Getenv("WAYLAND_DISPLAY") != "")
	}
	if r.command == "" {
		r.readAll = func() (string, error) { return "", ErrNoSelectionTool }
	}
	return r
}

func selectionCommand(lookPath func(string) (string, error), wayland bool) string {
	candidates := append(append([]string{}, x11Selection...), waylandSelection...)
	if wayland {
		candidates = append(append([]string{}, waylandSelection...), x11Selection...)
	}
	for _, c := range candidates {
		if _, err := lookPath(strings.Fields(c)[0]); err == nil {
			return c
		}
	}
	return ""
}

// Read returns the clipboard text.
func (r *Reader) Read(ctx context.Context) (string, error) {
	var (
		text string
		err  error
	)
	if r.command != "" {
		text, err = r.runCommand(ctx)
	} else {
		text, err = r.readAll()
	}
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func (r *Reader) runCommand(ctx context.Context) (string, error) {
	parts := strings.Fields(r.command)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", parts[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", parts[0], err)
	}
	return stdout.String(), nil
}

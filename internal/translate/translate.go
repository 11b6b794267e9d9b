// Package translate turns clipboard text into the configured target language
// by piping it through an external command.
package translate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/jmylchreest/cliptoast/internal/config"
)

// ErrEmptyResult is returned when the command printed nothing.
var ErrEmptyResult = errors.New("translation is empty")

// Translator translates text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Command runs an external program with the text on stdin and reads the
// translation from stdout.
type Command struct {
	source  string
	target  string
	argv    []string
	timeout time.Duration
}

var _ Translator = (*Command)(nil)

// NewCommand builds a Command from config. {source} and {target} in the
// command are replaced with the language codes.
func NewCommand(cfg config.TranslateConfig) (*Command, error) {
	fields := strings.Fields(cfg.Command)
	if len(fields) == 0 {
		return nil, errors.New("translate command is empty")
	}

	r := strings.NewReplacer("{source}", cfg.Source, "{target}", cfg.Target)
	argv := make([]string, len(fields))
	for i, f := range fields {
		argv[i] = r.Replace(f)
	}

	return &Command{
		source:  cfg.Source,
		target:  cfg.Target,
		argv:    argv,
		timeout: cfg.Timeout.Duration(),
	}, nil
}

// Translate returns text unchanged when source and target match.
func (c *Command) Translate(ctx context.Context, text string) (string, error) {
	if c.source == c.target {
		return text, nil
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.argv[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.argv[0], err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", ErrEmptyResult
	}
	return out, nil
}

// OrOriginal translates text and falls back to the input on any failure.
func OrOriginal(ctx context.Context, tr Translator, text string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	if tr == nil {
		return text
	}

	out, err := tr.Translate(ctx, text)
	if err != nil {
		logger.Warn("translation failed, using original text", "error", err)
		return text
	}
	return out
}

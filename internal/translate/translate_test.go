package translate

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliptoast/internal/config"
)

func newCommand(t *testing.T, command, source, target string) *Command {
	t.Helper()
	c, err := NewCommand(config.TranslateConfig{
		Enabled: true,
		Source:  source,
		Target:  target,
		Command: command,
		Timeout: config.Duration(5 * time.Second),
	})
	require.NoError(t, err)
	return c
}

func TestNewCommand_ExpandsPlaceholders(t *testing.T) {
	c := newCommand(t, "trans -b {source}:{target}", "en", "ru")
	assert.Equal(t, []string{"trans", "-b", "en:ru"}, c.argv)

	_, err := NewCommand(config.TranslateConfig{Command: "   "})
	assert.Error(t, err)
}

func TestCommand_PipesThroughStdin(t *testing.T) {
	c := newCommand(t, "tr a-z A-Z", "en", "ru")
	out, err := c.Translate(context.Background(), "hello world\n")
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", out)
}

func TestCommand_SameLanguageIsIdentity(t *testing.T) {
	c := newCommand(t, "false", "en", "en")
	out, err := c.Translate(context.Background(), "unchanged")
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}

func TestCommand_Errors(t *testing.T) {
	_, err := newCommand(t, "false", "en", "ru").Translate(context.Background(), "x")
	assert.Error(t, err)

	_, err = newCommand(t, "true", "en", "ru").Translate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

type stubTranslator struct {
	out string
	err error
}

func (s stubTranslator) Translate(context.Context, string) (string, error) {
	return s.out, s.err
}

func TestOrOriginal(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := context.Background()

	assert.Equal(t, "privet", OrOriginal(ctx, stubTranslator{out: "privet"}, "hello", logger))
	assert.Equal(t, "hello", OrOriginal(ctx, stubTranslator{err: errors.New("offline")}, "hello", logger))
	assert.Equal(t, "hello", OrOriginal(ctx, nil, "hello", logger))
}

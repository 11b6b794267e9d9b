package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Command(t *testing.T) {
	r := NewReader("echo hello clipboard")
	text, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello clipboard\n", text)
}

func TestReader_CommandFails(t *testing.T) {
	r := NewReader("false")
	_, err := r.Read(context.Background())
	assert.ErrorContains(t, err, "failed to read clipboard")
}

func TestReader_EmptyCommandOutput(t *testing.T) {
	r := NewReader("true")
	_, err := r.Read(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReader_Library(t *testing.T) {
	r := NewReader("")
	r.readAll = func() (string, error) { return "from library", nil }

	text, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from library", text)

	r.readAll = func() (string, error) { return "", errors.New("no display") }
	_, err = r.Read(context.Background())
	assert.ErrorContains(t, err, "no display")
}

func TestSelectionCommand(t *testing.T) {
	installed := func(names ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, n := range names {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		}
	}

	tests := []struct {
		name    string
		tools   []string
		wayland bool
		want    string
	}{
		{"wayland prefers wl-paste", []string{"xclip", "wl-paste"}, true, "wl-paste --primary --no-newline"},
		{"x11 prefers xclip", []string{"xclip", "wl-paste"}, false, "xclip -o -selection primary"},
		{"xsel fallback", []string{"xsel"}, true, "xsel --primary --output"},
		{"nothing installed", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectionCommand(installed(tt.tools...), tt.wayland))
		})
	}
}

func TestSelectionReader_ConfiguredCommand(t *testing.T) {
	r := NewSelectionReader("echo highlighted")
	text, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "highlighted\n", text)
}

func TestSelectionReader_NoTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	r := NewSelectionReader("")
	_, err := r.Read(context.Background())
	assert.ErrorIs(t, err, ErrNoSelectionTool)
}

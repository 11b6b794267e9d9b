package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliptoast/internal/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "top-right", cfg.Display.Anchor)
	assert.Empty(t, cfg.Display.Style)
	assert.Equal(t, layout.TopRight, cfg.Anchor())
	assert.Equal(t, layout.DefaultSize(), cfg.ToastSize())
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Live.Duration())
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, "dismiss", cfg.Mouse.Left)
	assert.Equal(t, "close", cfg.Mouse.Middle)
	assert.Equal(t, "none", cfg.Mouse.Right)
	assert.Empty(t, cfg.Clipboard.Command)
	assert.False(t, cfg.Mirror.Enabled)
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/cliptoastd.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliptoastd.toml")
	content := `
[display]
anchor = "bottom-left"
width = 400
style = "~/rice/toast.css"

[timeouts]
live = "8s"

[audio]
enabled = true
volume = 40
sound = "~/sounds/pop.ogg"

[translate]
source = "de"
target = "en"
command = "my-translator --from {source} --to {target}"
timeout = "3s"

[clipboard]
command = "wl-paste --no-newline"
selection = "xclip -o -selection primary"

[mouse]
left = "close"
right = "dismiss"

[mirror]
enabled = true
ignore = ["spotify"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, layout.BottomLeft, cfg.Anchor())
	assert.Equal(t, layout.Size{Width: 400, Height: layout.DefaultHeight}, cfg.ToastSize())
	assert.Equal(t, "~/rice/toast.css", cfg.Display.Style)
	assert.Equal(t, 8*time.Second, cfg.Timeouts.Live.Duration())
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.Equal(t, "~/sounds/pop.ogg", cfg.Audio.Sound)
	assert.Equal(t, "de", cfg.Translate.Source)
	assert.Equal(t, "my-translator --from {source} --to {target}", cfg.Translate.Command)
	assert.Equal(t, 3*time.Second, cfg.Translate.Timeout.Duration())
	assert.Equal(t, "wl-paste --no-newline", cfg.Clipboard.Command)
	assert.Equal(t, "xclip -o -selection primary", cfg.Clipboard.Selection)
	assert.Equal(t, "close", cfg.Mouse.Left)
	assert.Equal(t, "close", cfg.Mouse.Middle, "unset keys keep defaults")
	assert.Equal(t, "dismiss", cfg.Mouse.Right)
	assert.True(t, cfg.Mirror.Enabled)
	assert.Equal(t, []string{"spotify"}, cfg.Mirror.Ignore)
	assert.Empty(t, cfg.Mirror.Apps)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliptoastd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidAnchor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliptoastd.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nanchor = \"top-center\"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrInvalidAnchor)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero live", func(c *Config) { c.Timeouts.Live = 0 }},
		{"volume too high", func(c *Config) { c.Audio.Volume = 101 }},
		{"width too small", func(c *Config) { c.Display.Width = 10 }},
		{"height too large", func(c *Config) { c.Display.Height = 5000 }},
		{"unknown mouse action", func(c *Config) { c.Mouse.Middle = "context-menu" }},
		{"translate without command", func(c *Config) { c.Translate.Command = "  " }},
		{"negative translate timeout", func(c *Config) { c.Translate.Timeout = Duration(-time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Translate.Enabled = false
	cfg.Translate.Command = ""
	assert.NoError(t, cfg.Validate(), "command is only required when enabled")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "cliptoastd.toml")

	cfg := Default()
	cfg.Display.Anchor = "center"
	cfg.Timeouts.Live = Duration(1500 * time.Millisecond)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, layout.Center, loaded.Anchor())
	assert.Equal(t, 1500*time.Millisecond, loaded.Timeouts.Live.Duration())
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/cliptoast/cliptoastd.toml", Path())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"2500", 2500 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/sounds/a.wav", ExpandPath("~/sounds/a.wav"))
	assert.Equal(t, "/abs/a.wav", ExpandPath("/abs/a.wav"))
}

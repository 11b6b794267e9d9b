// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/cliptoast/internal/layout"
)

// Config is the configuration shared by cliptoastd and cliptoast.
// Loaded from ~/.config/cliptoast/cliptoastd.toml
type Config struct {
	Display   DisplayConfig   `toml:"display"`
	Timeouts  TimeoutConfig   `toml:"timeouts"`
	Audio     AudioConfig     `toml:"audio"`
	Translate TranslateConfig `toml:"translate"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Mouse     MouseConfig     `toml:"mouse"`
	Mirror    MirrorConfig    `toml:"mirror"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	Anchor string `toml:"anchor"` // "top-right", "top-left", "bottom-right", "bottom-left", "center"
	Width  int    `toml:"width"`  // Toast width in pixels
	Height int    `toml:"height"` // Toast height in pixels
	Style  string `toml:"style"`  // User stylesheet; empty uses ~/.config/cliptoast/style.css
}

// TimeoutConfig contains toast timing.
type TimeoutConfig struct {
	Live Duration `toml:"live"` // Countdown after the pointer has left, e.g. "5s"
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Sound   string `toml:"sound"`  // wav/ogg/mp3; empty plays a short tone
}

// TranslateConfig controls `cliptoast translate`.
type TranslateConfig struct {
	Enabled bool   `toml:"enabled"`
	Source  string `toml:"source"`
	Target  string `toml:"target"`
	// Command reads text on stdin and writes the translation to stdout.
	// {source} and {target} are replaced with the language codes.
	Command string   `toml:"command"`
	Timeout Duration `toml:"timeout"`
}

// ClipboardConfig holds clipboard settings.
type ClipboardConfig struct {
	Command string `toml:"command"` // e.g. "wl-paste --no-newline"; empty uses the system clipboard library
	// Selection reads the primary selection for `translate --selection`,
	// e.g. "wl-paste --primary --no-newline"; empty picks wl-paste, xclip or xsel.
	Selection string `toml:"selection"`
}

// MirrorConfig controls forwarding of desktop notifications into the queue.
type MirrorConfig struct {
	Enabled bool     `toml:"enabled"`
	Apps    []string `toml:"apps"`   // Only these applications; empty means all
	Ignore  []string `toml:"ignore"` // Never these applications
}

// MouseConfig maps mouse buttons to toast actions.
type MouseConfig struct {
	Left   string `toml:"left"`
	Middle string `toml:"middle"`
	Right  string `toml:"right"`
}

// MouseAction is what a mouse button does to a toast.
type MouseAction string

const (
	// MouseActionDismiss closes the toast at once and drops the queue.
	MouseActionDismiss MouseAction = "dismiss"
	// MouseActionClose fades the toast out.
	MouseActionClose MouseAction = "close"
	MouseActionNone  MouseAction = "none"
)

// ValidMouseActions returns all valid mouse actions.
func ValidMouseActions() []MouseAction {
	return []MouseAction{MouseActionDismiss, MouseActionClose, MouseActionNone}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Anchor: layout.TopRight.String(),
			Width:  layout.DefaultWidth,
			Height: layout.DefaultHeight,
		},
		Timeouts: TimeoutConfig{
			Live: Duration(5 * time.Second),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Translate: TranslateConfig{
			Enabled: true,
			Source:  "en",
			Target:  "ru",
			Command: "trans -b {source}:{target}",
			Timeout: Duration(10 * time.Second),
		},
		Mouse: MouseConfig{
			Left:   string(MouseActionDismiss),
			Middle: string(MouseActionClose),
			Right:  string(MouseActionNone),
		},
	}
}

// Path returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cliptoast", "cliptoastd.toml")
}

// Load reads the configuration at path, or the default path when empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := layout.ParseAnchor(c.Display.Anchor); err != nil {
		return fmt.Errorf("display.anchor: %w (must be one of %v)", err, layout.ValidAnchors())
	}

	if c.Display.Width < 100 || c.Display.Width > 1000 {
		return fmt.Errorf("display.width must be between 100 and 1000, got %d", c.Display.Width)
	}
	if c.Display.Height < 50 || c.Display.Height > 1000 {
		return fmt.Errorf("display.height must be between 50 and 1000, got %d", c.Display.Height)
	}

	if c.Timeouts.Live.Duration() <= 0 {
		return fmt.Errorf("timeouts.live must be positive, got %s", c.Timeouts.Live.Duration())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("audio.volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if c.Translate.Enabled && strings.TrimSpace(c.Translate.Command) == "" {
		return errors.New("translate.command must be set when translation is enabled")
	}
	if c.Translate.Timeout.Duration() < 0 {
		return fmt.Errorf("translate.timeout must not be negative, got %s", c.Translate.Timeout.Duration())
	}

	for _, action := range []string{c.Mouse.Left, c.Mouse.Middle, c.Mouse.Right} {
		if !validMouseAction(action) {
			return fmt.Errorf("invalid mouse action %q, must be one of: %v", action, ValidMouseActions())
		}
	}

	return nil
}

func validMouseAction(s string) bool {
	for _, a := range ValidMouseActions() {
		if string(a) == s {
			return true
		}
	}
	return false
}

// Anchor returns the parsed display anchor. Call Validate first.
func (c *Config) Anchor() layout.Anchor {
	a, err := layout.ParseAnchor(c.Display.Anchor)
	if err != nil {
		return layout.TopRight
	}
	return a
}

// ToastSize returns the configured toast size.
func (c *Config) ToastSize() layout.Size {
	return layout.Size{Width: c.Display.Width, Height: c.Display.Height}
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

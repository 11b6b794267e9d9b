package audio

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/cliptoast/internal/config"
)

// Chime plays the configured sound when a toast is admitted.
type Chime struct {
	mu      sync.Mutex
	player  *Player
	logger  *slog.Logger
	enabled bool
	sound   string
	onError func(error)
}

// NewChime creates a chime from the audio section of the config.
func NewChime(cfg config.AudioConfig, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chime{
		player: NewPlayer(logger),
		logger: logger,
	}
	c.Update(cfg)
	return c
}

// Update applies new audio settings.
func (c *Chime) Update(cfg config.AudioConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sound := config.ExpandPath(cfg.Sound)
	if sound != c.sound {
		c.player.Forget(c.sound)
	}
	c.enabled = cfg.Enabled
	c.sound = sound
	c.player.SetVolume(float64(cfg.Volume) / 100)
}

// SetErrorHandler sets a function called when playback fails.
func (c *Chime) SetErrorHandler(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// Enabled reports whether the chime will make a sound.
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Ring plays the chime in the background. Failures are logged and passed to the error handler.
func (c *Chime) Ring() {
	c.mu.Lock()
	enabled, sound, onError := c.enabled, c.sound, c.onError
	c.mu.Unlock()
	if !enabled {
		return
	}

	go func() {
		if err := c.player.Play(sound); err != nil {
			c.logger.Warn("failed to play chime", "sound", sound, "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.player.Close()
}

package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliptoast/internal/config"
)

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)
	p.SetVolume(1.5)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
	p.SetVolume(0.25)
	assert.Equal(t, 0.25, p.Volume())
}

func TestVolumeExponent(t *testing.T) {
	assert.Equal(t, 0.0, volumeExponent(1))
	assert.Equal(t, -1.0, volumeExponent(0.5))
	assert.Equal(t, -2.0, volumeExponent(0.25))
	assert.Equal(t, -16.0, volumeExponent(0))
}

func TestLoadSound_Errors(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hi"), 0644))
	_, err := loadSound(txt)
	assert.ErrorContains(t, err, "unsupported audio format")

	_, err = loadSound(filepath.Join(dir, "missing.wav"))
	assert.ErrorContains(t, err, "failed to open sound file")

	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav"), 0644))
	_, err = loadSound(bad)
	assert.ErrorContains(t, err, "failed to decode sound")
}

func TestTone(t *testing.T) {
	buf, err := tone()
	require.NoError(t, err)
	assert.Equal(t, defaultSampleRate.N(toneLength), buf.Len())
}

func TestChime_Update(t *testing.T) {
	c := NewChime(config.AudioConfig{Enabled: false, Volume: 50}, nil)
	assert.False(t, c.Enabled())
	assert.Equal(t, 0.5, c.player.Volume())

	c.Ring() // disabled: no device is opened

	c.Update(config.AudioConfig{Enabled: true, Volume: 100, Sound: "/tmp/x.wav"})
	assert.True(t, c.Enabled())
	assert.Equal(t, 1.0, c.player.Volume())
	assert.Equal(t, "/tmp/x.wav", c.sound)
}

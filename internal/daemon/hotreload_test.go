package daemon

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliptoast/internal/config"
	"github.com/jmylchreest/cliptoast/internal/layout"
)

func startWatcher(t *testing.T) (*ConfigWatcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cliptoastd.toml")
	require.NoError(t, config.Default().Save(path))

	w := NewConfigWatcher(path, slog.New(slog.DiscardHandler))
	w.debounce = 20 * time.Millisecond
	return w, path
}

func TestConfigWatcher_ReloadsOnWrite(t *testing.T) {
	w, path := startWatcher(t)

	reloaded := make(chan *config.Config, 4)
	w.SetReloadCallback(func(c *config.Config) { reloaded <- c })

	initial := config.Default()
	require.NoError(t, w.Start(context.Background(), initial))
	t.Cleanup(w.Stop)
	assert.Same(t, initial, w.Current())

	require.NoError(t, os.WriteFile(path, []byte("[display]\nanchor = \"bottom-left\"\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, layout.BottomLeft, cfg.Anchor())
		assert.Same(t, cfg, w.Current())
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestConfigWatcher_KeepsConfigOnError(t *testing.T) {
	w, path := startWatcher(t)

	errs := make(chan error, 4)
	w.SetErrorCallback(func(err error) { errs <- err })

	initial := config.Default()
	require.NoError(t, w.Start(context.Background(), initial))
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(path, []byte("[display]\nanchor = \"sideways\"\n"), 0644))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, layout.ErrInvalidAnchor)
		assert.Same(t, initial, w.Current())
	case <-time.After(5 * time.Second):
		t.Fatal("error callback was not called")
	}
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	w, path := startWatcher(t)

	calls := make(chan struct{}, 4)
	w.SetReloadCallback(func(*config.Config) { calls <- struct{}{} })
	require.NoError(t, w.Start(context.Background(), config.Default()))
	t.Cleanup(w.Stop)

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0644))

	select {
	case <-calls:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConfigWatcher_StopsWithContext(t *testing.T) {
	w, _ := startWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, config.Default()))
	cancel()

	assert.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return !w.running
	}, 2*time.Second, 10*time.Millisecond)

	assert.NotPanics(t, w.Stop, "stop after cancellation is a no-op")
}

func TestConfigWatcher_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "cliptoastd.toml")
	w := NewConfigWatcher(path, nil)
	w.debounce = 20 * time.Millisecond

	reloaded := make(chan *config.Config, 4)
	w.SetReloadCallback(func(cfg *config.Config) { reloaded <- cfg })
	require.NoError(t, w.Start(context.Background(), config.Default()))
	t.Cleanup(w.Stop)
	assert.DirExists(t, filepath.Dir(path))

	cfg := config.Default()
	cfg.Display.Anchor = "bottom-left"
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-reloaded:
		assert.Equal(t, "bottom-left", got.Display.Anchor)
	case <-time.After(5 * time.Second):
		t.Fatal("config written after start was not reloaded")
	}
}

func TestConfigWatcher_StartFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	w := NewConfigWatcher(filepath.Join(blocker, "cliptoastd.toml"), slog.New(slog.DiscardHandler))
	assert.Error(t, w.Start(context.Background(), config.Default()))
}

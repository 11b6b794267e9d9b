package style

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImports_NoImports(t *testing.T) {
	css := `.toast { color: red; }`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_FileImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_custom.css"), []byte(`:root { --custom: #ff0000; }`), 0644))

	result := ProcessImports("@import \"_custom.css\";\n.toast { color: var(--custom); }", dir, nil)

	assert.Contains(t, result, "/* imported: _custom.css */")
	assert.Contains(t, result, "--custom: #ff0000")
	assert.Contains(t, result, ".toast { color")
}

func TestProcessImports_NestedAndCircular(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte("@import 'b.css';\n.a {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.css"), []byte("@import url(\"a.css\");\n.b {}"), 0644))

	result := ProcessImports(`@import "a.css";`, dir, nil)

	assert.Contains(t, result, "/* imported: a.css */")
	assert.Contains(t, result, "/* imported: b.css */")
	assert.Contains(t, result, "/* circular import prevented: a.css */")
	assert.Contains(t, result, ".a {}")
	assert.Contains(t, result, ".b {}")
}

func TestProcessImports_FallsBackToBundled(t *testing.T) {
	result := ProcessImports(`@import "base.css";`, t.TempDir(), nil)
	assert.Contains(t, result, "/* imported (bundled): base.css */")
	assert.Contains(t, result, "window.cliptoast")

	result = ProcessImports(`@import "nope.css";`, t.TempDir(), nil)
	assert.Contains(t, result, "/* import failed: nope.css")
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.True(t, s.Bundled())
	assert.Contains(t, s.CSS, ".toast {")
	assert.Contains(t, s.CSS, "window.cliptoast", "partial is inlined")
	assert.NotContains(t, s.CSS, "@import")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.css")

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.Bundled(), "missing file falls back to the bundled sheet")

	require.NoError(t, os.WriteFile(path, []byte("@import \"default.css\";\n.toast { color: pink; }"), 0644))
	s, err = Load(path)
	require.NoError(t, err)
	assert.False(t, s.Bundled())
	assert.Equal(t, path, s.Path)
	assert.Contains(t, s.CSS, "color: pink")
	assert.Contains(t, s.CSS, "border-radius: 12px", "bundled sheet is importable")
	assert.Contains(t, s.CSS, "window.cliptoast")

	_, err = Load(dir)
	assert.Error(t, err, "a directory is not a stylesheet")
}

func TestUserPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/cliptoast/style.css", UserPath())
}

func TestWatcher_FiresOnCSSChange(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(filepath.Join(dir, "style.css"), slog.New(slog.DiscardHandler))
	w.debounce = 20 * time.Millisecond

	changed := make(chan struct{}, 4)
	w.SetChangeCallback(func() { changed <- struct{}{} })
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte(".toast {}"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("change callback was not called")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "absent", "style.css"), slog.New(slog.DiscardHandler))
	require.NoError(t, w.Start(context.Background()))
	assert.False(t, w.IsRunning())
	assert.NotPanics(t, w.Stop)
}

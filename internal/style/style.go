package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Sheet is a resolved stylesheet.
type Sheet struct {
	Path string // Source file, empty for the bundled sheet
	CSS  string // The CSS with imports inlined
}

// Bundled reports whether the sheet came from the binary.
func (s *Sheet) Bundled() bool {
	return s.Path == ""
}

// UserPath returns the default location of the user stylesheet.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func UserPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cliptoast", "style.css")
}

// Default returns the bundled stylesheet.
func Default() *Sheet {
	css, _ := bundledFile(DefaultSheet)
	return &Sheet{CSS: ProcessImports(css, "", nil)}
}

// Load reads the user stylesheet at path, or UserPath when empty.
// A missing file yields the bundled sheet.
func Load(path string) (*Sheet, error) {
	if path == "" {
		path = UserPath()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}

	return &Sheet{
		Path: path,
		CSS:  ProcessImports(string(data), filepath.Dir(path), nil),
	}, nil
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, then against the bundled files.
// The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		var (
			imported []byte
			err      = os.ErrNotExist
		)
		if baseDir != "" || filepath.IsAbs(importPath) {
			imported, err = os.ReadFile(fullPath)
		}
		if err != nil {
			if embedded, ok := bundledFile(filepath.Base(importPath)); ok {
				return "/* imported (bundled): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		return "/* imported: " + importPath + " */\n" + ProcessImports(string(imported), filepath.Dir(fullPath), seen)
	})
}

package style

import (
	"embed"
	"strings"
)

//go:embed css/*.css
var bundled embed.FS

// DefaultSheet is the bundled stylesheet users may import and extend.
const DefaultSheet = "default.css"

// bundledFile returns a bundled file by base name. Partials may be named
// with or without the leading underscore.
func bundledFile(name string) (string, bool) {
	if !strings.HasSuffix(name, ".css") {
		name += ".css"
	}
	if data, err := bundled.ReadFile("css/" + name); err == nil {
		return string(data), true
	}
	if !strings.HasPrefix(name, "_") {
		if data, err := bundled.ReadFile("css/_" + name); err == nil {
			return string(data), true
		}
	}
	return "", false
}

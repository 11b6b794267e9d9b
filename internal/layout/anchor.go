// Package layout computes where toasts sit on screen for each anchor mode.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAnchor is returned when an anchor name is not one of ValidAnchors.
var ErrInvalidAnchor = errors.New("invalid anchor")

// Anchor is the screen region toasts stack in.
type Anchor int

const (
	TopRight Anchor = iota
	TopLeft
	BottomRight
	BottomLeft
	Center
)

var anchorNames = map[Anchor]string{
	TopRight:    "top-right",
	TopLeft:     "top-left",
	BottomRight: "bottom-right",
	BottomLeft:  "bottom-left",
	Center:      "center",
}

// ValidAnchors returns all anchors in declaration order.
func ValidAnchors() []Anchor {
	return []Anchor{TopRight, TopLeft, BottomRight, BottomLeft, Center}
}

// ParseAnchor converts a config name such as "top-right" into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, a := range ValidAnchors() {
		if anchorNames[a] == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w %q, must be one of: %v", ErrInvalidAnchor, s, ValidAnchors())
}

// Valid reports whether a is one of the declared anchors.
func (a Anchor) Valid() bool {
	_, ok := anchorNames[a]
	return ok
}

// String returns the config name of the anchor.
func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsRight reports whether toasts enter from the right screen edge.
func (a Anchor) IsRight() bool {
	return a == TopRight || a == BottomRight
}

// IsBottom reports whether toasts stack upward from the bottom edge.
func (a Anchor) IsBottom() bool {
	return a == BottomRight || a == BottomLeft
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAnchor, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

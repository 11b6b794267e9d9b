// Package style resolves the CSS applied to toast windows: the bundled
// stylesheet, or a user stylesheet that replaces it. @import statements are
// inlined, falling back to the bundled partials.
package style

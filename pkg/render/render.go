// Package render presents generated patterns as terminal, plain or JSON output.
package render

import "github.com/dkoosis/trigen/pkg/shape"

// Pattern pairs a request with the lines generated for it.
type Pattern struct {
	Request shape.Request
	Result  shape.Result
}

// Renderer converts a pattern to formatted output.
type Renderer interface {
	Render(p Pattern) string
}

// ByName returns the renderer for a resolved format name.
// Unknown names fall back to Plain.
func ByName(format string, theme Theme, width int) Renderer {
	switch format {
	case "json":
		return NewJSON()
	case "terminal":
		return NewTerminal(theme, width)
	default:
		return NewPlain()
	}
}

package render

// Plain renders the pattern verbatim, one newline after every line.
type Plain struct{}

// NewPlain creates a plain renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render returns the raw text block.
func (p *Plain) Render(pt Pattern) string {
	return pt.Result.String()
}

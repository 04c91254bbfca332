package shape

import "strings"

// Request is a validated generation request.
type Request struct {
	Shape  Shape
	Rows   int
	Symbol rune
}

// Result holds the generated lines, top to bottom, without line separators.
type Result struct {
	Lines []string
}

// String returns the text block with a newline after every line, the last included.
func (r Result) String() string {
	var sb strings.Builder
	for _, line := range r.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Generate builds the pattern for req. It performs no validation: a request
// with Rows < 1 yields an empty Result, and an unknown shape is drawn as a
// LeftTriangle.
func Generate(req Request) Result {
	if req.Rows < 1 {
		return Result{}
	}
	sym := string(req.Symbol)
	lines := make([]string, 0, req.Rows)
	for k := 1; k <= req.Rows; k++ {
		i := k
		if req.Shape.inverted() {
			i = req.Rows - k + 1
		}
		lines = append(lines, line(req.Shape, req.Rows, i, sym))
	}
	return Result{Lines: lines}
}

// line renders step i (1..rows) of a shape, before any inversion.
func line(s Shape, rows, i int, sym string) string {
	switch s {
	case RightTriangle, InvertedRightTriangle:
		return strings.Repeat(" ", rows-i) + strings.Repeat(sym, i)
	case Pyramid, InvertedPyramid:
		return strings.Repeat(" ", rows-i) + strings.Repeat(sym, 2*i-1)
	default:
		return strings.Repeat(sym, i)
	}
}

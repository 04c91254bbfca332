// Package shape generates triangle and pyramid text patterns.
// Generation is pure: the same request always yields the same lines.
package shape

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Shape identifies one of the six pattern variants.
type Shape string

const (
	LeftTriangle          Shape = "left"
	RightTriangle         Shape = "right"
	InvertedLeftTriangle  Shape = "inverted-left"
	InvertedRightTriangle Shape = "inverted-right"
	Pyramid               Shape = "pyramid"
	InvertedPyramid       Shape = "inverted-pyramid"
)

// all is the display order used by every selector.
var all = []Shape{
	LeftTriangle,
	RightTriangle,
	InvertedLeftTriangle,
	InvertedRightTriangle,
	Pyramid,
	InvertedPyramid,
}

var labels = map[Shape]string{
	LeftTriangle:          "Left-Aligned Right Triangle",
	RightTriangle:         "Right-Aligned Right Triangle",
	InvertedLeftTriangle:  "Inverted Left-Aligned Right Triangle",
	InvertedRightTriangle: "Inverted Right-Aligned Right Triangle",
	Pyramid:               "Center-Aligned Pyramid",
	InvertedPyramid:       "Inverted Center-Aligned Pyramid",
}

// All returns every shape in display order.
func All() []Shape {
	out := make([]Shape, len(all))
	copy(out, all)
	return out
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label returns the long human-readable name, e.g. "Center-Aligned Pyramid".
func (s Shape) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Title returns the ID in title case: "inverted-pyramid" -> "Inverted Pyramid".
func (s Shape) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "-", " "))
}

// inverted reports whether rows run from widest to narrowest.
func (s Shape) inverted() bool {
	switch s {
	case InvertedLeftTriangle, InvertedRightTriangle, InvertedPyramid:
		return true
	default:
		return false
	}
}

// Parse resolves an ID or a label, ignoring case and surrounding space.
func Parse(name string) (Shape, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty shape name")
	}
	for _, s := range all {
		if strings.EqualFold(name, string(s)) || strings.EqualFold(name, labels[s]) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown shape %q", name)
}

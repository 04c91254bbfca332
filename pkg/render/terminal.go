package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// frameOverhead is the border plus one column of padding on each side.
const frameOverhead = 4

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats a pattern with a title, a framed body and a footer.
// Patterns wider than the terminal are printed unframed so lines never wrap.
func (t *Terminal) Render(p Pattern) string {
	if len(p.Result.Lines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.theme.Bold.Render(p.Request.Shape.Title()))
	sb.WriteString("\n")

	body := t.body(p.Result.Lines)
	if blockWidth(p.Result.Lines)+frameOverhead > t.width {
		sb.WriteString(body)
		sb.WriteString("\n")
	} else {
		frame := lipgloss.NewStyle().
			Border(t.theme.Border).
			BorderForeground(t.theme.Frame).
			Padding(0, 1)
		sb.WriteString(frame.Render(body))
		sb.WriteString("\n")
	}

	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("rows=%d symbol=%s", p.Request.Rows, string(p.Request.Symbol))))
	sb.WriteString("\n")
	return sb.String()
}

// Status formats a one-line message with the theme icon for kind
// ("success", "warning", "error" or anything else for info).
func (t *Terminal) Status(kind, msg string) string {
	icon, style := t.iconStyle(kind)
	return style.Render(icon+" "+msg) + "\n"
}

// body pads every line to the block width so styling covers a rectangle.
func (t *Terminal) body(lines []string) string {
	w := blockWidth(lines)
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = t.theme.Glyph.Render(padRight(line, w))
	}
	return strings.Join(styled, "\n")
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Icons.Pass, t.theme.Success
	case "error":
		return t.theme.Icons.Fail, t.theme.Error
	case "warning":
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Muted
	}
}

func blockWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		if n := runewidth.StringWidth(line); n > w {
			w = n
		}
	}
	return w
}

func padRight(s string, width int) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

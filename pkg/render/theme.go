package render

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette a Terminal draws with. Glyph colours the pattern
// itself, Frame the border drawn around it.
type Theme struct {
	Name    string
	Glyph   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Border  lipgloss.Border
	Frame   lipgloss.Color
	Icons   ThemeIcons
}

// ThemeIcons prefix status lines and mark the focused form field.
type ThemeIcons struct {
	Pass   string
	Fail   string
	Warn   string
	Info   string
	Cursor string
}

// Built-in theme names.
const (
	ThemeChalk     = "chalk"
	ThemeSandstone = "sandstone"
	ThemeMono      = "mono"
)

// ChalkTheme draws white glyphs inside a green slate frame.
func ChalkTheme() Theme {
	return Theme{
		Name:    ThemeChalk,
		Glyph:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("102")),
		Bold:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("194")),
		Border:  lipgloss.RoundedBorder(),
		Frame:   lipgloss.Color("29"),
		Icons:   ThemeIcons{Pass: "✓", Fail: "✗", Warn: "△", Info: "◆", Cursor: "▶"},
	}
}

// SandstoneTheme uses desert ochres, with a heavy block frame for pyramids.
func SandstoneTheme() Theme {
	return Theme{
		Name:    ThemeSandstone,
		Glyph:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("143")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("131")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
		Bold:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("223")),
		Border:  lipgloss.ThickBorder(),
		Frame:   lipgloss.Color("94"),
		Icons:   ThemeIcons{Pass: "▲", Fail: "▼", Warn: "!", Info: "·", Cursor: "›"},
	}
}

// MonoTheme is plain ASCII with no colour, used when NO_COLOR is set.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:    ThemeMono,
		Glyph:   plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
		Muted:   plain,
		Bold:    plain.Bold(true),
		Border:  lipgloss.ASCIIBorder(),
		Icons:   ThemeIcons{Pass: "+", Fail: "x", Warn: "!", Info: "*", Cursor: ">"},
	}
}

var themes = map[string]func() Theme{
	ThemeChalk:     ChalkTheme,
	ThemeSandstone: SandstoneTheme,
	ThemeMono:      MonoTheme,
}

// ThemeByName returns the named theme, or ChalkTheme for an unknown name.
func ThemeByName(name string) Theme {
	if build, ok := themes[name]; ok {
		return build()
	}
	return ChalkTheme()
}

// ThemeNames lists the built-in theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

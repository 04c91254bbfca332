// Package form is the interactive terminal form for generating patterns.
package form

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/trigen/internal/config"
	"github.com/dkoosis/trigen/internal/service"
	"github.com/dkoosis/trigen/pkg/render"
	"github.com/dkoosis/trigen/pkg/shape"
)

// Run launches the form and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc *service.Service, settings *config.Settings, theme render.Theme) error {
	program := tea.NewProgram(New(ctx, svc, settings, theme), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type field int

const (
	fieldShape field = iota
	fieldRows
	fieldSymbol
	fieldCount
)

// generatedMsg carries the service outcome back into Update.
type generatedMsg struct {
	out service.Outcome
	err error
}

// Model is the bubbletea model for the form.
type Model struct {
	ctx    context.Context
	svc    *service.Service
	theme  render.Theme
	term   *render.Terminal
	keys   keyMap
	help   help.Model
	shapes []shape.Shape

	cursor int
	focus  field
	rows   textinput.Model
	symbol textinput.Model

	busy    bool
	invalid string
	out     *service.Outcome
	width   int
}

// New creates a form model prefilled from settings.
func New(ctx context.Context, svc *service.Service, settings *config.Settings, theme render.Theme) Model {
	rows := textinput.New()
	rows.Prompt = ""
	rows.Placeholder = "rows"
	rows.CharLimit = 4
	if settings.Rows > 0 {
		rows.SetValue(strconv.Itoa(settings.Rows))
	}

	symbol := textinput.New()
	symbol.Prompt = ""
	symbol.Placeholder = "*"
	symbol.CharLimit = 4
	symbol.SetValue(settings.Symbol)

	m := Model{
		ctx:    ctx,
		svc:    svc,
		theme:  theme,
		term:   render.NewTerminal(theme, 80),
		keys:   newKeyMap(),
		help:   help.New(),
		shapes: shape.All(),
		rows:   rows,
		symbol: symbol,
		width:  80,
	}
	if s, err := shape.Parse(settings.Shape); err == nil {
		for i, candidate := range m.shapes {
			if candidate == s {
				m.cursor = i
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.term = render.NewTerminal(m.theme, msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case generatedMsg:
		m.busy = false
		if msg.err != nil {
			m.invalid = msg.err.Error()
			m.out = nil
			return m, nil
		}
		m.invalid = ""
		out := msg.out
		m.out = &out
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case key.Matches(msg, m.keys.Submit):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.generate()
		}
		if m.focus == fieldShape {
			switch {
			case key.Matches(msg, m.keys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, m.keys.Down):
				if m.cursor < len(m.shapes)-1 {
					m.cursor++
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldRows:
		m.rows, cmd = m.rows.Update(msg)
	case fieldSymbol:
		m.symbol, cmd = m.symbol.Update(msg)
	}
	return m, cmd
}

// setFocus moves focus to f and returns the focused input's blink command.
func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.rows.Blur()
	m.symbol.Blur()
	switch f {
	case fieldRows:
		return m.rows.Focus()
	case fieldSymbol:
		return m.symbol.Focus()
	}
	return nil
}

// input returns the current form values as raw input.
func (m Model) input() shape.Input {
	return shape.Input{
		Shape:  string(m.shapes[m.cursor]),
		Rows:   m.rows.Value(),
		Symbol: m.symbol.Value(),
	}
}

func (m Model) generate() tea.Cmd {
	ctx, svc, in := m.ctx, m.svc, m.input()
	return func() tea.Msg {
		out, err := svc.Generate(ctx, in)
		return generatedMsg{out: out, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.theme.Bold.Render("Advanced Pattern Generator"))
	sb.WriteString("\n\n")

	sb.WriteString(m.label(fieldShape, "Pattern type"))
	for i, s := range m.shapes {
		if i == m.cursor {
			sb.WriteString(m.theme.Glyph.Render("  " + m.theme.Icons.Cursor + " " + s.Label()))
		} else {
			sb.WriteString("    " + s.Label())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.label(fieldRows, "Rows"))
	sb.WriteString("  " + m.rows.View() + "\n")
	sb.WriteString(m.label(fieldSymbol, "Symbol"))
	sb.WriteString("  " + m.symbol.View() + "\n\n")

	switch {
	case m.busy:
		sb.WriteString(m.term.Status("info", "Generating..."))
	case m.invalid != "":
		sb.WriteString(m.term.Status("error", m.invalid))
	case m.out != nil:
		sb.WriteString(m.outcomeView(*m.out))
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) label(f field, text string) string {
	if m.focus == f {
		return m.theme.Bold.Render(m.theme.Icons.Cursor+" "+text) + "\n"
	}
	return m.theme.Muted.Render("  "+text) + "\n"
}

func (m Model) outcomeView(out service.Outcome) string {
	var sb strings.Builder
	if kind, msg := out.StoreMessage(); msg != "" {
		sb.WriteString(m.term.Status(kind, msg))
	}
	if out.Visible() {
		sb.WriteString(m.term.Render(out.Pattern))
	}
	return sb.String()
}

package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/trigen/internal/config"
	"github.com/dkoosis/trigen/internal/service"
	"github.com/dkoosis/trigen/internal/store"
	"github.com/dkoosis/trigen/pkg/render"
	"github.com/dkoosis/trigen/pkg/shape"
)

type failingSaver struct{ err error }

func (f failingSaver) Save(context.Context, store.Record) error { return f.err }

func newModel(opts service.Options) Model {
	return New(context.Background(), service.New(opts), config.Defaults(), render.MonoTheme())
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// submit presses enter and feeds the resulting message back into the model.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, m.busy)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestNew_PrefillsFromSettings(t *testing.T) {
	settings := config.Defaults()
	settings.Shape = "pyramid"
	m := New(context.Background(), service.New(service.Options{}), settings, render.MonoTheme())

	assert.Equal(t, shape.Input{Shape: "pyramid", Rows: "5", Symbol: "*"}, m.input())
}

func TestUpdate_NavigatesShapes(t *testing.T) {
	m := newModel(service.Options{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, shape.InvertedLeftTriangle, m.shapes[m.cursor])

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stops at the first shape")
}

func TestUpdate_GeneratesPattern(t *testing.T) {
	m := newModel(service.Options{MaxRows: 20})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})

	m = submit(t, m)

	require.NotNil(t, m.out)
	assert.False(t, m.busy)
	assert.Equal(t, shape.Pyramid, m.out.Pattern.Request.Shape)
	view := m.View()
	assert.Contains(t, view, "*********")
	assert.Contains(t, view, "rows=5 symbol=*")
}

func TestUpdate_ShowsValidationError(t *testing.T) {
	m := newModel(service.Options{})
	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")},
	)
	require.Equal(t, "abc", m.rows.Value())

	m = submit(t, m)

	assert.Nil(t, m.out)
	assert.Contains(t, m.View(), "x Rows must be a positive integer.")
}

func TestUpdate_TypingJKInInputsDoesNotMoveCursor(t *testing.T) {
	m := newModel(service.Options{})
	m, _ = press(t, m,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")},
	)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "j", m.symbol.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldShape, m.focus)
}

func TestUpdate_StoreWarning(t *testing.T) {
	down := &store.Error{Op: store.OpConnect, Backend: "mongodb", Err: errors.New("timeout")}
	m := newModel(service.Options{Store: failingSaver{err: down}})

	m = submit(t, m)

	view := m.View()
	assert.Contains(t, view, "! "+service.MsgUnavailable)
	assert.True(t, strings.Contains(view, "*****"), "pattern still shown:\n%s", view)
}

func TestUpdate_Quit(t *testing.T) {
	m := newModel(service.Options{})
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

// Package ui runs the interactive terminal task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/view"
)

// ErrNoTTY is returned when stdout is not a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// RunTUI starts the TUI on the terminal, driving store until the user quits.
func RunTUI(ctx context.Context, cfg *config.Config, store *todo.Store, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return ErrNoTTY
	}

	renderer := view.NewRenderer(os.Stdout, view.Theme{Accent: cfg.Accent})
	model := newTUIModel(store, renderer, logger)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return runProgram(model, opts...)
}

func runProgram(model *tuiModel, opts ...tea.ProgramOption) error {
	model.logger.Info("Session started")
	program := tea.NewProgram(model, opts...)
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok {
		total, done := todo.Summary(m.store.State())
		m.logger.Info("Session ended", "tasks", total, "done", done)
	}
	return nil
}

type tuiModel struct {
	store    *todo.Store
	renderer *view.Renderer
	logger   *log.Logger
	keys     keyMap
	draft    textinput.Model
	edit     textinput.Model
	area     view.Area
	cursor   int
	showHelp bool
}

func newTUIModel(store *todo.Store, renderer *view.Renderer, logger *log.Logger) *tuiModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	draft := textinput.New()
	draft.Placeholder = view.Placeholder
	draft.Prompt = ""
	draft.CharLimit = 0
	draft.SetValue(store.State().Draft)
	draft.Focus()

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 0

	return &tuiModel{
		store:    store,
		renderer: renderer,
		logger:   logger,
		keys:     newKeyMap(),
		draft:    draft,
		edit:     edit,
		area:     view.AreaForm,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 20; w > 10 {
			m.draft.Width = w
			m.edit.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		switch m.area {
		case view.AreaForm:
			return m.updateForm(msg)
		case view.AreaEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Cursor blink and other widget messages.
	var cmd tea.Cmd
	switch m.area {
	case view.AreaForm:
		m.draft, cmd = m.draft.Update(msg)
	case view.AreaEdit:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		before := m.store.Len()
		state := m.store.Dispatch(todo.Command{Op: todo.OpAdd})
		m.draft.SetValue(state.Draft)
		if m.store.Len() > before {
			m.cursor = m.store.Len() - 1
		}
		return m, nil
	case key.Matches(msg, m.keys.Switch, m.keys.Cancel):
		return m, m.focus(view.AreaList)
	}

	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	if value := m.draft.Value(); value != m.store.State().Draft {
		m.store.Dispatch(todo.Command{Op: todo.OpSetDraft, Text: value})
	}
	return m, cmd
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Switch, m.keys.NewTask):
		return m, m.focus(view.AreaForm)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.selectedID(); ok {
			m.store.Dispatch(todo.Command{Op: todo.OpToggle, ID: id})
		}
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			m.store.Dispatch(todo.Command{Op: todo.OpDelete, ID: id})
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Edit):
		if id, ok := m.selectedID(); ok {
			state := m.store.Dispatch(todo.Command{Op: todo.OpBeginEdit, ID: id})
			if state.Editing != nil {
				m.edit.SetValue(state.Editing.Buffer)
				m.edit.CursorEnd()
				return m, m.focus(view.AreaEdit)
			}
		}
	}
	return m, nil
}

func (m *tuiModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if editing := m.store.State().Editing; editing != nil {
			m.store.Dispatch(todo.Command{Op: todo.OpSaveEdit, ID: editing.ID})
		}
		return m, m.focus(view.AreaList)
	case key.Matches(msg, m.keys.Cancel):
		m.store.Dispatch(todo.Command{Op: todo.OpCancelEdit})
		return m, m.focus(view.AreaList)
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	state := m.store.State()
	if state.Editing != nil && m.edit.Value() != state.Editing.Buffer {
		m.store.Dispatch(todo.Command{Op: todo.OpUpdateEdit, Text: m.edit.Value()})
	}
	return m, cmd
}

// focus moves keyboard focus to area, blurring the other inputs.
func (m *tuiModel) focus(area view.Area) tea.Cmd {
	m.area = area
	m.draft.Blur()
	m.edit.Blur()
	switch area {
	case view.AreaForm:
		return m.draft.Focus()
	case view.AreaEdit:
		return m.edit.Focus()
	}
	m.clampCursor()
	return nil
}

func (m *tuiModel) selectedID() (string, bool) {
	state := m.store.State()
	if m.cursor < 0 || m.cursor >= len(state.Tasks) {
		return "", false
	}
	return state.Tasks[m.cursor].ID, true
}

func (m *tuiModel) clampCursor() {
	n := m.store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	if m.showHelp {
		writeHelp(&b, m.keys)
		writeFooter(&b, m.area)
		return b.String()
	}

	focus := view.Focus{Area: m.area, Cursor: m.cursor}
	switch m.area {
	case view.AreaForm:
		focus.DraftField = m.draft.View()
	case view.AreaEdit:
		focus.EditField = m.edit.View()
	}
	b.WriteString(m.renderer.Render(view.Project(m.store.State()), focus))
	b.WriteString("\n")
	writeFooter(&b, m.area)
	return b.String()
}

func writeHelp(b *strings.Builder, keys keyMap) {
	b.WriteString("Keyboard Shortcuts\n\n")
	for _, binding := range keys.all() {
		help := binding.Help()
		b.WriteString(fmt.Sprintf("  %-12s %s\n", help.Key, help.Desc))
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, area view.Area) {
	switch area {
	case view.AreaForm:
		b.WriteString("enter add | tab list | esc list | ctrl+c quit\n")
	case view.AreaEdit:
		b.WriteString("enter save | esc cancel | ctrl+c quit\n")
	default:
		b.WriteString("? help | tab form | q quit\n")
	}
}

// IsTTY returns true if stdout is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

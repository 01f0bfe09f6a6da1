package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Placeholder is drawn in an empty, unfocused add form.
const Placeholder = "Add a new task..."

// DefaultAccent is the lipgloss color used for highlights.
const DefaultAccent = "99"

// Area is the part of the screen that has keyboard focus.
type Area int

const (
	AreaForm Area = iota
	AreaList
	AreaEdit
)

func (a Area) String() string {
	switch a {
	case AreaForm:
		return "form"
	case AreaList:
		return "list"
	case AreaEdit:
		return "edit"
	default:
		return fmt.Sprintf("area(%d)", int(a))
	}
}

// Focus is controller-side state the renderer needs: where the keyboard
// is and which row is selected. DraftField and EditField, when set,
// replace the plain text of the corresponding input, which lets the TUI
// draw live textinput widgets.
type Focus struct {
	Area       Area
	Cursor     int
	DraftField string
	EditField  string
}

// Theme holds the configurable colors.
type Theme struct {
	Accent string
}

type styles struct {
	title    lipgloss.Style
	form     lipgloss.Style
	formOn   lipgloss.Style
	button   lipgloss.Style
	muted    lipgloss.Style
	done     lipgloss.Style
	text     lipgloss.Style
	cursor   lipgloss.Style
	input    lipgloss.Style
	save     lipgloss.Style
	cancel   lipgloss.Style
	controls lipgloss.Style
}

// Renderer draws screens with lipgloss.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles styles
}

// RendererOption configures a Renderer.
type RendererOption func(*lipgloss.Renderer)

// WithColorProfile pins the color profile instead of detecting it from the output.
func WithColorProfile(p termenv.Profile) RendererOption {
	return func(r *lipgloss.Renderer) {
		r.SetColorProfile(p)
	}
}

// NewRenderer returns a renderer writing styles suited to w.
func NewRenderer(w io.Writer, theme Theme, opts ...RendererOption) *Renderer {
	lg := lipgloss.NewRenderer(w)
	for _, opt := range opts {
		opt(lg)
	}
	accent := theme.Accent
	if accent == "" {
		accent = DefaultAccent
	}
	color := lipgloss.Color(accent)
	border := lipgloss.RoundedBorder()

	return &Renderer{
		lg: lg,
		styles: styles{
			title:    lg.NewStyle().Bold(true).Foreground(color),
			form:     lg.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
			formOn:   lg.NewStyle().Border(border).BorderForeground(color).Padding(0, 1),
			button:   lg.NewStyle().Bold(true).Foreground(color),
			muted:    lg.NewStyle().Foreground(lipgloss.Color("244")),
			done:     lg.NewStyle().Strikethrough(true).Faint(true),
			text:     lg.NewStyle(),
			cursor:   lg.NewStyle().Bold(true).Foreground(color),
			input:    lg.NewStyle().Underline(true),
			save:     lg.NewStyle().Foreground(lipgloss.Color("34")),
			cancel:   lg.NewStyle().Foreground(lipgloss.Color("160")),
			controls: lg.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

// Render draws the whole screen.
func (r *Renderer) Render(screen Screen, focus Focus) string {
	var b strings.Builder
	r.writeTitle(&b, screen.Title)
	r.writeForm(&b, screen.Draft, focus)
	r.writeList(&b, screen, focus)
	r.writeFooter(&b, screen)
	return b.String()
}

func (r *Renderer) writeTitle(b *strings.Builder, title string) {
	if title == "" {
		title = Title
	}
	b.WriteString(r.styles.title.Render(title) + "\n\n")
}

func (r *Renderer) writeForm(b *strings.Builder, draft string, focus Focus) {
	field := draft
	switch {
	case focus.Area == AreaForm && focus.DraftField != "":
		field = focus.DraftField
	case draft == "":
		field = r.styles.muted.Render(Placeholder)
	}

	box := r.styles.form
	if focus.Area == AreaForm {
		box = r.styles.formOn
	}
	line := fmt.Sprintf("%s  %s", field, r.styles.button.Render("[+ Add]"))
	b.WriteString(box.Render(line) + "\n\n")
}

func (r *Renderer) writeList(b *strings.Builder, screen Screen, focus Focus) {
	if screen.Empty {
		msg := screen.EmptyMessage
		if msg == "" {
			msg = EmptyMessage
		}
		b.WriteString("  " + r.styles.muted.Render(msg) + "\n\n")
		return
	}

	for i, row := range screen.Rows {
		selected := focus.Area != AreaForm && i == focus.Cursor
		switch row := row.(type) {
		case Viewing:
			b.WriteString(r.viewingRow(row, selected))
		case Editing:
			b.WriteString(r.editingRow(row, selected, focus))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (r *Renderer) marker(selected bool) string {
	if selected {
		return r.styles.cursor.Render(">")
	}
	return " "
}

func (r *Renderer) viewingRow(row Viewing, selected bool) string {
	box := "[ ]"
	text := r.styles.text.Render(row.Task.Text)
	if row.Task.Completed {
		box = "[x]"
		text = r.styles.done.Render(row.Task.Text)
	}
	line := fmt.Sprintf("%s %s %s", r.marker(selected), box, text)
	if selected {
		line += "  " + r.styles.controls.Render("e edit  d delete")
	}
	return line
}

func (r *Renderer) editingRow(row Editing, selected bool, focus Focus) string {
	field := r.styles.input.Render(row.Buffer)
	if focus.Area == AreaEdit && focus.EditField != "" {
		field = focus.EditField
	}
	return fmt.Sprintf("%s [~] %s  %s  %s",
		r.marker(selected),
		field,
		r.styles.save.Render("enter save"),
		r.styles.cancel.Render("esc cancel"),
	)
}

func (r *Renderer) writeFooter(b *strings.Builder, screen Screen) {
	if screen.Empty {
		return
	}
	b.WriteString(r.styles.muted.Render(fmt.Sprintf("%d of %d done", screen.Done, screen.Total)) + "\n")
}

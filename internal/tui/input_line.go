package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"mentorlink-cli/internal/model"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldPassword
	// fieldRole toggles between mentor and mentee instead of taking text.
	fieldRole
)

type field struct {
	label string
	kind  fieldKind
	input textinput.Model
	role  model.Role
}

func newField(label, placeholder string, kind fieldKind) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	if kind == fieldPassword {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return field{label: label, kind: kind, input: ti, role: model.RoleMentee}
}

// fieldGroup is a vertical form. focus is -1 while no field takes input.
type fieldGroup struct {
	fields []field
	focus  int
}

func newFieldGroup(fields ...field) fieldGroup {
	return fieldGroup{fields: fields, focus: -1}
}

func (g fieldGroup) Focused() bool { return g.focus >= 0 && g.focus < len(g.fields) }

func (g *fieldGroup) Focus(i int) tea.Cmd {
	g.Blur()
	if i < 0 || i >= len(g.fields) {
		return nil
	}
	g.focus = i
	if g.fields[i].kind == fieldRole {
		return nil
	}
	return g.fields[i].input.Focus()
}

func (g *fieldGroup) Blur() {
	for i := range g.fields {
		g.fields[i].input.Blur()
	}
	g.focus = -1
}

func (g *fieldGroup) Next() tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	return g.Focus((g.focus + 1) % len(g.fields))
}

func (g *fieldGroup) Prev() tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	i := g.focus - 1
	if i < 0 {
		i = len(g.fields) - 1
	}
	return g.Focus(i)
}

// Update routes msg to the focused field.
func (g *fieldGroup) Update(msg tea.Msg) tea.Cmd {
	if !g.Focused() {
		return nil
	}
	f := &g.fields[g.focus]
	if f.kind == fieldRole {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case " ", "left", "right", "h", "l":
				f.role = toggleRole(f.role)
			}
		}
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func toggleRole(r model.Role) model.Role {
	if r == model.RoleMentor {
		return model.RoleMentee
	}
	return model.RoleMentor
}

func (g fieldGroup) Value(i int) string { return g.fields[i].input.Value() }

func (g *fieldGroup) SetValue(i int, s string) { g.fields[i].input.SetValue(s) }

func (g fieldGroup) Role(i int) model.Role { return g.fields[i].role }

func (g *fieldGroup) SetRole(i int, r model.Role) {
	if r.Valid() {
		g.fields[i].role = r
	}
}

func roleLabel(r model.Role) string {
	if r == model.RoleMentor {
		return "멘토 (mentor)"
	}
	return "멘티 (mentee)"
}

func (g fieldGroup) View(width int) string {
	inputW := max(width-14, 10)
	var b strings.Builder
	for i, f := range g.fields {
		label := styleLabel().Render(f.label)
		var val string
		if f.kind == fieldRole {
			val = renderInputLine(inputW, "◀ "+roleLabel(f.role)+" ▶")
		} else {
			f.input.Width = inputW - 3
			val = renderInputLine(inputW, f.input.View())
		}
		if i == g.focus {
			label = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Width(12).Render(f.label)
		}
		b.WriteString(label + " " + val)
		if i < len(g.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	// A text input must stay on one visual line or it looks like a newline was typed.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/tracker"
)

type mentorItem struct{ mentor model.Mentor }

func (i mentorItem) FilterValue() string { return i.mentor.Name + " " + i.mentor.TechStack }
func (i mentorItem) Title() string       { return i.mentor.Name }
func (i mentorItem) Description() string { return i.mentor.TechStack }

func newList(d list.ItemDelegate) list.Model {
	l := list.New(nil, d, 0, 0)
	// The app renders its own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering goes through directory.View so sort and filter stay in one place.
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys()
	l.KeyMap.ForceQuit.SetKeys()

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}

// mentorDelegate renders a two-line card per mentor with the request flags from the tracker.
type mentorDelegate struct {
	track    *tracker.Tracker
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newMentorDelegate(t *tracker.Tracker) mentorDelegate {
	return mentorDelegate{
		track:  t,
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d mentorDelegate) Height() int                             { return 2 }
func (d mentorDelegate) Spacing() int                            { return 1 }
func (d mentorDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d mentorDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(mentorItem)
	if !ok || contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	prefix := "  "
	style := d.normal
	if index == m.Index() {
		prefix = glyphCursor() + " "
		style = d.selected
	}

	title := prefix + it.mentor.Name
	if badge := d.badge(it.mentor.Email); badge != "" {
		title += "  " + badge
	}
	desc := it.mentor.TechStack
	if strings.TrimSpace(desc) == "" {
		desc = "-"
	}

	fmt.Fprint(w, style.Render(fitLine(title, contentW))+"\n")
	fmt.Fprint(w, styleMuted().Render(fitLine("    "+desc, contentW)))
}

func (d mentorDelegate) badge(email string) string {
	if d.track == nil {
		return ""
	}
	f := d.track.Flags(email)
	switch {
	case f.Busy:
		return lipgloss.NewStyle().Foreground(colorBusy).Render("요청 중…")
	case f.Done:
		return lipgloss.NewStyle().Foreground(colorDone).Render(glyphCheck() + " 요청 완료")
	}
	return ""
}

// Package notify is a single-slot, self-expiring notification channel.
//
// Each Show bumps a generation counter and schedules an ExpiredMsg carrying that generation.
// Expire only clears when the generation still matches, so an old tick can never erase a newer
// notification.
package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const DefaultTimeout = 2500 * time.Millisecond

type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Notification struct {
	Text     string
	Severity Severity
}

// Empty reports whether there is nothing to display.
func (n Notification) Empty() bool { return strings.TrimSpace(n.Text) == "" }

// ExpiredMsg is delivered when the auto-clear timer for generation Gen fires.
type ExpiredMsg struct{ Gen int }

type Channel struct {
	current Notification
	gen     int
	timeout time.Duration
}

func New(timeout time.Duration) Channel {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Channel{timeout: timeout}
}

// Show replaces the current notification and returns the command that will expire it.
// Empty text is a no-op.
func (c *Channel) Show(text string, sev Severity) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	c.current = Notification{Text: text, Severity: sev}
	c.gen++
	gen := c.gen
	return tea.Tick(c.timeout, func(time.Time) tea.Msg { return ExpiredMsg{Gen: gen} })
}

// Push shows n; a zero Notification does nothing.
func (c *Channel) Push(n Notification) tea.Cmd {
	return c.Show(n.Text, n.Severity)
}

// Expire clears the notification if msg belongs to the current generation.
func (c *Channel) Expire(msg ExpiredMsg) bool {
	if msg.Gen != c.gen {
		return false
	}
	c.current = Notification{}
	return true
}

// Dismiss clears immediately. Pending timers become stale.
func (c *Channel) Dismiss() {
	c.current = Notification{}
	c.gen++
}

func (c Channel) Current() (Notification, bool) {
	if c.current.Empty() {
		return Notification{}, false
	}
	return c.current, true
}

func (c Channel) Generation() int { return c.gen }

func (c Channel) Timeout() time.Duration { return c.timeout }

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "255", Dark: "255"}).Background(lipgloss.AdaptiveColor{Light: "27", Dark: "62"}).Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "255", Dark: "235"}).Background(lipgloss.AdaptiveColor{Light: "28", Dark: "40"}).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.AdaptiveColor{Light: "196", Dark: "160"}).Padding(0, 1)
)

// View renders the current notification on one line, or "" when there is none.
func (c Channel) View(width int) string {
	n, ok := c.Current()
	if !ok {
		return ""
	}
	st := infoStyle
	switch n.Severity {
	case Success:
		st = successStyle
	case Error:
		st = errorStyle
	}
	txt := strings.ReplaceAll(n.Text, "\n", " ") + "  ×"
	if width > 4 && xansi.StringWidth(txt) > width-2 {
		txt = xansi.Truncate(txt, width-2, "…")
	}
	return st.Render(txt)
}

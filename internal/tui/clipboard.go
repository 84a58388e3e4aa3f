package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"mentorlink-cli/internal/notify"
)

// writeClipboard is swapped out in tests; CI machines rarely have a clipboard.
var writeClipboard = clipboard.WriteAll

func (m *appModel) copyText(label, s string) tea.Cmd {
	if s == "" {
		return nil
	}
	if err := writeClipboard(s); err != nil {
		return m.notice.Show("클립보드 복사 실패: "+err.Error(), notify.Error)
	}
	return m.notice.Show(label+" 복사됨", notify.Info)
}

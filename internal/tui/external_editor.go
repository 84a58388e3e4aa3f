package tui

import (
	"os"
	"os/exec"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mentorlink-cli/internal/notify"
)

type introEditedMsg struct {
	path string
	err  error
}

// editorArgv resolves $VISUAL, then $EDITOR, then vi.
func editorArgv() []string {
	for _, k := range []string{"VISUAL", "EDITOR"} {
		if args := splitCommandLine(os.Getenv(k)); len(args) > 0 {
			return args
		}
	}
	return []string{"vi"}
}

// splitCommandLine splits on unquoted whitespace. Single and double quotes group words and a
// backslash escapes the next rune outside single quotes.
func splitCommandLine(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
			inWord = true
		case quote == 0 && unicode.IsSpace(r):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}

// openIntroEditor suspends the TUI and edits the profile intro in an external editor.
func (m *appModel) openIntroEditor() tea.Cmd {
	f, err := os.CreateTemp("", "mentorlink-intro-*.md")
	if err != nil {
		return m.notice.Show("편집기를 열 수 없습니다: "+err.Error(), notify.Error)
	}
	path := f.Name()
	if _, err := f.WriteString(m.profile.intro); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return m.notice.Show("편집기를 열 수 없습니다: "+err.Error(), notify.Error)
	}
	_ = f.Close()
	m.profile.editorPath = path

	args := editorArgv()
	m.log.Debug("open editor", zap.Strings("argv", args))
	c := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return introEditedMsg{path: path, err: err}
	})
}

// onIntroEdited loads the edited intro into the profile form. Saving still goes through enter.
func (m *appModel) onIntroEdited(msg introEditedMsg) tea.Cmd {
	p := &m.profile
	defer func() { _ = os.Remove(msg.path) }()
	if msg.path != p.editorPath {
		return nil
	}
	p.editorPath = ""

	if msg.err != nil {
		return m.notice.Show("편집기 실행 실패: "+msg.err.Error(), notify.Error)
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		return m.notice.Show("편집 내용을 읽을 수 없습니다.", notify.Error)
	}

	after := strings.TrimRight(string(b), "\n")
	if strings.TrimSpace(after) == strings.TrimSpace(p.intro) {
		return m.notice.Show("변경 사항이 없습니다.", notify.Info)
	}
	p.intro = after
	var focus tea.Cmd
	if !p.fields.Focused() {
		focus = p.fields.Focus(profileName)
	}
	return tea.Batch(focus, m.notice.Show("소개를 수정했습니다. enter로 저장하세요.", notify.Info))
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/session"
)

const (
	matchMentor = iota
	matchMessage
)

type matchPage struct {
	list    binding.Binding[[]model.MatchRequest, forms.None]
	submit  binding.Binding[model.MatchRequest, model.MatchInput]
	respond binding.Binding[model.MatchRequest, model.RespondInput]
	cancel  binding.Binding[forms.None, forms.None]

	fields fieldGroup
	cursor int
}

func newMatchPage(c forms.API, h *session.Holder) matchPage {
	return matchPage{
		list:    forms.FetchMatches(c, h),
		submit:  forms.SubmitMatch(c, h),
		respond: forms.RespondMatch(c, h),
		cancel:  forms.CancelMatch(c, h),
		fields: newFieldGroup(
			newField("멘토 이메일", "mentor@example.com", fieldText),
			newField("메시지", "", fieldText),
		),
	}
}

func (p *matchPage) reset() {
	p.list.Reset(forms.None{})
	p.submit.Reset(model.MatchInput{})
	p.respond.Reset(model.RespondInput{})
	p.cancel.Reset(forms.None{})
	p.fields.SetValue(matchMentor, "")
	p.fields.SetValue(matchMessage, "")
	p.fields.Blur()
	p.cursor = 0
}

func (p matchPage) requests() []model.MatchRequest {
	v, _ := p.list.Value()
	return v
}

func (p matchPage) selected() (model.MatchRequest, bool) {
	rs := p.requests()
	if p.cursor < 0 || p.cursor >= len(rs) {
		return model.MatchRequest{}, false
	}
	return rs[p.cursor], true
}

func (m *appModel) fetchMatches() tea.Cmd {
	req, _, ok := m.match.list.Submit()
	if !ok {
		return nil
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[[]model.MatchRequest]) tea.Msg { return matchesLoadedMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onMatchesLoaded(msg matchesLoadedMsg) tea.Cmd {
	p := &m.match
	n, _ := resolve(&p.list, msg.res)
	p.cursor = min(p.cursor, max(len(p.requests())-1, 0))
	return m.resolved(p.list.Name(), p.list.Status, p.list.Message, n)
}

func (m *appModel) submitMatch() tea.Cmd {
	p := &m.match
	p.submit.Draft = model.MatchInput{
		MentorEmail: p.fields.Value(matchMentor),
		Message:     strings.TrimSpace(p.fields.Value(matchMessage)),
	}
	req, n, ok := p.submit.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[model.MatchRequest]) tea.Msg { return matchSentMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onMatchSent(msg matchSentMsg) tea.Cmd {
	p := &m.match
	n, applied := resolve(&p.submit, msg.res)
	cmd := m.resolved(p.submit.Name(), p.submit.Status, p.submit.Message, n)
	if !applied || p.submit.Status != binding.StatusSuccess {
		return cmd
	}
	p.fields.SetValue(matchMentor, p.submit.Draft.MentorEmail)
	p.fields.SetValue(matchMessage, p.submit.Draft.Message)
	p.fields.Blur()
	return tea.Batch(cmd, m.fetchMatches())
}

func (m *appModel) respondSelected(accept bool) tea.Cmd {
	p := &m.match
	r, ok := p.selected()
	if !ok || r.Status != model.MatchPending {
		return nil
	}
	p.respond.Draft = model.RespondInput{MenteeEmail: r.MenteeEmail, Accept: accept}
	req, n, ok := p.respond.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[model.MatchRequest]) tea.Msg { return matchRespondedMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onMatchResponded(msg matchRespondedMsg) tea.Cmd {
	p := &m.match
	n, applied := resolve(&p.respond, msg.res)
	cmd := m.resolved(p.respond.Name(), p.respond.Status, p.respond.Message, n)
	if !applied || p.respond.Status != binding.StatusSuccess {
		return cmd
	}
	return tea.Batch(cmd, m.fetchMatches())
}

func (m *appModel) cancelMatch() tea.Cmd {
	req, n, ok := m.match.cancel.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[forms.None]) tea.Msg { return matchCanceledMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onMatchCanceled(msg matchCanceledMsg) tea.Cmd {
	p := &m.match
	n, applied := resolve(&p.cancel, msg.res)
	cmd := m.resolved(p.cancel.Name(), p.cancel.Status, p.cancel.Message, n)
	if !applied || p.cancel.Status != binding.StatusSuccess {
		return cmd
	}
	return tea.Batch(cmd, m.fetchMatches())
}

func (m *appModel) updateMatchKey(msg tea.KeyMsg) tea.Cmd {
	p := &m.match
	switch msg.String() {
	case "n", "enter":
		return p.fields.Focus(matchMentor)
	case "r":
		return m.fetchMatches()
	case "j", "down":
		p.cursor = min(p.cursor+1, max(len(p.requests())-1, 0))
	case "k", "up":
		p.cursor = max(p.cursor-1, 0)
	case "a":
		return m.respondSelected(true)
	case "d":
		return m.respondSelected(false)
	case "c":
		return m.cancelMatch()
	}
	return nil
}

func (m appModel) role() model.Role {
	if pr, ok := m.profile.current(); ok {
		return pr.Role
	}
	return ""
}

func (m appModel) viewMatch(width int) string {
	p := m.match
	role := m.role()
	var s strings.Builder

	if role != model.RoleMentor {
		s.WriteString(styleTitle().Render("매칭 요청 보내기") + "\n\n")
		s.WriteString(p.fields.View(min(width, 80)) + "\n")
		switch {
		case p.submit.Loading():
			s.WriteString(m.spinner.View() + " 요청 중…\n")
		case p.submit.Status == binding.StatusError:
			s.WriteString(styleError().Render(p.submit.Message) + "\n")
		}
		s.WriteString("\n")
	}

	title := "받은 요청"
	if role == model.RoleMentee {
		title = "보낸 요청"
	}
	s.WriteString(styleTitle().Render(title) + "\n\n")

	rs := p.requests()
	switch {
	case p.list.Loading() && len(rs) == 0:
		s.WriteString(m.spinner.View() + " 불러오는 중…")
	case p.list.Status == binding.StatusError:
		s.WriteString(styleError().Render(p.list.Message))
	case len(rs) == 0:
		s.WriteString(styleMuted().Render("요청이 없습니다."))
	default:
		for i, r := range rs {
			s.WriteString(m.renderMatchRow(r, i == p.cursor, width) + "\n")
		}
	}
	return s.String()
}

func (m appModel) renderMatchRow(r model.MatchRequest, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = glyphCursor() + " "
	}
	st := lipgloss.NewStyle()
	switch r.Status {
	case model.MatchAccepted:
		st = st.Foreground(colorDone)
	case model.MatchRejected:
		st = st.Foreground(colorErrorFg)
	default:
		st = st.Foreground(colorBusy)
	}
	line := fmt.Sprintf("%s%s %s %s  %s", prefix, r.MenteeEmail, glyphBullet(), r.MentorEmail, st.Render("["+r.Status.Label()+"]"))
	if msg := strings.TrimSpace(r.Message); msg != "" {
		line += "  " + styleMuted().Render(msg)
	}
	if selected {
		return lipgloss.NewStyle().Background(colorSelectedBg).Render(fitLine(line, width))
	}
	return fitLine(line, width)
}

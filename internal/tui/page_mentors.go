package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mentorlink-cli/internal/api"
	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/directory"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/notify"
	"mentorlink-cli/internal/tracker"
)

type mentorsPage struct {
	fetch binding.Binding[[]model.Mentor, forms.None]
	dir   directory.View
	track *tracker.Tracker

	list      list.Model
	filter    textinput.Model
	filtering bool
}

func newMentorsPage(c forms.API, tag language.Tag) mentorsPage {
	tr := tracker.New()
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "이름 또는 기술스택"
	fi.CharLimit = 64
	return mentorsPage{
		fetch:  forms.FetchMentors(c),
		dir:    directory.NewView(tag),
		track:  tr,
		list:   newList(newMentorDelegate(tr)),
		filter: fi,
	}
}

// resetTracker forgets every per-mentor flag. Results still in flight for the old tracker are dropped.
func (p *mentorsPage) resetTracker() {
	p.track = tracker.New()
	p.list.SetDelegate(newMentorDelegate(p.track))
}

func (p *mentorsPage) stopFiltering() {
	p.filtering = false
	p.filter.Blur()
}

// refreshItems pushes the derived view into the list, keeping the selection on the same mentor.
func (p *mentorsPage) refreshItems() {
	prev, hadPrev := p.selected()
	items := make([]list.Item, 0, p.dir.Len())
	sel := 0
	for i, m := range p.dir.Items() {
		if hadPrev && m.Email == prev.Email {
			sel = i
		}
		items = append(items, mentorItem{mentor: m})
	}
	p.list.SetItems(items)
	if len(items) > 0 {
		p.list.Select(sel)
	}
}

func (p mentorsPage) selected() (model.Mentor, bool) {
	it, ok := p.list.SelectedItem().(mentorItem)
	if !ok {
		return model.Mentor{}, false
	}
	return it.mentor, true
}

func (m *appModel) fetchMentors() tea.Cmd {
	req, _, ok := m.mentors.fetch.Submit()
	if !ok {
		return nil
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[[]model.Mentor]) tea.Msg { return mentorsLoadedMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onMentorsLoaded(msg mentorsLoadedMsg) tea.Cmd {
	b := &m.mentors.fetch
	n := b.Resolve(msg.res)
	if v, ok := b.Value(); ok {
		m.mentors.dir.SetSource(v)
		m.mentors.refreshItems()
	}
	return m.resolved(b.Name(), b.Status, b.Message, n)
}

// requestMatchFor sends a match request straight from a directory entry. Each entry keeps its
// own busy/done flags, so several entries can be in flight at once.
func (m *appModel) requestMatchFor(mentor model.Mentor) tea.Cmd {
	if !m.session.IsAuthenticated() {
		return tea.Batch(
			m.navigate(viewLogin),
			m.notice.Show(forms.MsgLoginRequired, notify.Error),
		)
	}
	tr := m.mentors.track
	if !tr.TryBegin(mentor.Email) {
		return nil
	}
	m.dirPending++
	m.log.Debug("tracker begin", zap.String("mentor", mentor.Email))

	ctx, c, token, email := m.ctx, m.api, m.session.Token(), mentor.Email
	send := func() (msg tea.Msg) {
		defer func() {
			if p := recover(); p != nil {
				msg = directoryMatchMsg{tracker: tr, email: email, err: &api.TransportError{Op: "request match", Err: fmt.Errorf("panic: %v", p)}}
			}
		}()
		_, err := c.RequestMatch(ctx, token, model.MatchInput{MentorEmail: email})
		return directoryMatchMsg{tracker: tr, email: email, err: err}
	}
	return tea.Batch(send, m.spin())
}

func (m *appModel) onDirectoryMatch(msg directoryMatchMsg) tea.Cmd {
	if msg.tracker != m.mentors.track {
		return nil
	}
	msg.tracker.Complete(msg.email, msg.err == nil)
	m.dirPending = max(m.dirPending-1, 0)
	m.log.Debug("directory match", zap.String("mentor", msg.email), zap.Error(msg.err))
	return m.notice.Push(forms.DirectoryMatchNotice(msg.err))
}

func (m *appModel) updateMentorsInput(msg tea.KeyMsg) tea.Cmd {
	p := &m.mentors
	switch msg.String() {
	case "esc", "enter":
		p.stopFiltering()
		return nil
	}
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != p.dir.Filter() {
		p.dir.SetFilter(p.filter.Value())
		p.refreshItems()
	}
	return cmd
}

func (m *appModel) updateMentorsKey(msg tea.KeyMsg) tea.Cmd {
	p := &m.mentors
	switch msg.String() {
	case "/":
		p.filtering = true
		return p.filter.Focus()
	case "s":
		p.dir.SetSort(p.dir.Sort().Next())
		p.refreshItems()
		return nil
	case "r":
		return m.fetchMentors()
	case "y":
		if mentor, ok := p.selected(); ok {
			return m.copyText("이메일", mentor.Email)
		}
		return nil
	case "enter", "m":
		if mentor, ok := p.selected(); ok {
			return m.requestMatchFor(mentor)
		}
		return nil
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (m appModel) viewMentors(width, height int) string {
	p := m.mentors
	var status string
	switch {
	case p.fetch.Loading():
		status = m.spinner.View() + " 불러오는 중…"
	case p.fetch.Status == binding.StatusError:
		status = styleError().Render(p.fetch.Message)
	default:
		status = styleMuted().Render(fmt.Sprintf("%d명 · 정렬: %s", p.dir.Len(), p.dir.Sort().Label()))
	}

	filterLine := styleMuted().Render("/ 검색")
	if p.filtering || p.dir.Filter() != "" {
		filterLine = p.filter.View()
	}
	top := fitLine(filterLine, width) + "\n" + fitLine(status, width)

	listW, detailW, listH := mentorsLayout(width, height)

	var left string
	if p.dir.Len() == 0 && !p.fetch.Loading() {
		left = styleMuted().Render("멘토가 없습니다.")
	} else {
		left = p.list.View()
	}

	right := ""
	if mentor, ok := p.selected(); ok {
		right = m.mentorDetail(mentor, detailW)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		fitPane(left, listW, listH),
		"  ",
		fitPane(right, detailW, listH),
	)
	return top + "\n\n" + body
}

func (m appModel) mentorDetail(mentor model.Mentor, width int) string {
	var b strings.Builder
	b.WriteString(styleTitle().Render(mentor.Name) + "\n")
	b.WriteString(styleMuted().Render(mentor.Email) + "\n\n")
	b.WriteString(styleLabel().Render("기술스택") + " " + orDash(mentor.TechStack) + "\n")
	if mentor.ProfileImage != "" {
		b.WriteString(styleLabel().Render("이미지") + " " + mentor.ProfileImage + "\n")
	}
	if intro := strings.TrimSpace(mentor.Intro); intro != "" {
		b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), max(width, 1))) + "\n")
		b.WriteString(renderMarkdown(intro, width))
	}
	f := m.mentors.track.Flags(mentor.Email)
	switch {
	case f.Busy:
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorBusy).Render("요청 중…"))
	case f.Done:
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorDone).Render(glyphCheck()+" 요청 완료"))
	case m.session.IsAuthenticated():
		b.WriteString("\n" + styleMuted().Render("enter: 매칭 요청"))
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mentorlink-cli/internal/model"
)

const chromeHeight = 6

func (m appModel) bodySize() (int, int) {
	return max(m.width, 40), max(m.height-chromeHeight, 6)
}

func (m *appModel) resizeLists() {
	w, h := m.bodySize()
	listW, _, listH := mentorsLayout(w, h)
	m.mentors.list.SetSize(listW, listH)
}

// mentorsLayout splits the body into the list column and the detail column.
func mentorsLayout(width, height int) (listW, detailW, listH int) {
	listW = max(width*2/5, 20)
	detailW = max(width-listW-2, 10)
	listH = max(height-3, 1)
	return listW, detailW, listH
}

func (m appModel) View() string {
	w, h := m.bodySize()

	header := styleTitle().Render("mentorlink") + "  " + styleMuted().Render(m.view.title())
	if m.session.IsAuthenticated() {
		if pr, ok := m.profile.current(); ok {
			header += "  " + styleMuted().Render(pr.Email)
		}
		if m.loading() {
			header += "  " + m.spinner.View()
		}
	}

	var body string
	switch m.view {
	case viewMentors:
		body = m.viewMentors(w, h)
	case viewLogin:
		body = m.viewAuthForm("로그인", m.login.fields, m.login.bind.Status, m.login.bind.Message, w)
	case viewSignup:
		body = m.viewAuthForm("회원가입", m.signup.fields, m.signup.bind.Status, m.signup.bind.Message, w)
	case viewProfile:
		body = m.viewProfile(w)
	case viewMatch:
		body = m.viewMatch(w)
	}

	parts := []string{
		fitLine(header, w),
		m.navbar(),
		fitPane(body, w, h),
		m.notice.View(w),
		lipgloss.NewStyle().Faint(true).Render(fitLine(m.helpLine(), w)),
	}
	return strings.Join(parts, "\n")
}

type navLink struct {
	key  string
	view view
}

// navbar shows login and signup only to guests.
func (m appModel) navbar() string {
	links := []navLink{{"1", viewMentors}, {"2", viewProfile}, {"3", viewMatch}}
	if !m.session.IsAuthenticated() {
		links = append(links, navLink{"4", viewLogin}, navLink{"5", viewSignup})
	}
	out := make([]string, 0, len(links)+1)
	for _, l := range links {
		label := l.key + " " + l.view.title()
		if l.view == m.view {
			out = append(out, styleNavActive().Render(label))
		} else {
			out = append(out, styleNavLink().Render(label))
		}
	}
	if m.session.IsAuthenticated() {
		out = append(out, styleNavLink().Render("L 로그아웃"))
	}
	return strings.Join(out, " ")
}

func (m appModel) helpLine() string {
	if m.inputActive() {
		return "enter: 제출  tab: 다음 칸  esc: 입력 종료  ctrl+c: 종료"
	}
	switch m.view {
	case viewMentors:
		return "↑/↓: 이동  /: 검색  s: 정렬  r: 새로고침  y: 이메일 복사  enter: 매칭 요청  q: 종료"
	case viewProfile:
		return "e: 수정  i: 소개 편집  u: 이미지 업로드  y: URL 복사  r: 새로고침  q: 종료"
	case viewMatch:
		switch m.role() {
		case model.RoleMentor:
			return "j/k: 이동  a: 수락  d: 거절  r: 새로고침  q: 종료"
		case model.RoleMentee:
			return "n: 새 요청  c: 요청 취소  r: 새로고침  q: 종료"
		}
		return "n: 새 요청  j/k: 이동  a/d: 수락/거절  c: 취소  r: 새로고침  q: 종료"
	}
	return "enter: 입력 시작  q: 종료"
}

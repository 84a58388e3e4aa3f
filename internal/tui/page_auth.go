package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/session"
)

const (
	loginEmail = iota
	loginPassword
)

type loginPage struct {
	bind   binding.Binding[model.Token, model.LoginInput]
	fields fieldGroup
}

func newLoginPage(c forms.API, h *session.Holder) loginPage {
	return loginPage{
		bind: forms.Login(c, h),
		fields: newFieldGroup(
			newField("이메일", "you@example.com", fieldText),
			newField("비밀번호", "", fieldPassword),
		),
	}
}

// reset keeps the typed email; the password never outlives a session.
func (p *loginPage) reset() {
	p.bind.Reset(model.LoginInput{})
	p.fields.SetValue(loginPassword, "")
	p.fields.Blur()
}

func (m *appModel) submitLogin() tea.Cmd {
	p := &m.login
	p.bind.Draft = model.LoginInput{
		Email:    strings.TrimSpace(p.fields.Value(loginEmail)),
		Password: p.fields.Value(loginPassword),
	}
	req, n, ok := p.bind.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[model.Token]) tea.Msg { return loginDoneMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onLoginDone(msg loginDoneMsg) tea.Cmd {
	b := &m.login.bind
	n, applied := resolve(b, msg.res)
	cmd := m.resolved(b.Name(), b.Status, b.Message, n)
	if !applied || b.Status != binding.StatusSuccess {
		return cmd
	}
	m.login.fields.SetValue(loginPassword, "")
	return tea.Batch(cmd, m.navigate(viewMentors))
}

const (
	signupEmail = iota
	signupPassword
	signupName
	signupRole
)

type signupPage struct {
	bind   binding.Binding[string, model.SignupInput]
	fields fieldGroup
}

func newSignupPage(c forms.API) signupPage {
	p := signupPage{
		bind: forms.Signup(c),
		fields: newFieldGroup(
			newField("이메일", "you@example.com", fieldText),
			newField("비밀번호", fmt.Sprintf("%d자 이상", forms.MinPasswordLen), fieldPassword),
			newField("이름", "", fieldText),
			newField("역할", "", fieldRole),
		),
	}
	p.syncFields()
	return p
}

// syncFields copies the draft into the inputs.
func (p *signupPage) syncFields() {
	d := p.bind.Draft
	p.fields.SetValue(signupEmail, d.Email)
	p.fields.SetValue(signupPassword, d.Password)
	p.fields.SetValue(signupName, d.Name)
	p.fields.SetRole(signupRole, d.Role)
}

func (m *appModel) submitSignup() tea.Cmd {
	p := &m.signup
	p.bind.Draft = model.SignupInput{
		Email:    strings.TrimSpace(p.fields.Value(signupEmail)),
		Password: p.fields.Value(signupPassword),
		Name:     strings.TrimSpace(p.fields.Value(signupName)),
		Role:     p.fields.Role(signupRole),
	}
	req, n, ok := p.bind.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[string]) tea.Msg { return signupDoneMsg{res: r} }),
		m.spin(),
	)
}

// onSignupDone clears the form and hands the new email to the login form.
func (m *appModel) onSignupDone(msg signupDoneMsg) tea.Cmd {
	b := &m.signup.bind
	n, applied := resolve(b, msg.res)
	cmd := m.resolved(b.Name(), b.Status, b.Message, n)
	if !applied || b.Status != binding.StatusSuccess {
		return cmd
	}
	m.signup.syncFields()
	if email, ok := b.Value(); ok {
		m.login.fields.SetValue(loginEmail, email)
	}
	nav := m.navigate(viewLogin)
	return tea.Batch(cmd, nav, m.login.fields.Focus(loginPassword))
}

func (m *appModel) updateFormInput(g *fieldGroup, msg tea.KeyMsg, submit func() tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "esc":
		g.Blur()
		return nil
	case "tab", "down":
		return g.Next()
	case "shift+tab", "up":
		return g.Prev()
	case "enter":
		return submit()
	}
	return g.Update(msg)
}

func (m appModel) viewAuthForm(title string, g fieldGroup, b binding.Status, message string, width int) string {
	var s strings.Builder
	s.WriteString(styleTitle().Render(title) + "\n\n")
	s.WriteString(g.View(min(width, 72)) + "\n\n")
	switch b {
	case binding.StatusLoading:
		s.WriteString(m.spinner.View() + " 처리 중…")
	case binding.StatusError:
		s.WriteString(styleError().Render(message))
	case binding.StatusSuccess:
		s.WriteString(styleSuccess().Render(message))
	default:
		if g.Focused() {
			s.WriteString(styleMuted().Render("tab: 다음 칸 · enter: 제출 · esc: 입력 종료"))
		} else {
			s.WriteString(styleMuted().Render("enter: 입력 시작"))
		}
	}
	return s.String()
}

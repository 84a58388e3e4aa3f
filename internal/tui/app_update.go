package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mentorlink-cli/internal/notify"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return nil

	case notify.ExpiredMsg:
		m.notice.Expire(msg)
		return nil

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case mentorsLoadedMsg:
		return m.onMentorsLoaded(msg)
	case directoryMatchMsg:
		return m.onDirectoryMatch(msg)
	case loginDoneMsg:
		return m.onLoginDone(msg)
	case signupDoneMsg:
		return m.onSignupDone(msg)
	case profileLoadedMsg:
		return m.onProfileLoaded(msg)
	case profileSavedMsg:
		return m.onProfileSaved(msg)
	case imageUploadedMsg:
		return m.onImageUploaded(msg)
	case matchesLoadedMsg:
		return m.onMatchesLoaded(msg)
	case matchSentMsg:
		return m.onMatchSent(msg)
	case matchRespondedMsg:
		return m.onMatchResponded(msg)
	case matchCanceledMsg:
		return m.onMatchCanceled(msg)
	case introEditedMsg:
		return m.onIntroEdited(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if m.inputActive() {
			return m.updateInput(msg)
		}
		return m.updateKey(msg)
	}
	return nil
}

// updateInput handles keys while a text field owns the keyboard.
func (m *appModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch m.view {
	case viewMentors:
		return m.updateMentorsInput(msg)
	case viewLogin:
		return m.updateFormInput(&m.login.fields, msg, m.submitLogin)
	case viewSignup:
		return m.updateFormInput(&m.signup.fields, msg, m.submitSignup)
	case viewProfile:
		return m.updateProfileInput(msg)
	case viewMatch:
		return m.updateFormInput(&m.match.fields, msg, m.submitMatch)
	}
	return nil
}

func (m *appModel) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "1":
		return m.navigate(viewMentors)
	case "2":
		return m.navigate(viewProfile)
	case "3":
		return m.navigate(viewMatch)
	case "4":
		if m.session.IsAuthenticated() {
			return nil
		}
		return m.navigate(viewLogin)
	case "5":
		if m.session.IsAuthenticated() {
			return nil
		}
		return m.navigate(viewSignup)
	case "L":
		if !m.session.IsAuthenticated() {
			return nil
		}
		return m.logout()
	case "esc":
		m.notice.Dismiss()
		return nil
	}

	var cmd tea.Cmd
	switch m.view {
	case viewMentors:
		cmd = m.updateMentorsKey(msg)
	case viewLogin:
		if msg.String() == "enter" || msg.String() == "tab" {
			cmd = m.login.fields.Focus(loginEmail)
		}
	case viewSignup:
		if msg.String() == "enter" || msg.String() == "tab" {
			cmd = m.signup.fields.Focus(signupEmail)
		}
	case viewProfile:
		cmd = m.updateProfileKey(msg)
	case viewMatch:
		cmd = m.updateMatchKey(msg)
	}
	return cmd
}

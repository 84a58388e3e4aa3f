package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/session"
)

const (
	profileName = iota
	profileTech
	profileRole
)

type profilePage struct {
	fetch  binding.Binding[model.Profile, forms.None]
	edit   binding.Binding[model.Profile, model.ProfileUpdate]
	upload binding.Binding[forms.ImageResult, forms.ImageDraft]

	fields fieldGroup
	// intro is markdown and may span lines, so it is edited in $EDITOR rather than a field.
	intro      string
	editorPath string

	imagePath textinput.Model
	imageURL  string
}

func newProfilePage(c forms.API, h *session.Holder, now func() time.Time) profilePage {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "./me.png"
	ti.CharLimit = 512
	return profilePage{
		fetch:  forms.FetchProfile(c, h),
		edit:   forms.EditProfile(c, h),
		upload: forms.UploadImage(c, h, now),
		fields: newFieldGroup(
			newField("이름", "", fieldText),
			newField("기술스택", "Go, React", fieldText),
			newField("역할", "", fieldRole),
		),
		imagePath: ti,
	}
}

func (p *profilePage) reset() {
	p.fetch.Reset(forms.None{})
	p.edit.Reset(model.ProfileUpdate{Role: model.RoleMentee})
	p.upload.Reset(forms.ImageDraft{})
	p.imageURL = ""
	p.imagePath.SetValue("")
	p.syncFields(model.Profile{Role: model.RoleMentee})
	p.blur()
}

func (p *profilePage) blur() {
	p.fields.Blur()
	p.imagePath.Blur()
}

func (p profilePage) inputActive() bool {
	return p.fields.Focused() || p.imagePath.Focused()
}

// current prefers the edited profile over the fetched one.
func (p profilePage) current() (model.Profile, bool) {
	if v, ok := p.edit.Value(); ok {
		return v, true
	}
	return p.fetch.Value()
}

func (p *profilePage) syncFields(pr model.Profile) {
	p.fields.SetValue(profileName, pr.Name)
	p.fields.SetValue(profileTech, pr.TechStack)
	p.fields.SetRole(profileRole, pr.Role)
	p.intro = pr.Intro
}

func (m *appModel) fetchProfile() tea.Cmd {
	req, _, ok := m.profile.fetch.Submit()
	if !ok {
		return nil
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[model.Profile]) tea.Msg { return profileLoadedMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) fetchProfileIfMissing() tea.Cmd {
	if _, ok := m.profile.current(); ok {
		return nil
	}
	return m.fetchProfile()
}

func (m *appModel) onProfileLoaded(msg profileLoadedMsg) tea.Cmd {
	p := &m.profile
	n, applied := resolve(&p.fetch, msg.res)
	if applied && p.fetch.Status == binding.StatusSuccess {
		pr, _ := p.fetch.Value()
		// The edit binding merges into the freshest server copy.
		p.edit.SetData(pr)
		if !p.fields.Focused() {
			p.syncFields(pr)
		}
	}
	return m.resolved(p.fetch.Name(), p.fetch.Status, p.fetch.Message, n)
}

func (m *appModel) submitProfile() tea.Cmd {
	p := &m.profile
	p.edit.Draft = model.ProfileUpdate{
		Name:      strings.TrimSpace(p.fields.Value(profileName)),
		Intro:     strings.TrimSpace(p.intro),
		TechStack: strings.TrimSpace(p.fields.Value(profileTech)),
		Role:      p.fields.Role(profileRole),
	}
	req, n, ok := p.edit.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[model.Profile]) tea.Msg { return profileSavedMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onProfileSaved(msg profileSavedMsg) tea.Cmd {
	p := &m.profile
	n, applied := resolve(&p.edit, msg.res)
	if applied && p.edit.Status == binding.StatusSuccess {
		p.fields.Blur()
		if pr, ok := p.edit.Value(); ok {
			p.syncFields(pr)
		}
	}
	return m.resolved(p.edit.Name(), p.edit.Status, p.edit.Message, n)
}

func (m *appModel) submitImage() tea.Cmd {
	p := &m.profile
	email := ""
	if pr, ok := p.current(); ok {
		email = pr.Email
	}
	p.upload.Draft = forms.ImageDraft{Path: strings.TrimSpace(p.imagePath.Value()), Email: email}
	req, n, ok := p.upload.Submit()
	if !ok {
		return m.notice.Push(n)
	}
	return tea.Batch(
		run(m.ctx, req, func(r binding.Result[forms.ImageResult]) tea.Msg { return imageUploadedMsg{res: r} }),
		m.spin(),
	)
}

func (m *appModel) onImageUploaded(msg imageUploadedMsg) tea.Cmd {
	p := &m.profile
	n, applied := resolve(&p.upload, msg.res)
	if applied && p.upload.Status == binding.StatusSuccess {
		if v, ok := p.upload.Value(); ok {
			p.imageURL = v.URL
		}
		p.imagePath.SetValue("")
		p.imagePath.Blur()
	}
	return m.resolved(p.upload.Name(), p.upload.Status, p.upload.Message, n)
}

func (m *appModel) updateProfileInput(msg tea.KeyMsg) tea.Cmd {
	p := &m.profile
	if p.imagePath.Focused() {
		switch msg.String() {
		case "esc":
			p.imagePath.Blur()
			return nil
		case "enter":
			return m.submitImage()
		}
		var cmd tea.Cmd
		p.imagePath, cmd = p.imagePath.Update(msg)
		return cmd
	}
	switch msg.String() {
	case "ctrl+e":
		return m.openIntroEditor()
	case "esc":
		// Abandon the edit and show the confirmed values again.
		p.fields.Blur()
		if pr, ok := p.current(); ok {
			p.syncFields(pr)
		}
		return nil
	}
	return m.updateFormInput(&p.fields, msg, m.submitProfile)
}

func (m *appModel) updateProfileKey(msg tea.KeyMsg) tea.Cmd {
	p := &m.profile
	switch msg.String() {
	case "e", "enter":
		if pr, ok := p.current(); ok {
			p.syncFields(pr)
		}
		return p.fields.Focus(profileName)
	case "i":
		if pr, ok := p.current(); ok {
			p.syncFields(pr)
		}
		return m.openIntroEditor()
	case "u":
		p.fields.Blur()
		return p.imagePath.Focus()
	case "r":
		return m.fetchProfile()
	case "y":
		return m.copyText("이미지 URL", p.displayImageURL(m.api))
	}
	return nil
}

// displayImageURL prefers the cache-busted URL of a fresh upload.
func (p profilePage) displayImageURL(c forms.API) string {
	if p.imageURL != "" {
		return p.imageURL
	}
	if pr, ok := p.current(); ok {
		return c.ProfileImageURL(pr.Email)
	}
	return ""
}

func (m appModel) viewProfile(width int) string {
	p := m.profile
	var s strings.Builder
	s.WriteString(styleTitle().Render("내 프로필") + "\n\n")

	pr, ok := p.current()
	switch {
	case !ok && p.fetch.Loading():
		s.WriteString(m.spinner.View() + " 불러오는 중…")
		return s.String()
	case !ok && p.fetch.Status == binding.StatusError:
		s.WriteString(styleError().Render(p.fetch.Message))
		return s.String()
	case !ok:
		s.WriteString(styleMuted().Render("프로필이 없습니다."))
		return s.String()
	}

	s.WriteString(styleLabel().Render("이메일") + " " + pr.Email + "\n")
	if p.fields.Focused() {
		s.WriteString(p.fields.View(min(width, 80)) + "\n")
		s.WriteString(styleLabel().Render("소개") + " " + introPreview(p.intro, max(min(width, 80)-13, 10)) + "\n")
		s.WriteString(styleMuted().Render("ctrl+e: 편집기로 소개 편집") + "\n")
	} else {
		s.WriteString(styleLabel().Render("이름") + " " + orDash(pr.Name) + "\n")
		s.WriteString(styleLabel().Render("역할") + " " + roleLabel(pr.Role) + "\n")
		s.WriteString(styleLabel().Render("기술스택") + " " + orDash(pr.TechStack) + "\n")
		if intro := strings.TrimSpace(pr.Intro); intro != "" {
			s.WriteString("\n" + renderMarkdown(intro, min(width, 80)) + "\n")
		}
	}

	s.WriteString("\n" + styleLabel().Render("이미지") + " ")
	switch {
	case p.imagePath.Focused():
		s.WriteString(renderInputLine(max(min(width, 80)-14, 10), p.imagePath.View()))
	default:
		s.WriteString(p.displayImageURL(m.api))
	}
	s.WriteString("\n\n")

	switch {
	case p.edit.Loading(), p.upload.Loading():
		s.WriteString(m.spinner.View() + " 저장 중…")
	case p.edit.Status == binding.StatusError:
		s.WriteString(styleError().Render(p.edit.Message))
	case p.upload.Status == binding.StatusError:
		s.WriteString(styleError().Render(p.upload.Message))
	}
	return s.String()
}

// introPreview is the first non-empty line of the intro, cut to width.
func introPreview(intro string, width int) string {
	for _, ln := range strings.Split(intro, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			return fitLine(ln, width)
		}
	}
	return styleMuted().Render("-")
}

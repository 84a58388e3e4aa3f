package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/notify"
	"mentorlink-cli/internal/session"
)

type appModel struct {
	ctx     context.Context
	api     forms.API
	session *session.Holder
	log     *zap.Logger
	notice  *notify.Channel

	width  int
	height int

	view view

	mentors mentorsPage
	login   loginPage
	signup  signupPage
	profile profilePage
	match   matchPage

	spinner  spinner.Model
	spinning bool
	// dirPending counts directory match requests in flight for the current tracker.
	dirPending int

	// startup is the landing-view fetch. It is submitted in newAppModel because Init has a value
	// receiver and cannot move a binding into loading.
	startup tea.Cmd
}

type appOptions struct {
	API           forms.API
	Session       *session.Holder
	Logger        *zap.Logger
	NotifyTimeout time.Duration
	Locale        language.Tag
	Now           func() time.Time
}

func newAppModel(ctx context.Context, opts appOptions) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Session == nil {
		opts.Session = session.NewHolder()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ch := notify.New(opts.NotifyTimeout)
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := appModel{
		ctx:     ctx,
		api:     opts.API,
		session: opts.Session,
		log:     opts.Logger,
		notice:  &ch,
		width:   100,
		height:  30,
		view:    viewMentors,
		mentors: newMentorsPage(opts.API, opts.Locale),
		login:   newLoginPage(opts.API, opts.Session),
		signup:  newSignupPage(opts.API),
		profile: newProfilePage(opts.API, opts.Session, opts.Now),
		match:   newMatchPage(opts.API, opts.Session),
		spinner: sp,
	}
	m.resizeLists()
	m.startup = m.fetchMentors()
	return m
}

// Init loads the directory, which is the landing view.
func (m appModel) Init() tea.Cmd {
	return m.startup
}

// navigate switches views through the session gate and runs the entry fetch of the target.
func (m *appModel) navigate(v view) tea.Cmd {
	target := session.Gate(m.session, v, v.protected(), viewLogin)
	m.blurInputs()
	m.view = target
	m.log.Debug("navigate", zap.Stringer("requested", v), zap.Stringer("view", target))

	switch target {
	case viewMentors:
		return m.fetchMentors()
	case viewProfile:
		return m.fetchProfile()
	case viewMatch:
		return tea.Batch(m.fetchMatches(), m.fetchProfileIfMissing())
	case viewLogin:
		return m.login.fields.Focus(0)
	case viewSignup:
		return m.signup.fields.Focus(0)
	}
	return nil
}

// logout drops the credential and every piece of per-user state.
func (m *appModel) logout() tea.Cmd {
	m.session.Clear()
	m.login.reset()
	m.profile.reset()
	m.match.reset()
	m.mentors.resetTracker()
	m.dirPending = 0
	m.log.Debug("logout")

	var cmds []tea.Cmd
	if m.view.protected() {
		cmds = append(cmds, m.navigate(viewLogin))
	}
	cmds = append(cmds, m.notice.Show(forms.MsgLoggedOut, notify.Info))
	return tea.Batch(cmds...)
}

func (m *appModel) blurInputs() {
	m.mentors.stopFiltering()
	m.login.fields.Blur()
	m.signup.fields.Blur()
	m.profile.blur()
	m.match.fields.Blur()
}

func (m appModel) inputActive() bool {
	switch m.view {
	case viewMentors:
		return m.mentors.filtering
	case viewLogin:
		return m.login.fields.Focused()
	case viewSignup:
		return m.signup.fields.Focused()
	case viewProfile:
		return m.profile.inputActive()
	case viewMatch:
		return m.match.fields.Focused()
	}
	return false
}

func (m appModel) loading() bool {
	return m.dirPending > 0 ||
		m.mentors.fetch.Loading() ||
		m.login.bind.Loading() ||
		m.signup.bind.Loading() ||
		m.profile.fetch.Loading() ||
		m.profile.edit.Loading() ||
		m.profile.upload.Loading() ||
		m.match.list.Loading() ||
		m.match.submit.Loading() ||
		m.match.respond.Loading() ||
		m.match.cancel.Loading()
}

// spin starts the loading spinner if it is not already ticking.
func (m *appModel) spin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// resolved logs a binding outcome and pushes its notification.
func (m *appModel) resolved(name string, status binding.Status, msg string, n notify.Notification) tea.Cmd {
	m.log.Debug("binding resolved",
		zap.String("binding", name),
		zap.Stringer("status", status),
		zap.String("message", msg),
	)
	return m.notice.Push(n)
}

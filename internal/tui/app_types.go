package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/forms"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/notify"
	"mentorlink-cli/internal/tracker"
)

type view int

const (
	viewMentors view = iota
	viewLogin
	viewSignup
	viewProfile
	viewMatch
)

func (v view) String() string {
	switch v {
	case viewLogin:
		return "login"
	case viewSignup:
		return "signup"
	case viewProfile:
		return "profile"
	case viewMatch:
		return "match"
	default:
		return "mentors"
	}
}

func (v view) title() string {
	switch v {
	case viewLogin:
		return "로그인"
	case viewSignup:
		return "회원가입"
	case viewProfile:
		return "프로필"
	case viewMatch:
		return "매칭"
	default:
		return "멘토 찾기"
	}
}

// protected views need a credential.
func (v view) protected() bool { return v == viewProfile || v == viewMatch }

// Result messages, one per binding, so Update can route each outcome to its owner.
type (
	mentorsLoadedMsg  struct{ res binding.Result[[]model.Mentor] }
	loginDoneMsg      struct{ res binding.Result[model.Token] }
	signupDoneMsg     struct{ res binding.Result[string] }
	profileLoadedMsg  struct{ res binding.Result[model.Profile] }
	profileSavedMsg   struct{ res binding.Result[model.Profile] }
	imageUploadedMsg  struct{ res binding.Result[forms.ImageResult] }
	matchesLoadedMsg  struct{ res binding.Result[[]model.MatchRequest] }
	matchSentMsg      struct{ res binding.Result[model.MatchRequest] }
	matchRespondedMsg struct{ res binding.Result[model.MatchRequest] }
	matchCanceledMsg  struct{ res binding.Result[forms.None] }
)

// directoryMatchMsg reports a per-entry match request. Results for a tracker that has since
// been replaced (logout) are dropped.
type directoryMatchMsg struct {
	tracker *tracker.Tracker
	email   string
	err     error
}

// run turns a binding request into a command delivering wrap(result).
func run[D any](ctx context.Context, req binding.Request[D], wrap func(binding.Result[D]) tea.Msg) tea.Cmd {
	return func() tea.Msg { return wrap(req.Do(ctx)) }
}

// resolve applies res to b. applied is false when the result was stale and dropped.
func resolve[D, T any](b *binding.Binding[D, T], res binding.Result[D]) (n notify.Notification, applied bool) {
	wasLoading := b.Loading()
	n = b.Resolve(res)
	return n, wasLoading && !b.Loading()
}

// Package formstest provides an in-memory forms.API for tests.
package formstest

import (
	"context"
	"io"
	"net/url"
	"sync"

	"mentorlink-cli/internal/api"
	"mentorlink-cli/internal/model"
)

// API records every call and answers from its fields. A non-nil error field makes the
// matching call fail with it.
type API struct {
	mu    sync.Mutex
	calls map[string]int

	Token    model.Token
	Mentors  []model.Mentor
	Profile  model.Profile
	Requests []model.MatchRequest

	// MatchErrs fails RequestMatch per mentor email.
	MatchErrs map[string]error

	RegisterErr error
	LoginErr    error
	MentorsErr  error
	ProfileErr  error
	UpdateErr   error
	UploadErr   error
	MatchErr    error
	ListErr     error
	RespondErr  error
	CancelErr   error

	// Hold blocks RequestMatch until it is closed, when set.
	Hold chan struct{}

	LastToken   string
	LastMatch   model.MatchInput
	LastUpdate  model.ProfileUpdate
	LastRespond model.RespondInput
	LastUpload  []byte
}

func New() *API { return &API{calls: map[string]int{}} }

func (f *API) hit(op, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
	f.LastToken = token
}

// Calls returns how often op was invoked.
func (f *API) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Total returns the number of network calls of any kind.
func (f *API) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *API) Register(_ context.Context, _ model.SignupInput) error {
	f.hit("register", "")
	return f.RegisterErr
}

func (f *API) Authenticate(_ context.Context, _, _ string) (model.Token, error) {
	f.hit("login", "")
	if f.LoginErr != nil {
		return model.Token{}, f.LoginErr
	}
	return f.Token, nil
}

func (f *API) ListMentors(_ context.Context, _ api.MentorQuery) ([]model.Mentor, error) {
	f.hit("mentors", "")
	if f.MentorsErr != nil {
		return nil, f.MentorsErr
	}
	return append([]model.Mentor(nil), f.Mentors...), nil
}

func (f *API) FetchProfile(_ context.Context, token string) (model.Profile, error) {
	f.hit("profile", token)
	if f.ProfileErr != nil {
		return model.Profile{}, f.ProfileErr
	}
	return f.Profile, nil
}

func (f *API) UpdateProfile(_ context.Context, token string, up model.ProfileUpdate) (model.Profile, error) {
	f.hit("update", token)
	f.mu.Lock()
	f.LastUpdate = up
	f.mu.Unlock()
	if f.UpdateErr != nil {
		return model.Profile{}, f.UpdateErr
	}
	return up.Apply(f.Profile), nil
}

func (f *API) UploadProfileImage(_ context.Context, token, filename string, r io.Reader) (api.ImageUpload, error) {
	f.hit("upload", token)
	b, _ := io.ReadAll(r)
	f.mu.Lock()
	f.LastUpload = b
	f.mu.Unlock()
	if f.UploadErr != nil {
		return api.ImageUpload{}, f.UploadErr
	}
	return api.ImageUpload{Msg: "uploaded", ImageURL: "/static/" + filename}, nil
}

func (f *API) RequestMatch(_ context.Context, token string, in model.MatchInput) (model.MatchRequest, error) {
	f.hit("match", token)
	f.mu.Lock()
	f.LastMatch = in
	hold := f.Hold
	err := f.MatchErr
	if e, ok := f.MatchErrs[in.MentorEmail]; ok {
		err = e
	}
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}
	if err != nil {
		return model.MatchRequest{}, err
	}
	return model.MatchRequest{MentorEmail: in.MentorEmail, Status: model.MatchPending, Message: in.Message}, nil
}

func (f *API) ListMatchRequests(_ context.Context, token string) ([]model.MatchRequest, error) {
	f.hit("requests", token)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]model.MatchRequest(nil), f.Requests...), nil
}

func (f *API) RespondMatch(_ context.Context, token string, in model.RespondInput) (model.MatchRequest, error) {
	f.hit("respond", token)
	f.mu.Lock()
	f.LastRespond = in
	f.mu.Unlock()
	if f.RespondErr != nil {
		return model.MatchRequest{}, f.RespondErr
	}
	st := model.MatchRejected
	if in.Accept {
		st = model.MatchAccepted
	}
	return model.MatchRequest{MenteeEmail: in.MenteeEmail, Status: st}, nil
}

func (f *API) CancelMatch(_ context.Context, token string) error {
	f.hit("cancel", token)
	return f.CancelErr
}

func (f *API) ProfileImageURL(email string) string {
	return "http://test/api/profile/image/" + url.PathEscape(email)
}

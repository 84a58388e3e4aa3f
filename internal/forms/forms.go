// Package forms defines the concrete bindings of the mentorlink client: their validation
// rules, the single API call each one makes, and the texts shown for each outcome.
package forms

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mentorlink-cli/internal/api"
	"mentorlink-cli/internal/binding"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/notify"
	"mentorlink-cli/internal/session"
)

// API is the remote service as seen by the forms. *api.Client implements it.
type API interface {
	Register(ctx context.Context, in model.SignupInput) error
	Authenticate(ctx context.Context, email, password string) (model.Token, error)
	ListMentors(ctx context.Context, q api.MentorQuery) ([]model.Mentor, error)
	FetchProfile(ctx context.Context, token string) (model.Profile, error)
	UpdateProfile(ctx context.Context, token string, up model.ProfileUpdate) (model.Profile, error)
	UploadProfileImage(ctx context.Context, token, filename string, r io.Reader) (api.ImageUpload, error)
	RequestMatch(ctx context.Context, token string, in model.MatchInput) (model.MatchRequest, error)
	ListMatchRequests(ctx context.Context, token string) ([]model.MatchRequest, error)
	RespondMatch(ctx context.Context, token string, in model.RespondInput) (model.MatchRequest, error)
	CancelMatch(ctx context.Context, token string) error
	ProfileImageURL(email string) string
}

var _ API = (*api.Client)(nil)

const (
	MsgInvalidEmail    = "이메일 형식이 올바르지 않습니다."
	MsgPasswordMissing = "비밀번호를 입력하세요."
	MsgPasswordShort   = "비밀번호는 6자 이상이어야 합니다."
	MsgNameMissing     = "이름을 입력하세요."
	MsgRoleInvalid     = "역할을 선택하세요."
	MsgLoginRequired   = "로그인이 필요합니다."

	MsgDirectoryMatchSent = "매칭 요청이 전송되었습니다."
	MsgLoggedOut          = "로그아웃되었습니다."
)

// Outcome texts, shared by the TUI bindings and the CLI commands.
const (
	MsgLoginDone          = "로그인 성공!"
	MsgLoginFailed        = "로그인 실패"
	MsgSignupDone         = "회원가입 성공!"
	MsgSignupNotice       = "회원가입이 완료되었습니다."
	MsgSignupFailed       = "회원가입 실패"
	MsgProfileFetchFailed = "프로필 조회 실패"
	MsgProfileSaved       = "프로필 수정 성공!"
	MsgProfileSaveFailed  = "프로필 수정 실패"
	MsgMentorsFailed      = "멘토 리스트 조회 실패"
	MsgMatchSent          = "매칭 요청 성공!"
	MsgMatchFailed        = "매칭 요청 실패"
	MsgMatchesFailed      = "매칭 요청 목록 조회 실패"
	MsgMatchAccepted      = "요청을 수락했습니다."
	MsgMatchRejected      = "요청을 거절했습니다."
	MsgRespondFailed      = "요청 처리 실패"
	MsgMatchCanceled      = "매칭 요청이 취소되었습니다."
	MsgCancelFailed       = "매칭 요청 취소 실패"
	MsgImageUploaded      = "프로필 이미지 업로드 성공"
	MsgImageUploadFailed  = "이미지 업로드 실패"
	// MsgProfileMissing blocks an upload until the profile, and so the image owner, is known.
	MsgProfileMissing = "프로필을 먼저 불러오세요."
)

const MinPasswordLen = 6

type None struct{}

func ValidateLogin(in model.LoginInput) error {
	if !strings.Contains(in.Email, "@") {
		return binding.Invalid(MsgInvalidEmail)
	}
	if in.Password == "" {
		return binding.Invalid(MsgPasswordMissing)
	}
	return nil
}

func ValidateSignup(in model.SignupInput) error {
	if !strings.Contains(in.Email, "@") {
		return binding.Invalid(MsgInvalidEmail)
	}
	if len([]rune(in.Password)) < MinPasswordLen {
		return binding.Invalid(MsgPasswordShort)
	}
	if strings.TrimSpace(in.Name) == "" {
		return binding.Invalid(MsgNameMissing)
	}
	if !in.Role.Valid() {
		return binding.Invalid(MsgRoleInvalid)
	}
	return nil
}

func ValidateProfile(up model.ProfileUpdate) error {
	if strings.TrimSpace(up.Name) == "" {
		return binding.Invalid(MsgNameMissing)
	}
	if !up.Role.Valid() {
		return binding.Invalid(MsgRoleInvalid)
	}
	return nil
}

func ValidateMatchTarget(in model.MatchInput) error {
	if !strings.Contains(in.MentorEmail, "@") {
		return binding.Invalid(MsgInvalidEmail)
	}
	return nil
}

func NewSignupDraft() model.SignupInput {
	return model.SignupInput{Role: model.RoleMentee}
}

func Login(c API, h *session.Holder) binding.Binding[model.Token, model.LoginInput] {
	return binding.New(binding.Form[model.Token, model.LoginInput]{
		Name:     "login",
		Validate: ValidateLogin,
		Call: func(ctx context.Context, in model.LoginInput) (model.Token, error) {
			return c.Authenticate(ctx, in.Email, in.Password)
		},
		OnSuccess:   func(tok model.Token) { h.SetCredential(tok.AccessToken) },
		SuccessText: MsgLoginDone,
		FailureText: MsgLoginFailed,
	}, model.LoginInput{})
}

// Signup's data is the registered email.
func Signup(c API) binding.Binding[string, model.SignupInput] {
	return binding.New(binding.Form[string, model.SignupInput]{
		Name:     "signup",
		Validate: ValidateSignup,
		Call: func(ctx context.Context, in model.SignupInput) (string, error) {
			if err := c.Register(ctx, in); err != nil {
				return "", err
			}
			return in.Email, nil
		},
		NextDraft:     func(model.SignupInput) model.SignupInput { return NewSignupDraft() },
		SuccessText:   MsgSignupDone,
		SuccessNotice: MsgSignupNotice,
		FailureText:   MsgSignupFailed,
	}, NewSignupDraft())
}

func FetchProfile(c API, h *session.Holder) binding.Binding[model.Profile, None] {
	return binding.New(binding.Form[model.Profile, None]{
		Name: "fetch profile",
		Call: func(ctx context.Context, _ None) (model.Profile, error) {
			return c.FetchProfile(ctx, h.Token())
		},
		FailureText: MsgProfileFetchFailed,
	}, None{})
}

// EditProfile merges the submitted fields into the existing profile on success.
func EditProfile(c API, h *session.Holder) binding.Binding[model.Profile, model.ProfileUpdate] {
	return binding.New(binding.Form[model.Profile, model.ProfileUpdate]{
		Name:     "edit profile",
		Validate: ValidateProfile,
		Call: func(ctx context.Context, up model.ProfileUpdate) (model.Profile, error) {
			return c.UpdateProfile(ctx, h.Token(), up)
		},
		Merge: func(prev model.Profile, submitted model.ProfileUpdate, _ model.Profile) model.Profile {
			return submitted.Apply(prev)
		},
		SuccessText: MsgProfileSaved,
		FailureText: MsgProfileSaveFailed,
	}, model.ProfileUpdate{Role: model.RoleMentee})
}

func FetchMentors(c API) binding.Binding[[]model.Mentor, None] {
	return binding.New(binding.Form[[]model.Mentor, None]{
		Name: "fetch mentors",
		Call: func(ctx context.Context, _ None) ([]model.Mentor, error) {
			return c.ListMentors(ctx, api.MentorQuery{})
		},
		FailureText: MsgMentorsFailed,
	}, None{})
}

func SubmitMatch(c API, h *session.Holder) binding.Binding[model.MatchRequest, model.MatchInput] {
	return binding.New(binding.Form[model.MatchRequest, model.MatchInput]{
		Name:     "submit match",
		Validate: ValidateMatchTarget,
		Call: func(ctx context.Context, in model.MatchInput) (model.MatchRequest, error) {
			in.MentorEmail = strings.TrimSpace(in.MentorEmail)
			return c.RequestMatch(ctx, h.Token(), in)
		},
		NextDraft:   func(model.MatchInput) model.MatchInput { return model.MatchInput{} },
		SuccessText: MsgMatchSent,
		FailureText: MsgMatchFailed,
	}, model.MatchInput{})
}

func FetchMatches(c API, h *session.Holder) binding.Binding[[]model.MatchRequest, None] {
	return binding.New(binding.Form[[]model.MatchRequest, None]{
		Name: "fetch matches",
		Call: func(ctx context.Context, _ None) ([]model.MatchRequest, error) {
			return c.ListMatchRequests(ctx, h.Token())
		},
		FailureText: MsgMatchesFailed,
	}, None{})
}

func RespondMatch(c API, h *session.Holder) binding.Binding[model.MatchRequest, model.RespondInput] {
	return binding.New(binding.Form[model.MatchRequest, model.RespondInput]{
		Name: "respond match",
		Validate: func(in model.RespondInput) error {
			if !strings.Contains(in.MenteeEmail, "@") {
				return binding.Invalid(MsgInvalidEmail)
			}
			return nil
		},
		Call: func(ctx context.Context, in model.RespondInput) (model.MatchRequest, error) {
			return c.RespondMatch(ctx, h.Token(), in)
		},
		SuccessTextFunc: func(r model.MatchRequest) string {
			if r.Status == model.MatchAccepted {
				return MsgMatchAccepted
			}
			return MsgMatchRejected
		},
		FailureText: MsgRespondFailed,
	}, model.RespondInput{})
}

func CancelMatch(c API, h *session.Holder) binding.Binding[None, None] {
	return binding.New(binding.Form[None, None]{
		Name: "cancel match",
		Call: func(ctx context.Context, _ None) (None, error) {
			return None{}, c.CancelMatch(ctx, h.Token())
		},
		SuccessText: MsgMatchCanceled,
		FailureText: MsgCancelFailed,
	}, None{})
}

// ImageDraft selects a local file to upload as the profile image of Email.
type ImageDraft struct {
	Path  string
	Email string
}

// ImageResult carries the cache-busted URL of the freshly uploaded image.
type ImageResult struct {
	URL string
}

func UploadImage(c API, h *session.Holder, now func() time.Time) binding.Binding[ImageResult, ImageDraft] {
	if now == nil {
		now = time.Now
	}
	return binding.New(binding.Form[ImageResult, ImageDraft]{
		Name: "upload image",
		Validate: func(d ImageDraft) error {
			if strings.TrimSpace(d.Email) == "" {
				return binding.Invalid(MsgProfileMissing)
			}
			f, err := InspectImage(d.Path)
			if err != nil {
				return err
			}
			return ValidateImage(f)
		},
		Call: func(ctx context.Context, d ImageDraft) (ImageResult, error) {
			fh, err := os.Open(d.Path)
			if err != nil {
				// The file went away after validation; this is a local problem, not the network.
				return ImageResult{}, binding.Invalid(MsgImageRead)
			}
			defer fh.Close()
			if _, err := c.UploadProfileImage(ctx, h.Token(), filepath.Base(d.Path), fh); err != nil {
				return ImageResult{}, err
			}
			return ImageResult{URL: api.CacheBust(c.ProfileImageURL(d.Email), now())}, nil
		},
		NextDraft:   func(d ImageDraft) ImageDraft { return ImageDraft{Email: d.Email} },
		SuccessText: MsgImageUploaded,
		FailureText: MsgImageUploadFailed,
	}, ImageDraft{})
}

// DirectoryMatchNotice is the notification for a per-entry match request from the directory.
func DirectoryMatchNotice(err error) notify.Notification {
	if err != nil {
		return notify.Notification{Text: binding.Describe(err, MsgMatchFailed), Severity: notify.Error}
	}
	return notify.Notification{Text: MsgDirectoryMatchSent, Severity: notify.Success}
}

package tui

import (
	"errors"
	"testing"

	"mentorlink-cli/internal/forms/formstest"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/notify"
)

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var got string
	prev := writeClipboard
	writeClipboard = func(s string) error {
		got = s
		return err
	}
	t.Cleanup(func() { writeClipboard = prev })
	return &got
}

func TestCopy_SelectedMentorEmail(t *testing.T) {
	got := stubClipboard(t, nil)
	f := formstest.New()
	f.Mentors = []model.Mentor{{Email: "x@y.com", Name: "멘토"}}
	m := started(t, f)

	m = press(t, m, "y")

	if *got != "x@y.com" {
		t.Fatalf("copied %q", *got)
	}
	mustNotice(t, m, notify.Info, "이메일 복사됨")
}

func TestCopy_ProfileImageURL(t *testing.T) {
	got := stubClipboard(t, nil)
	f := formstest.New()
	f.Profile = model.Profile{Email: "me@test.com", Name: "나", Role: model.RoleMentee}
	m := loggedIn(t, f)

	m = press(t, m, "2", "y")

	if *got != "http://test/api/profile/image/me@test.com" {
		t.Fatalf("copied %q", *got)
	}
}

func TestCopy_Failure(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard utility"))
	f := formstest.New()
	f.Mentors = []model.Mentor{{Email: "x@y.com", Name: "멘토"}}
	m := started(t, f)

	m = press(t, m, "y")

	mustNotice(t, m, notify.Error, "클립보드 복사 실패: no clipboard utility")
}

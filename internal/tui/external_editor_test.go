package tui

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mentorlink-cli/internal/forms/formstest"
	"mentorlink-cli/internal/model"
	"mentorlink-cli/internal/notify"
)

func TestSplitCommandLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"vim", []string{"vim"}},
		{"code --wait", []string{"code", "--wait"}},
		{"vim -u 'foo bar'", []string{"vim", "-u", "foo bar"}},
		{`vim -c "set ft=markdown"`, []string{"vim", "-c", "set ft=markdown"}},
		{`vim\ -u\ foo`, []string{"vim -u foo"}},
		{`ed ''`, []string{"ed", ""}},
	}

	for _, tt := range tests {
		if got := splitCommandLine(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitCommandLine(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEditorArgv_PrefersVisual(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "nano")
	if got := editorArgv(); !reflect.DeepEqual(got, []string{"code", "--wait"}) {
		t.Fatalf("got %q", got)
	}
	t.Setenv("VISUAL", "")
	if got := editorArgv(); !reflect.DeepEqual(got, []string{"nano"}) {
		t.Fatalf("got %q", got)
	}
}

func TestIntroEdited_LoadsTextAndSaves(t *testing.T) {
	f := formstest.New()
	f.Profile = model.Profile{Email: "me@test.com", Name: "나", Role: model.RoleMentor}
	m := loggedIn(t, f)
	m = press(t, m, "2")

	path := filepath.Join(t.TempDir(), "intro.md")
	if err := os.WriteFile(path, []byte("# 안녕하세요\n\nGo 멘토입니다.\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m.profile.editorPath = path

	m, cmd := send(t, m, introEditedMsg{path: path})
	m = settle(t, m, cmd)

	if m.profile.intro != "# 안녕하세요\n\nGo 멘토입니다." {
		t.Fatalf("unexpected intro %q", m.profile.intro)
	}
	if !m.profile.fields.Focused() {
		t.Fatalf("expected edit mode after editing intro")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file removed, stat err=%v", err)
	}

	m = press(t, m, "enter")
	if f.LastUpdate.Intro != "# 안녕하세요\n\nGo 멘토입니다." {
		t.Fatalf("unexpected update %+v", f.LastUpdate)
	}
	mustNotice(t, m, notify.Success, "프로필 수정 성공!")
}

func TestIntroEdited_EditorFailure(t *testing.T) {
	f := formstest.New()
	m := started(t, f)
	path := filepath.Join(t.TempDir(), "intro.md")
	m.profile.editorPath = path

	m, _ = send(t, m, introEditedMsg{path: path, err: errors.New("exit status 1")})

	mustNotice(t, m, notify.Error, "편집기 실행 실패: exit status 1")
}

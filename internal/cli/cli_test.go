package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mentorlink-cli/internal/devserver"
	"mentorlink-cli/internal/forms"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.ExecuteContext(context.Background())
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// startServer runs a seeded dev server and returns its API base URL.
func startServer(t *testing.T) string {
	t.Helper()
	t.Setenv("MENTORLINK_CONFIG_DIR", t.TempDir())
	t.Setenv("MENTORLINK_TOKEN", "")

	dir := t.TempDir()
	s, err := devserver.New(context.Background(), devserver.Options{
		DBPath:       filepath.Join(dir, "cli.db"),
		ImageDir:     filepath.Join(dir, "images"),
		JWTSecret:    "cli-test",
		PasswordCost: 4,
		Seed:         true,
	})
	if err != nil {
		t.Fatalf("start dev server: %v", err)
	}
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		ts.Close()
		_ = s.Close()
	})
	return ts.URL + "/api"
}

func mustData(t *testing.T, args ...string) any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: mentorlink %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"]
	if !ok {
		t.Fatalf("expected data key; got %v", env)
	}
	return data
}

func login(t *testing.T, base, email, password string) string {
	t.Helper()
	data := mustData(t, "--api-url", base, "login", "--email", email, "--password", password)
	tok, _ := data.(map[string]any)["access_token"].(string)
	if tok == "" {
		t.Fatalf("expected access_token, got %v", data)
	}
	return tok
}

func TestLogin_RejectsMalformedEmailLocally(t *testing.T) {
	t.Setenv("MENTORLINK_CONFIG_DIR", t.TempDir())
	// Nothing listens here; a request would fail with a network error instead.
	_, _, err := runCLI(t, []string{"--api-url", "http://127.0.0.1:1/api", "login", "--email", "nope", "--password", "x"})
	if err == nil || err.Error() != forms.MsgInvalidEmail {
		t.Fatalf("expected %q, got %v", forms.MsgInvalidEmail, err)
	}
}

func TestSignupThenLogin(t *testing.T) {
	base := startServer(t)

	data := mustData(t, "--api-url", base, "signup", "--email", "new@test.com", "--password", "secret1", "--name", "새 멘토", "--role", "mentor")
	if got := data.(map[string]any)["email"]; got != "new@test.com" {
		t.Fatalf("unexpected signup output %v", data)
	}
	login(t, base, "new@test.com", "secret1")

	_, _, err := runCLI(t, []string{"--api-url", base, "signup", "--email", "new@test.com", "--password", "secret1", "--name", "again"})
	if err == nil {
		t.Fatalf("expected duplicate signup to fail")
	}
}

func TestMentorsList_FilterAndShow(t *testing.T) {
	base := startServer(t)

	data := mustData(t, "--api-url", base, "mentors", "list", "--filter", "PYTHON")
	xs, _ := data.([]any)
	if len(xs) != 1 || xs[0].(map[string]any)["email"] != "mentor@test.com" {
		t.Fatalf("expected the seeded mentor, got %v", data)
	}

	data = mustData(t, "--api-url", base, "mentors", "list", "--filter", "rust")
	if xs, _ := data.([]any); len(xs) != 0 {
		t.Fatalf("expected no match, got %v", data)
	}

	data = mustData(t, "--api-url", base, "mentors", "show", "MENTOR@test.com")
	if data.(map[string]any)["name"] != "테스트멘토" {
		t.Fatalf("unexpected mentor %v", data)
	}

	_, _, err := runCLI(t, []string{"--api-url", base, "mentors", "show", "ghost@test.com"})
	var nf notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMentorsList_TextFormat(t *testing.T) {
	base := startServer(t)

	stdout, stderr, err := runCLI(t, []string{"--api-url", base, "--format", "text", "mentors", "list"})
	if err != nil {
		t.Fatalf("mentors list: %v\n%s", err, stderr)
	}
	out := string(stdout)
	if !strings.Contains(out, "EMAIL") || !strings.Contains(out, "mentor@test.com") {
		t.Fatalf("expected a table with the mentor, got:\n%s", out)
	}
}

func TestProfile_RequiresToken(t *testing.T) {
	base := startServer(t)

	_, _, err := runCLI(t, []string{"--api-url", base, "profile", "show"})
	if !errors.Is(err, errNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

func TestProfile_EditKeepsUnsetFields(t *testing.T) {
	base := startServer(t)
	tok := login(t, base, "mentor@test.com", "mentor1234")

	data := mustData(t, "--api-url", base, "--token", tok, "profile", "edit", "--intro", "10년차 백엔드")
	p := data.(map[string]any)
	if p["intro"] != "10년차 백엔드" || p["name"] != "테스트멘토" || p["role"] != "mentor" {
		t.Fatalf("unexpected profile %v", p)
	}

	data = mustData(t, "--api-url", base, "--token", tok, "profile", "show")
	if data.(map[string]any)["intro"] != "10년차 백엔드" {
		t.Fatalf("edit not persisted: %v", data)
	}
}

func TestProfile_ImageTooLargeIsRejectedLocally(t *testing.T) {
	base := startServer(t)
	tok := login(t, base, "mentee@test.com", "mentee1234")

	p := filepath.Join(t.TempDir(), "big.png")
	data := make([]byte, 2<<20)
	copy(data, "\x89PNG\r\n\x1a\n")
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, _, err := runCLI(t, []string{"--api-url", base, "--token", tok, "profile", "image", p})
	if err == nil || err.Error() != forms.MsgImageSize {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestMatchLifecycle(t *testing.T) {
	base := startServer(t)
	mentee := login(t, base, "mentee@test.com", "mentee1234")
	mentor := login(t, base, "mentor@test.com", "mentor1234")

	data := mustData(t, "--api-url", base, "--token", mentee, "match", "request", "mentor@test.com", "--message", "안녕하세요")
	if data.(map[string]any)["status"] != "pending" {
		t.Fatalf("unexpected request %v", data)
	}

	_, _, err := runCLI(t, []string{"--api-url", base, "--token", mentee, "match", "request", "mentor@test.com"})
	if err == nil {
		t.Fatalf("expected a second request to be rejected")
	}

	data = mustData(t, "--api-url", base, "--token", mentor, "match", "list")
	if xs, _ := data.([]any); len(xs) != 1 {
		t.Fatalf("expected one received request, got %v", data)
	}

	data = mustData(t, "--api-url", base, "--token", mentor, "match", "respond", "mentee@test.com", "--accept")
	if data.(map[string]any)["status"] != "accepted" {
		t.Fatalf("unexpected respond output %v", data)
	}

	_, _, err = runCLI(t, []string{"--api-url", base, "--token", mentee, "match", "cancel"})
	if err == nil {
		t.Fatalf("expected cancel of a processed request to fail")
	}
}

func TestMatchRespond_NeedsExactlyOneDecision(t *testing.T) {
	base := startServer(t)

	_, _, err := runCLI(t, []string{"--api-url", base, "--token", "x", "match", "respond", "m@test.com"})
	if err == nil || !strings.Contains(err.Error(), "--accept") {
		t.Fatalf("expected decision error, got %v", err)
	}
}

func TestFailureWithoutDetailUsesFormText(t *testing.T) {
	t.Setenv("MENTORLINK_CONFIG_DIR", t.TempDir())
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)
	base := ts.URL + "/api"

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"mentors", "list"}, forms.MsgMentorsFailed},
		{[]string{"login", "--email", "a@test.com", "--password", "x"}, forms.MsgLoginFailed},
		{[]string{"--token", "tok", "profile", "show"}, forms.MsgProfileFetchFailed},
		{[]string{"--token", "tok", "match", "list"}, forms.MsgMatchesFailed},
		{[]string{"--token", "tok", "match", "cancel"}, forms.MsgCancelFailed},
	}
	for _, tc := range cases {
		_, _, err := runCLI(t, append([]string{"--api-url", base}, tc.args...))
		if err == nil || err.Error() != tc.want {
			t.Fatalf("mentorlink %v: expected %q, got %v", tc.args, tc.want, err)
		}
	}
}

func TestProfile_ImageUploadPrintsOwnURL(t *testing.T) {
	base := startServer(t)
	tok := login(t, base, "mentee@test.com", "mentee1234")

	p := filepath.Join(t.TempDir(), "me.png")
	data := make([]byte, 1024)
	copy(data, "\x89PNG\r\n\x1a\n")
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	data2 := mustData(t, "--api-url", base, "--token", tok, "profile", "image", p)
	u, _ := data2.(map[string]any)["url"].(string)
	if !strings.Contains(u, "/profile/image/mentee@test.com?t=") {
		t.Fatalf("unexpected url %q", u)
	}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorlink-cli/internal/devserver"
	"mentorlink-cli/internal/model"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	dir := t.TempDir()
	s, err := devserver.New(context.Background(), devserver.Options{
		DBPath:       filepath.Join(dir, "api.db"),
		ImageDir:     filepath.Join(dir, "images"),
		JWTSecret:    "client-test",
		PasswordCost: 4,
		Seed:         true,
	})
	require.NoError(t, err)
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		ts.Close()
		_ = s.Close()
	})
	return New(Options{BaseURL: ts.URL + "/api/"})
}

func TestClient_AuthenticateAndProfile(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	tok, err := c.Authenticate(ctx, "mentee@test.com", "mentee1234")
	require.NoError(t, err)

	p, err := c.FetchProfile(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "테스트멘티", p.Name)
	assert.Equal(t, model.RoleMentee, p.Role)

	up := model.UpdateFromProfile(p)
	up.Intro = "배우고 싶어요"
	got, err := c.UpdateProfile(ctx, tok.AccessToken, up)
	require.NoError(t, err)
	assert.Equal(t, "배우고 싶어요", got.Intro)
}

func TestClient_RejectedCarriesDetail(t *testing.T) {
	c := newClient(t)
	_, err := c.Authenticate(context.Background(), "mentee@test.com", "wrong")

	var re *RejectedError
	require.True(t, errors.As(err, &re), "got %T", err)
	assert.Equal(t, http.StatusBadRequest, re.Status)
	assert.Equal(t, "이메일 또는 비밀번호가 올바르지 않습니다.", re.Detail)
}

func TestClient_ValidationDetailList(t *testing.T) {
	c := newClient(t)
	err := c.Register(context.Background(), model.SignupInput{Email: "bad", Password: "123456", Name: "n", Role: model.RoleMentee})

	var re *RejectedError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusUnprocessableEntity, re.Status)
	assert.NotEmpty(t, re.Detail)
}

func TestClient_MatchFlow(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	mentee, err := c.Authenticate(ctx, "mentee@test.com", "mentee1234")
	require.NoError(t, err)
	mentor, err := c.Authenticate(ctx, "mentor@test.com", "mentor1234")
	require.NoError(t, err)

	ms, err := c.ListMentors(ctx, MentorQuery{Query: "python", Sort: "name"})
	require.NoError(t, err)
	require.Len(t, ms, 1)

	_, err = c.RequestMatch(ctx, mentee.AccessToken, model.MatchInput{MentorEmail: ms[0].Email, Message: "hi"})
	require.NoError(t, err)

	reqs, err := c.ListMatchRequests(ctx, mentor.AccessToken)
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	r, err := c.RespondMatch(ctx, mentor.AccessToken, model.RespondInput{MenteeEmail: "mentee@test.com", Accept: false})
	require.NoError(t, err)
	assert.Equal(t, model.MatchRejected, r.Status)

	err = c.CancelMatch(ctx, mentee.AccessToken)
	var re *RejectedError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusNotFound, re.Status)
}

func TestClient_UploadImage(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	tok, err := c.Authenticate(ctx, "mentor@test.com", "mentor1234")
	require.NoError(t, err)

	out, err := c.UploadProfileImage(ctx, tok.AccessToken, "me.png", strings.NewReader("\x89PNG\r\n\x1a\nrest"))
	require.NoError(t, err)
	assert.Equal(t, "/profile/image/mentor@test.com", out.ImageURL)
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c := New(Options{BaseURL: base, Timeout: time.Second})
	_, err := c.ListMentors(context.Background(), MentorQuery{})
	var te *TransportError
	require.True(t, errors.As(err, &te), "got %T", err)
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer ts.Close()

	_, err := New(Options{BaseURL: ts.URL}).ListMentors(context.Background(), MentorQuery{})
	var me *MalformedError
	require.True(t, errors.As(err, &me), "got %T", err)
}

func TestClient_UndecodableRejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(Options{BaseURL: ts.URL}).FetchProfile(context.Background(), "t")
	var re *RejectedError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadGateway, re.Status)
	assert.Empty(t, re.Detail)
}

func TestClient_MissingAccessToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer ts.Close()

	_, err := New(Options{BaseURL: ts.URL}).Authenticate(context.Background(), "a@b.c", "x")
	var me *MalformedError
	require.True(t, errors.As(err, &me))
}

func TestParseDetail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"detail":"no"}`, "no"},
		{`{"detail":[{"msg":"first"},{"msg":"second"}]}`, "first"},
		{`{"detail":{"x":1}}`, ""},
		{`not json`, ""},
		{`{}`, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, parseDetail([]byte(tc.in)), tc.in)
	}
}

func TestCacheBustAndImageURL(t *testing.T) {
	c := New(Options{BaseURL: "http://h/api"})
	u := c.ProfileImageURL("m@test.com")
	assert.Equal(t, "http://h/api/profile/image/m@test.com", u)
	assert.Equal(t, u+"?t=1000", CacheBust(u, time.UnixMilli(1000)))
	assert.Equal(t, "http://h/x?a=1&t=5", CacheBust("http://h/x?a=1", time.UnixMilli(5)))
}

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"mentorlink-cli/internal/model"
)

func (c *Client) Register(ctx context.Context, in model.SignupInput) error {
	body, err := jsonBody("register", in)
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		op:          "register",
		method:      http.MethodPost,
		path:        "/signup",
		body:        body,
		contentType: "application/json",
	}, nil)
}

// Authenticate exchanges credentials for a bearer token (OAuth2 password form).
func (c *Client) Authenticate(ctx context.Context, email, password string) (model.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok model.Token
	err := c.do(ctx, request{
		op:          "authenticate",
		method:      http.MethodPost,
		path:        "/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &tok)
	if err != nil {
		return model.Token{}, err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return model.Token{}, &MalformedError{Op: "authenticate", Err: errors.New("missing access_token")}
	}
	return tok, nil
}

type MentorQuery struct {
	Query string
	Sort  string
}

func (c *Client) ListMentors(ctx context.Context, q MentorQuery) ([]model.Mentor, error) {
	vals := url.Values{}
	if s := strings.TrimSpace(q.Query); s != "" {
		vals.Set("q", s)
	}
	if s := strings.TrimSpace(q.Sort); s != "" {
		vals.Set("sort", s)
	}
	var out []model.Mentor
	if err := c.do(ctx, request{op: "list mentors", method: http.MethodGet, path: "/mentors", query: vals}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchProfile(ctx context.Context, token string) (model.Profile, error) {
	var p model.Profile
	err := c.do(ctx, request{op: "fetch profile", method: http.MethodGet, path: "/profile", token: token}, &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, up model.ProfileUpdate) (model.Profile, error) {
	body, err := jsonBody("update profile", up)
	if err != nil {
		return model.Profile{}, err
	}
	var p model.Profile
	err = c.do(ctx, request{
		op:          "update profile",
		method:      http.MethodPut,
		path:        "/profile",
		body:        body,
		contentType: "application/json",
		token:       token,
	}, &p)
	return p, err
}

type ImageUpload struct {
	Msg      string `json:"msg"`
	ImageURL string `json:"image_url"`
}

func (c *Client) UploadProfileImage(ctx context.Context, token, filename string, r io.Reader) (ImageUpload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return ImageUpload{}, &TransportError{Op: "upload image", Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return ImageUpload{}, &TransportError{Op: "upload image", Err: err}
	}
	if err := mw.Close(); err != nil {
		return ImageUpload{}, &TransportError{Op: "upload image", Err: err}
	}

	var out ImageUpload
	err = c.do(ctx, request{
		op:          "upload image",
		method:      http.MethodPost,
		path:        "/profile/image",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		token:       token,
	}, &out)
	return out, err
}

func (c *Client) RequestMatch(ctx context.Context, token string, in model.MatchInput) (model.MatchRequest, error) {
	body, err := jsonBody("request match", in)
	if err != nil {
		return model.MatchRequest{}, err
	}
	var out model.MatchRequest
	err = c.do(ctx, request{
		op:          "request match",
		method:      http.MethodPost,
		path:        "/match",
		body:        body,
		contentType: "application/json",
		token:       token,
	}, &out)
	return out, err
}

func (c *Client) ListMatchRequests(ctx context.Context, token string) ([]model.MatchRequest, error) {
	var out []model.MatchRequest
	if err := c.do(ctx, request{op: "list match requests", method: http.MethodGet, path: "/match/requests", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RespondMatch accepts or rejects a pending request addressed to the calling mentor.
func (c *Client) RespondMatch(ctx context.Context, token string, in model.RespondInput) (model.MatchRequest, error) {
	body, err := jsonBody("respond match", in.Accept)
	if err != nil {
		return model.MatchRequest{}, err
	}
	var out model.MatchRequest
	err = c.do(ctx, request{
		op:          "respond match",
		method:      http.MethodPost,
		path:        "/match/respond",
		query:       url.Values{"mentee_email": {in.MenteeEmail}},
		body:        body,
		contentType: "application/json",
		token:       token,
	}, &out)
	return out, err
}

func (c *Client) CancelMatch(ctx context.Context, token string) error {
	return c.do(ctx, request{op: "cancel match", method: http.MethodDelete, path: "/match/cancel", token: token}, nil)
}

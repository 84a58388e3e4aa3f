// Package api is the HTTP client for the mentorlink service. Every call reports failure as one
// of TransportError, RejectedError or MalformedError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "http://localhost:8000/api"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

type Options struct {
	BaseURL string
	// Timeout of zero means requests always run to completion.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{baseURL: base, http: hc, log: log}
}

func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	token       string
}

// do performs one round trip. When out is non-nil a 2xx body must decode into it.
func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed", zap.String("op", r.op), zap.Error(err))
		return &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	c.log.Debug("api request",
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RejectedError{Op: r.op, Status: resp.StatusCode, Detail: parseDetail(b)}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return &MalformedError{Op: r.op, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &MalformedError{Op: r.op, Err: err}
	}
	return nil
}

// parseDetail extracts {"detail": "..."} or the first {"detail": [{"msg": "..."}]} entry.
func parseDetail(b []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(b, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0].Msg)
	}
	return ""
}

func jsonBody(op string, v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return bytes.NewReader(b), nil
}

// ProfileImageURL is where the image asset for a user lives.
func (c *Client) ProfileImageURL(email string) string {
	return c.baseURL + "/profile/image/" + url.PathEscape(strings.TrimSpace(email))
}

// CacheBust appends a uniqueness token so clients reload an image that changed in place.
func CacheBust(rawURL string, at time.Time) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(at.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

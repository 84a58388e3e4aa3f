// Package devserver is a self-contained implementation of the mentorlink HTTP API backed by
// sqlite. It is used for local development and as the fixture for client tests.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mentorlink-cli/internal/model"
)

const maxImageBytes = 1 << 20

type Options struct {
	DBPath       string
	ImageDir     string
	JWTSecret    string
	TokenTTL     time.Duration
	PasswordCost int
	// Seed creates mentor@test.com and mentee@test.com when missing.
	Seed   bool
	Logger *zap.Logger
	Now    func() time.Time
}

type Server struct {
	store    *store
	tokens   tokens
	imageDir string
	cost     int
	log      *zap.Logger
	router   chi.Router
}

func New(ctx context.Context, opts Options) (*Server, error) {
	if strings.TrimSpace(opts.JWTSecret) == "" {
		return nil, errors.New("devserver: jwt secret is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.PasswordCost == 0 {
		opts.PasswordCost = 10
	}
	if opts.ImageDir == "" {
		opts.ImageDir = "images"
	}
	if err := os.MkdirAll(opts.ImageDir, 0o755); err != nil {
		return nil, fmt.Errorf("devserver: image dir: %w", err)
	}

	st, err := openStore(ctx, opts.DBPath, opts.Now)
	if err != nil {
		return nil, fmt.Errorf("devserver: open store: %w", err)
	}
	s := &Server{
		store:    st,
		tokens:   tokens{secret: []byte(opts.JWTSecret), ttl: opts.TokenTTL, now: opts.Now},
		imageDir: opts.ImageDir,
		cost:     opts.PasswordCost,
		log:      opts.Logger,
	}
	if opts.Seed {
		if err := s.seed(ctx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("devserver: seed: %w", err)
		}
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) Close() error { return s.store.Close() }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("dev server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Get("/mentors", s.handleMentors)
		r.Get("/profile/image/{email}", s.handleProfileImage)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)
			r.Get("/profile", s.handleProfile)
			r.Put("/profile", s.handleUpdateProfile)
			r.Post("/profile/image", s.handleUploadImage)
			r.Post("/match", s.handleRequestMatch)
			r.Get("/match/requests", s.handleMatchRequests)
			r.Post("/match/respond", s.handleRespondMatch)
			r.Delete("/match/cancel", s.handleCancelMatch)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeInvalid mirrors the validation error shape: a list of {msg} entries.
func writeInvalid(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]string{{"msg": msg}},
	})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error("handler failed", zap.String("op", op), zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in model.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeInvalid(w, "invalid request body")
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case !validEmail(in.Email):
		writeInvalid(w, "value is not a valid email address")
		return
	case in.Password == "":
		writeInvalid(w, "password is required")
		return
	case strings.TrimSpace(in.Name) == "":
		writeInvalid(w, "name is required")
		return
	case !in.Role.Valid():
		writeInvalid(w, "role must be mentor or mentee")
		return
	}

	ctx := r.Context()
	if _, err := s.store.userByEmail(ctx, in.Email); err == nil {
		writeDetail(w, http.StatusBadRequest, "이미 가입된 이메일입니다.")
		return
	} else if !errors.Is(err, errNotFound) {
		s.internalError(w, "signup", err)
		return
	}
	hash, err := hashPassword(in.Password, s.cost)
	if err != nil {
		s.internalError(w, "signup", err)
		return
	}
	if err := s.store.createUser(ctx, user{Email: in.Email, PasswordHash: hash, Name: in.Name, Role: in.Role}); err != nil {
		s.internalError(w, "signup", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"msg": "회원가입 성공"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeInvalid(w, "invalid form")
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if email == "" || password == "" {
		writeInvalid(w, "username and password are required")
		return
	}
	u, err := s.store.userByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, errNotFound) {
		s.internalError(w, "login", err)
		return
	}
	if err != nil || !checkPassword(u.PasswordHash, password) {
		writeDetail(w, http.StatusBadRequest, "이메일 또는 비밀번호가 올바르지 않습니다.")
		return
	}
	tok, err := s.tokens.issue(u)
	if err != nil {
		s.internalError(w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, model.Token{AccessToken: tok, TokenType: "bearer"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r.Context()).profile())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var up model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		writeInvalid(w, "invalid request body")
		return
	}
	if strings.TrimSpace(up.Name) == "" {
		writeInvalid(w, "name is required")
		return
	}
	if !up.Role.Valid() {
		writeInvalid(w, "role must be mentor or mentee")
		return
	}
	u := currentUser(r.Context())
	if err := s.store.updateProfile(r.Context(), u.Email, up); err != nil {
		s.internalError(w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, up.Apply(u.profile()))
}

func imageURL(email string) string { return "/profile/image/" + email }

func (s *Server) handleMentors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := s.store.listMentors(r.Context(), q.Get("q"), q.Get("sort"))
	if err != nil {
		s.internalError(w, "mentors", err)
		return
	}
	out := make([]model.Mentor, 0, len(users))
	for _, u := range users {
		m := model.Mentor{Email: u.Email, Name: u.Name, TechStack: u.TechStack, Intro: u.Intro}
		if u.ProfileImage != "" {
			m.ProfileImage = imageURL(u.Email)
		}
		out = append(out, m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 8*maxImageBytes)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeInvalid(w, "file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(hdr.Filename))
	if ext != ".jpg" && ext != ".png" {
		writeDetail(w, http.StatusBadRequest, "jpg 또는 png 파일만 허용됩니다.")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		s.internalError(w, "upload image", err)
		return
	}
	if len(data) > maxImageBytes {
		writeDetail(w, http.StatusBadRequest, "이미지 크기는 1MB 이하만 허용됩니다.")
		return
	}

	u := currentUser(r.Context())
	path := filepath.Join(s.imageDir, u.Email+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.internalError(w, "upload image", err)
		return
	}
	if err := s.store.setProfileImage(r.Context(), u.Email, path); err != nil {
		s.internalError(w, "upload image", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "프로필 이미지 업로드 성공", "image_url": imageURL(u.Email)})
}

func placeholderImage(role model.Role) string {
	if role == model.RoleMentor {
		return "https://placehold.co/500x500.jpg?text=MENTOR"
	}
	return "https://placehold.co/500x500.jpg?text=MENTEE"
}

func (s *Server) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.userByEmail(r.Context(), chi.URLParam(r, "email"))
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "사용자를 찾을 수 없습니다.")
		return
	}
	if err != nil {
		s.internalError(w, "profile image", err)
		return
	}
	if u.ProfileImage == "" {
		writeJSON(w, http.StatusOK, map[string]string{"url": placeholderImage(u.Role)})
		return
	}
	if _, err := os.Stat(u.ProfileImage); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"url": placeholderImage(u.Role)})
		return
	}
	http.ServeFile(w, r, u.ProfileImage)
}

func (s *Server) handleRequestMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := currentUser(ctx)
	if u.Role != model.RoleMentee {
		writeDetail(w, http.StatusForbidden, "멘티만 매칭 요청 가능")
		return
	}
	var in model.MatchInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !validEmail(strings.TrimSpace(in.MentorEmail)) {
		writeInvalid(w, "value is not a valid email address")
		return
	}
	in.MentorEmail = strings.TrimSpace(in.MentorEmail)

	if _, err := s.store.findMatch(ctx, sq.Eq{"mentee_email": u.Email}); err == nil {
		writeDetail(w, http.StatusBadRequest, "이미 매칭 요청이 존재합니다.")
		return
	} else if !errors.Is(err, errNotFound) {
		s.internalError(w, "request match", err)
		return
	}
	mentor, err := s.store.userByEmail(ctx, in.MentorEmail)
	if errors.Is(err, errNotFound) || (err == nil && mentor.Role != model.RoleMentor) {
		writeDetail(w, http.StatusNotFound, "해당 멘토를 찾을 수 없습니다.")
		return
	}
	if err != nil {
		s.internalError(w, "request match", err)
		return
	}
	m, err := s.store.createMatch(ctx, u.Email, mentor.Email, in.Message)
	if err != nil {
		s.internalError(w, "request match", err)
		return
	}
	writeJSON(w, http.StatusOK, m.request())
}

func (s *Server) handleMatchRequests(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	col := "mentee_email"
	if u.Role == model.RoleMentor {
		col = "mentor_email"
	}
	ms, err := s.store.listMatches(r.Context(), sq.Eq{col: u.Email})
	if err != nil {
		s.internalError(w, "match requests", err)
		return
	}
	out := make([]model.MatchRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.request())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRespondMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := currentUser(ctx)
	if u.Role != model.RoleMentor {
		writeDetail(w, http.StatusForbidden, "멘토만 요청 수락/거절 가능")
		return
	}
	mentee := strings.TrimSpace(r.URL.Query().Get("mentee_email"))
	if !validEmail(mentee) {
		writeInvalid(w, "value is not a valid email address")
		return
	}
	var accept bool
	if err := json.NewDecoder(r.Body).Decode(&accept); err != nil {
		writeInvalid(w, "body must be true or false")
		return
	}

	m, err := s.store.findMatch(ctx, sq.Eq{"mentee_email": mentee, "mentor_email": u.Email})
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "요청을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		s.internalError(w, "respond match", err)
		return
	}
	if m.Status != model.MatchPending {
		writeDetail(w, http.StatusBadRequest, "이미 처리된 요청입니다.")
		return
	}
	m.Status = model.MatchRejected
	if accept {
		m.Status = model.MatchAccepted
	}
	if err := s.store.setMatchStatus(ctx, m.ID, m.Status); err != nil {
		s.internalError(w, "respond match", err)
		return
	}
	writeJSON(w, http.StatusOK, m.request())
}

func (s *Server) handleCancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := currentUser(ctx)
	if u.Role != model.RoleMentee {
		writeDetail(w, http.StatusForbidden, "멘티만 매칭 요청 취소 가능")
		return
	}
	m, err := s.store.findMatch(ctx, sq.Eq{"mentee_email": u.Email, "status": string(model.MatchPending)})
	if errors.Is(err, errNotFound) {
		writeDetail(w, http.StatusNotFound, "취소할 매칭 요청이 없습니다.")
		return
	}
	if err != nil {
		s.internalError(w, "cancel match", err)
		return
	}
	if err := s.store.deleteMatch(ctx, m.ID); err != nil {
		s.internalError(w, "cancel match", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

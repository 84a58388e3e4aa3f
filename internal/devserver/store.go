package devserver

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"mentorlink-cli/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

var errNotFound = errors.New("not found")

type user struct {
	Email        string
	PasswordHash string
	Name         string
	Role         model.Role
	Intro        string
	TechStack    string
	ProfileImage string
}

func (u user) profile() model.Profile {
	return model.Profile{Email: u.Email, Name: u.Name, Role: u.Role, Intro: u.Intro, TechStack: u.TechStack}
}

type match struct {
	ID          string
	MenteeEmail string
	MentorEmail string
	Status      model.MatchStatus
	Message     string
}

func (m match) request() model.MatchRequest {
	return model.MatchRequest{MenteeEmail: m.MenteeEmail, MentorEmail: m.MentorEmail, Status: m.Status, Message: m.Message}
}

type store struct {
	db  *sql.DB
	now func() time.Time
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var userColumns = []string{"email", "password_hash", "name", "role", "intro", "tech_stack", "profile_image"}
var matchColumns = []string{"id", "mentee_email", "mentor_email", "status", "message"}

func openStore(ctx context.Context, path string, now func() time.Time) (*store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps sqlite writers serialized.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &store{db: db, now: now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (s *store) Close() error { return s.db.Close() }

func (s *store) createUser(ctx context.Context, u user) error {
	q, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(u.Email, u.PasswordHash, u.Name, string(u.Role), u.Intro, u.TechStack, u.ProfileImage).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}

func scanUser(row sq.RowScanner) (user, error) {
	var u user
	var role string
	if err := row.Scan(&u.Email, &u.PasswordHash, &u.Name, &role, &u.Intro, &u.TechStack, &u.ProfileImage); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user{}, errNotFound
		}
		return user{}, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func (s *store) userByEmail(ctx context.Context, email string) (user, error) {
	q, args, err := psql.Select(userColumns...).From("users").Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return user{}, err
	}
	return scanUser(s.db.QueryRowContext(ctx, q, args...))
}

func (s *store) updateProfile(ctx context.Context, email string, up model.ProfileUpdate) error {
	q, args, err := psql.Update("users").
		Set("name", up.Name).
		Set("intro", up.Intro).
		Set("role", string(up.Role)).
		Set("tech_stack", up.TechStack).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return err
	}
	return s.execOne(ctx, q, args...)
}

func (s *store) setProfileImage(ctx context.Context, email, path string) error {
	q, args, err := psql.Update("users").Set("profile_image", path).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return err
	}
	return s.execOne(ctx, q, args...)
}

// listMentors filters on name or tech stack (sqlite LIKE folds ASCII case) and orders by
// "name" or "tech_stack" when asked.
func (s *store) listMentors(ctx context.Context, query, sortKey string) ([]user, error) {
	b := psql.Select(userColumns...).From("users").Where(sq.Eq{"role": string(model.RoleMentor)})
	if query = strings.TrimSpace(query); query != "" {
		pat := "%" + query + "%"
		b = b.Where(sq.Or{sq.Like{"name": pat}, sq.Like{"tech_stack": pat}})
	}
	switch sortKey {
	case "name":
		b = b.OrderBy("name ASC")
	case "tech_stack":
		b = b.OrderBy("tech_stack ASC")
	default:
		b = b.OrderBy("rowid ASC")
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []user
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *store) createMatch(ctx context.Context, menteeEmail, mentorEmail, message string) (match, error) {
	m := match{
		ID:          uuid.NewString(),
		MenteeEmail: menteeEmail,
		MentorEmail: mentorEmail,
		Status:      model.MatchPending,
		Message:     message,
	}
	q, args, err := psql.Insert("matches").
		Columns(append(matchColumns, "created_at")...).
		Values(m.ID, m.MenteeEmail, m.MentorEmail, string(m.Status), m.Message, s.now().UnixMilli()).
		ToSql()
	if err != nil {
		return match{}, err
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return match{}, err
	}
	return m, nil
}

func (s *store) findMatch(ctx context.Context, where sq.Sqlizer) (match, error) {
	q, args, err := psql.Select(matchColumns...).From("matches").Where(where).OrderBy("created_at ASC").Limit(1).ToSql()
	if err != nil {
		return match{}, err
	}
	var m match
	var status string
	err = s.db.QueryRowContext(ctx, q, args...).Scan(&m.ID, &m.MenteeEmail, &m.MentorEmail, &status, &m.Message)
	if errors.Is(err, sql.ErrNoRows) {
		return match{}, errNotFound
	}
	if err != nil {
		return match{}, err
	}
	m.Status = model.MatchStatus(status)
	return m, nil
}

func (s *store) listMatches(ctx context.Context, where sq.Sqlizer) ([]match, error) {
	q, args, err := psql.Select(matchColumns...).From("matches").Where(where).OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []match{}
	for rows.Next() {
		var m match
		var status string
		if err := rows.Scan(&m.ID, &m.MenteeEmail, &m.MentorEmail, &status, &m.Message); err != nil {
			return nil, err
		}
		m.Status = model.MatchStatus(status)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *store) setMatchStatus(ctx context.Context, id string, st model.MatchStatus) error {
	q, args, err := psql.Update("matches").Set("status", string(st)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return s.execOne(ctx, q, args...)
}

func (s *store) deleteMatch(ctx context.Context, id string) error {
	q, args, err := psql.Delete("matches").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return s.execOne(ctx, q, args...)
}

func (s *store) execOne(ctx context.Context, q string, args ...any) error {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"mentorlink-cli/internal/binding"
)

var errNotAuthenticated = errors.New("not authenticated; run `mentorlink login` and pass --token (or set MENTORLINK_TOKEN)")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// userError carries the message a user would see in the TUI, keeping the cause for errors.Is/As.
type userError struct {
	msg string
	err error
}

func (e userError) Error() string { return e.msg }
func (e userError) Unwrap() error { return e.err }

func describe(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return userError{msg: binding.Describe(err, fallback), err: err}
}

// runBinding drives b through one submit on the calling goroutine, so a command reports the
// same validation and failure texts as the TUI form.
func runBinding[D, T any](ctx context.Context, b *binding.Binding[D, T]) error {
	req, n, ok := b.Submit()
	if !ok {
		return userError{msg: n.Text}
	}
	b.Resolve(req.Do(ctx))
	if b.Status != binding.StatusSuccess {
		return userError{msg: b.Message}
	}
	return nil
}

// Package binding pairs a remote resource with its local draft and request status.
//
// A Binding is driven in three steps: Submit validates the draft and hands back a Request,
// the caller runs Request.Do off the UI loop, and Resolve applies the Result. Every Resolve
// leaves the binding out of StatusLoading.
package binding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentorlink-cli/internal/api"
	"mentorlink-cli/internal/notify"
)

const (
	NetworkErrorText   = "네트워크 오류"
	MalformedErrorText = "서버 응답 오류"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// ValidationError is a local check failure; no request is sent.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// Describe maps an error to the text shown to the user. fallback is used for server rejections
// without detail and for errors outside the known taxonomy.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	var te *api.TransportError
	if errors.As(err, &te) {
		return NetworkErrorText
	}
	var re *api.RejectedError
	if errors.As(err, &re) {
		if d := strings.TrimSpace(re.Detail); d != "" {
			return d
		}
		return fallback
	}
	var me *api.MalformedError
	if errors.As(err, &me) {
		return MalformedErrorText
	}
	return fallback
}

// Form configures one binding.
type Form[D, T any] struct {
	Name     string
	Validate func(T) error
	Call     func(context.Context, T) (D, error)
	// Merge folds a successful edit into the existing data instead of replacing it.
	// It only runs when data was already present.
	Merge func(prev D, submitted T, got D) D
	// OnSuccess runs after Data has been updated.
	OnSuccess func(D)
	// NextDraft replaces the draft after success (e.g. clear a form).
	NextDraft func(T) T

	SuccessText string
	// SuccessTextFunc, when set, derives the success text from the returned value.
	SuccessTextFunc func(D) string
	// SuccessNotice overrides SuccessText for the notification only.
	SuccessNotice string
	FailureText   string
}

type Binding[D, T any] struct {
	Data    *D
	Draft   T
	Status  Status
	Message string

	form      Form[D, T]
	seq       int
	submitted T
}

func New[D, T any](form Form[D, T], draft T) Binding[D, T] {
	return Binding[D, T]{Draft: draft, form: form}
}

func (b *Binding[D, T]) Name() string { return b.form.Name }

func (b *Binding[D, T]) Loading() bool { return b.Status == StatusLoading }

func (b *Binding[D, T]) Value() (D, bool) {
	if b.Data == nil {
		var zero D
		return zero, false
	}
	return *b.Data, true
}

// SetData replaces the confirmed value without a round trip.
func (b *Binding[D, T]) SetData(v D) {
	b.Data = &v
}

// Reset drops data and status. Results of requests issued before Reset are ignored.
func (b *Binding[D, T]) Reset(draft T) {
	b.seq++
	b.Data = nil
	b.Draft = draft
	b.Status = StatusIdle
	b.Message = ""
}

// Request is one pending call, detached from the binding so it can run on another goroutine.
type Request[D any] struct {
	Seq  int
	call func(context.Context) (D, error)
}

type Result[D any] struct {
	Seq   int
	Value D
	Err   error
}

// Do runs the call exactly once. A panic is reported as a transport error.
func (r Request[D]) Do(ctx context.Context) (res Result[D]) {
	res.Seq = r.Seq
	defer func() {
		if p := recover(); p != nil {
			var zero D
			res.Value = zero
			res.Err = &api.TransportError{Op: "request", Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	if r.call == nil {
		res.Err = &api.TransportError{Op: "request", Err: errors.New("no call configured")}
		return res
	}
	res.Value, res.Err = r.call(ctx)
	return res
}

// Submit validates the draft and moves to StatusLoading. ok is false when nothing was started:
// either validation failed (the returned notification carries the message) or a request is
// already in flight.
func (b *Binding[D, T]) Submit() (req Request[D], n notify.Notification, ok bool) {
	if b.Status == StatusLoading {
		return Request[D]{}, notify.Notification{}, false
	}
	if b.form.Validate != nil {
		if err := b.form.Validate(b.Draft); err != nil {
			b.Status = StatusError
			b.Message = Describe(err, b.form.FailureText)
			return Request[D]{}, notify.Notification{Text: b.Message, Severity: notify.Error}, false
		}
	}

	b.seq++
	b.Status = StatusLoading
	b.Message = ""
	b.submitted = b.Draft

	draft := b.Draft
	call := b.form.Call
	var fn func(context.Context) (D, error)
	if call != nil {
		fn = func(ctx context.Context) (D, error) { return call(ctx, draft) }
	}
	return Request[D]{Seq: b.seq, call: fn}, notify.Notification{}, true
}

// Resolve applies the outcome of the request with the same sequence number.
func (b *Binding[D, T]) Resolve(res Result[D]) notify.Notification {
	if res.Seq != b.seq || b.Status != StatusLoading {
		return notify.Notification{}
	}
	if res.Err != nil {
		b.Status = StatusError
		b.Message = Describe(res.Err, b.form.FailureText)
		return notify.Notification{Text: b.Message, Severity: notify.Error}
	}

	v := res.Value
	if b.form.Merge != nil && b.Data != nil {
		v = b.form.Merge(*b.Data, b.submitted, res.Value)
	}
	b.Data = &v
	b.Status = StatusSuccess
	b.Message = b.form.SuccessText
	if b.form.SuccessTextFunc != nil {
		b.Message = b.form.SuccessTextFunc(v)
	}
	if b.form.OnSuccess != nil {
		b.form.OnSuccess(v)
	}
	if b.form.NextDraft != nil {
		b.Draft = b.form.NextDraft(b.Draft)
	}

	text := b.form.SuccessNotice
	if text == "" {
		text = b.Message
	}
	return notify.Notification{Text: text, Severity: notify.Success}
}

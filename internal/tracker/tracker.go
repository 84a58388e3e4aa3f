// Package tracker keeps per-key busy/done flags for independent async operations.
package tracker

import "sync"

type Flags struct {
	Busy bool
	Done bool
}

// Tracker is a keyed table with lazy defaults: untouched keys read as {false, false}.
// Done is monotonic; once set for a key it is never cleared.
type Tracker struct {
	mu    sync.RWMutex
	flags map[string]Flags
}

func New() *Tracker {
	return &Tracker{flags: map[string]Flags{}}
}

func (t *Tracker) Begin(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.flags[key]
	f.Busy = true
	t.flags[key] = f
}

func (t *Tracker) Complete(key string, succeeded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.flags[key]
	f.Busy = false
	f.Done = f.Done || succeeded
	t.flags[key] = f
}

func (t *Tracker) Flags(key string) Flags {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.flags[key]
}

func (t *Tracker) Busy(key string) bool { return t.Flags(key).Busy }

func (t *Tracker) Done(key string) bool { return t.Flags(key).Done }

// Disabled reports whether an action against key must be refused.
func (t *Tracker) Disabled(key string) bool {
	f := t.Flags(key)
	return f.Busy || f.Done
}

// TryBegin marks key busy unless it is already disabled.
func (t *Tracker) TryBegin(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.flags[key]
	if f.Busy || f.Done {
		return false
	}
	f.Busy = true
	t.flags[key] = f
	return true
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.flags)
}

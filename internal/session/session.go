// Package session holds the single active credential. A Holder is created once by the program
// root and handed to every component that needs it; writes go through SetCredential and Clear.
package session

import (
	"strings"
	"sync"
)

type Holder struct {
	mu         sync.RWMutex
	credential string
}

func NewHolder() *Holder { return &Holder{} }

func (h *Holder) SetCredential(token string) {
	h.mu.Lock()
	h.credential = strings.TrimSpace(token)
	h.mu.Unlock()
}

func (h *Holder) Clear() {
	h.mu.Lock()
	h.credential = ""
	h.mu.Unlock()
}

func (h *Holder) Token() string {
	if h == nil {
		return ""
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.credential
}

func (h *Holder) IsAuthenticated() bool { return h.Token() != "" }

// Gate returns login instead of target when target is protected and h is unauthenticated.
func Gate[V any](h *Holder, target V, protected bool, login V) V {
	if protected && !h.IsAuthenticated() {
		return login
	}
	return target
}

package session

import "testing"

type route string

func TestHolder_Lifecycle(t *testing.T) {
	h := NewHolder()
	if h.IsAuthenticated() || h.Token() != "" {
		t.Fatalf("new holder must be unauthenticated")
	}
	h.SetCredential("tok-1")
	if !h.IsAuthenticated() || h.Token() != "tok-1" {
		t.Fatalf("expected tok-1, got %q", h.Token())
	}
	h.SetCredential("tok-2")
	if h.Token() != "tok-2" {
		t.Fatalf("expected replacement, got %q", h.Token())
	}
	h.Clear()
	if h.IsAuthenticated() {
		t.Fatalf("expected cleared holder")
	}
	h.SetCredential("   ")
	if h.IsAuthenticated() {
		t.Fatalf("blank credential must count as unauthenticated")
	}
}

func TestNilHolderIsUnauthenticated(t *testing.T) {
	var h *Holder
	if h.IsAuthenticated() {
		t.Fatalf("nil holder must be unauthenticated")
	}
}

func TestGate(t *testing.T) {
	h := NewHolder()
	if got := Gate(h, route("profile"), true, route("login")); got != "login" {
		t.Fatalf("expected redirect to login, got %q", got)
	}
	if got := Gate(h, route("mentors"), false, route("login")); got != "mentors" {
		t.Fatalf("public route must pass, got %q", got)
	}
	h.SetCredential("tok")
	if got := Gate(h, route("profile"), true, route("login")); got != "profile" {
		t.Fatalf("authenticated holder must pass, got %q", got)
	}
}

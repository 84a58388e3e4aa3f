package notify

import (
	"strings"
	"testing"
	"time"
)

func TestShow_NewerPreemptsOlderAndStaleTimerIsIgnored(t *testing.T) {
	c := New(time.Millisecond)

	cmdA := c.Show("a", Error)
	cmdB := c.Show("b", Success)
	if cmdA == nil || cmdB == nil {
		t.Fatalf("expected expiry commands for non-empty notifications")
	}

	// The first timer fires after "b" replaced "a".
	msgA, ok := cmdA().(ExpiredMsg)
	if !ok {
		t.Fatalf("expected ExpiredMsg from first timer")
	}
	if c.Expire(msgA) {
		t.Fatalf("stale timer must not clear the newer notification")
	}
	n, ok := c.Current()
	if !ok || n.Text != "b" || n.Severity != Success {
		t.Fatalf("expected b/success visible, got %+v (ok=%v)", n, ok)
	}

	msgB := cmdB().(ExpiredMsg)
	if !c.Expire(msgB) {
		t.Fatalf("current timer should clear the notification")
	}
	if _, ok := c.Current(); ok {
		t.Fatalf("expected no notification after expiry")
	}
	// "a" never comes back.
	if c.Expire(msgA) {
		t.Fatalf("expected stale expiry to stay a no-op")
	}
	if _, ok := c.Current(); ok {
		t.Fatalf("expected channel to remain empty")
	}
}

func TestShow_EmptyTextIsNoop(t *testing.T) {
	c := New(0)
	if c.Timeout() != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", c.Timeout())
	}
	_ = c.Show("keep", Info)
	gen := c.Generation()

	if cmd := c.Show("   ", Error); cmd != nil {
		t.Fatalf("expected nil cmd for empty text")
	}
	if c.Generation() != gen {
		t.Fatalf("empty show must not bump generation")
	}
	if n, _ := c.Current(); n.Text != "keep" {
		t.Fatalf("empty show must not replace current, got %q", n.Text)
	}
	if cmd := c.Push(Notification{}); cmd != nil {
		t.Fatalf("expected zero notification push to be a no-op")
	}
}

func TestDismiss_ClearsAndInvalidatesPendingTimer(t *testing.T) {
	c := New(time.Hour)
	_ = c.Show("x", Info)
	pending := ExpiredMsg{Gen: c.Generation()}

	c.Dismiss()
	if _, ok := c.Current(); ok {
		t.Fatalf("expected dismiss to clear")
	}
	_ = c.Show("y", Info)
	if c.Expire(pending) {
		t.Fatalf("timer from before dismiss must be stale")
	}
	if n, _ := c.Current(); n.Text != "y" {
		t.Fatalf("expected y, got %q", n.Text)
	}
}

func TestView(t *testing.T) {
	c := New(time.Hour)
	if got := c.View(80); got != "" {
		t.Fatalf("expected empty view, got %q", got)
	}
	_ = c.Show("매칭 요청 성공!", Success)
	if got := c.View(80); !strings.Contains(got, "매칭 요청 성공!") {
		t.Fatalf("expected text in view, got %q", got)
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{Info: "info", Success: "success", Error: "error"} {
		if got := sev.String(); got != want {
			t.Fatalf("severity %d: got %q want %q", sev, got, want)
		}
	}
}

package tracker

import (
	"fmt"
	"sync"
	"testing"
)

func TestDefaults(t *testing.T) {
	tr := New()
	if got := tr.Flags("nobody@x.com"); got != (Flags{}) {
		t.Fatalf("expected zero flags, got %+v", got)
	}
	if tr.Disabled("nobody@x.com") {
		t.Fatalf("untouched key must be enabled")
	}
	if tr.Len() != 0 {
		t.Fatalf("reads must not insert keys")
	}
}

func TestBeginComplete_Success(t *testing.T) {
	tr := New()
	tr.Begin("x@y.com")
	tr.Begin("x@y.com")
	if got := tr.Flags("x@y.com"); got != (Flags{Busy: true}) {
		t.Fatalf("expected busy, got %+v", got)
	}
	tr.Complete("x@y.com", true)
	if got := tr.Flags("x@y.com"); got != (Flags{Done: true}) {
		t.Fatalf("expected {busy:false done:true}, got %+v", got)
	}
	if !tr.Disabled("x@y.com") {
		t.Fatalf("done key must stay disabled")
	}
	if tr.TryBegin("x@y.com") {
		t.Fatalf("expected TryBegin refused for done key")
	}
}

func TestComplete_FailureKeepsDoneMonotonic(t *testing.T) {
	tr := New()
	tr.Begin("a")
	tr.Complete("a", false)
	if got := tr.Flags("a"); got != (Flags{}) {
		t.Fatalf("expected failure to leave key retryable, got %+v", got)
	}
	tr.Begin("a")
	tr.Complete("a", true)
	tr.Begin("a")
	tr.Complete("a", false)
	if !tr.Done("a") {
		t.Fatalf("done must never reset to false")
	}
}

func TestConcurrentKeysAreIndependent(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		key := fmt.Sprintf("m%d@x.com", i)
		wg.Add(1)
		go func(ok bool) {
			defer wg.Done()
			tr.Begin(key)
			tr.Complete(key, ok)
		}(i%2 == 0)
	}
	wg.Wait()
	for i := 0; i < 64; i++ {
		key := fmt.Sprintf("m%d@x.com", i)
		want := Flags{Done: i%2 == 0}
		if got := tr.Flags(key); got != want {
			t.Fatalf("%s: got %+v want %+v", key, got, want)
		}
	}
}

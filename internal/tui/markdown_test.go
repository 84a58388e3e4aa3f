package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdown_EmptyIsEmpty(t *testing.T) {
	if got := renderMarkdown("   ", 40); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderMarkdown_WrapsToWidth(t *testing.T) {
	t.Setenv("MENTORLINK_TUI_THEME", "dark")
	md := "**Go** 와 Rust 를 가르칩니다. " + strings.Repeat("분산 시스템 ", 20)
	out := renderMarkdown(md, 30)
	if !strings.Contains(xansi.Strip(out), "Go") {
		t.Fatalf("expected text in output, got %q", out)
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("expected long intro to wrap, got %q", out)
	}
}

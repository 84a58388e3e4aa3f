package format

import (
	"bytes"
	"strings"
	"testing"
)

type rows [][]string

func (r rows) Table() ([]string, [][]string) { return []string{"EMAIL", "NAME"}, r }

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]string{"email": "m@test.com"}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "{\"email\":\"m@test.com\"}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWrite_TextTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, rows{{"m@test.com", "테스트멘토"}}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"EMAIL", "NAME", "m@test.com", "테스트멘토"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWrite_TextEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, rows{}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "(empty)" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
}

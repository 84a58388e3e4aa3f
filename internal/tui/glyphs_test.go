package tui

import "testing"

func TestGlyphs_FromConfig(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if glyphCheck() != "v" || glyphCursor() != ">" {
		t.Fatalf("unexpected ascii glyphs %q %q", glyphCheck(), glyphCursor())
	}

	// Unknown values keep the current set.
	applyGlyphPreference("bogus")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode by default; got %v", got)
	}
}

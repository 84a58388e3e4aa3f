package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitPane pads or cuts s to exactly width columns (ANSI-aware) and height lines, so panes
// joined with lipgloss.JoinHorizontal stay aligned.
func fitPane(s string, width, height int) string {
	width = max(width, 0)
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	switch {
	case width == 0:
		return ""
	case w > width && width == 1:
		ln = xansi.Cut(ln, 0, 1)
	case w > width:
		ln = xansi.Cut(ln, 0, width-1) + "…"
	}
	if w = xansi.StringWidth(ln); w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

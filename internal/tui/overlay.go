package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// dockRight draws panel flush against the right edge of base, covering its
// first rows lines. Rows past the panel keep the base untouched.
func dockRight(base, panel string, width, rows int) string {
	out := lines(base)
	for len(out) < rows {
		out = append(out, "")
	}
	side := lines(panel)
	panelWidth := 0
	for _, l := range side {
		panelWidth = max(panelWidth, ansi.StringWidth(l))
	}
	panelWidth = min(panelWidth, width)
	keep := width - panelWidth

	for row := 0; row < rows && row < len(side); row++ {
		left := fitWidth(ansi.Truncate(out[row], keep, ""), keep)
		out[row] = left + fitWidth(side[row], panelWidth)
	}
	return strings.Join(out, "\n")
}

// lines splits s into rows; an empty string is one empty row.
func lines(s string) []string {
	return strings.Split(s, "\n")
}

// fitWidth pads s with spaces to exactly w cells. Longer strings are cut.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	n := ansi.StringWidth(s)
	switch {
	case n > w:
		return ansi.Truncate(s, w, "")
	case n < w:
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// ellipsize shortens s to w cells with a trailing "…".
func ellipsize(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "…")
}

package board

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the widget title closest to term when no title contains
// it. Candidates are compared word by word so "wdget" still finds
// "My Widget". ok is false when term already matches or nothing is close.
func Suggest(s State, term string) (title string, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || AnyMatch(s, needle) {
		return "", false
	}
	limit := max(1, len(needle)/3)
	best := limit + 1
	for _, name := range s.order {
		for _, w := range s.widgets[name] {
			d := titleDistance(strings.ToLower(w.Title), needle)
			if d < best {
				best = d
				title = w.Title
			}
		}
	}
	if best > limit {
		return "", false
	}
	return title, true
}

func titleDistance(title, needle string) int {
	best := levenshtein.ComputeDistance(title, needle)
	for _, word := range strings.Fields(title) {
		if d := levenshtein.ComputeDistance(word, needle); d < best {
			best = d
		}
	}
	return best
}

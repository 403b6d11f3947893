package board

import "strings"

// KeySet is the visibility filter applied by VisibleWidgets.
type KeySet interface {
	Has(key int64) bool
}

// MatchesSearch reports whether the widget title contains term, ignoring
// case. An empty term matches everything.
func MatchesSearch(w Widget, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Title), strings.ToLower(term))
}

// FilterByTitle keeps the widgets whose title matches term.
func FilterByTitle(ws []Widget, term string) []Widget {
	out := make([]Widget, 0, len(ws))
	for _, w := range ws {
		if MatchesSearch(w, term) {
			out = append(out, w)
		}
	}
	return out
}

// VisibleWidgets returns the widgets of category that match term and whose
// key is in visible. A nil visible set shows nothing.
func VisibleWidgets(s State, category, term string, visible KeySet) []Widget {
	if visible == nil {
		return nil
	}
	var out []Widget
	for _, w := range s.widgets[category] {
		if MatchesSearch(w, term) && visible.Has(w.Key) {
			out = append(out, w)
		}
	}
	return out
}

// AnyMatch reports whether at least one widget in any category matches term.
func AnyMatch(s State, term string) bool {
	for _, name := range s.order {
		for _, w := range s.widgets[name] {
			if MatchesSearch(w, term) {
				return true
			}
		}
	}
	return false
}

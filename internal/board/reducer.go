package board

// Reduce returns the state that results from applying a to s. It never
// mutates s. Unknown action types and removals that match nothing return s
// unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAddWidget:
		return s.with(a.Category, appendWidget(s.widgets[a.Category], a.Widget))
	case ActionRemoveWidget:
		current, ok := s.widgets[a.Category]
		if !ok {
			return s
		}
		kept := make([]Widget, 0, len(current))
		for _, w := range current {
			if w.Key != a.Key {
				kept = append(kept, w)
			}
		}
		if len(kept) == len(current) {
			return s
		}
		return s.with(a.Category, kept)
	default:
		return s
	}
}

func appendWidget(ws []Widget, w Widget) []Widget {
	out := make([]Widget, len(ws), len(ws)+1)
	copy(out, ws)
	return append(out, w)
}

// with returns a copy of s where category holds ws. Other categories share
// their slices with s, which is safe because nothing writes to them in place.
func (s State) with(category string, ws []Widget) State {
	next := State{
		order:   s.order,
		widgets: make(map[string][]Widget, len(s.widgets)+1),
	}
	for name, existing := range s.widgets {
		next.widgets[name] = existing
	}
	if _, ok := s.widgets[category]; !ok {
		next.order = append(append([]string(nil), s.order...), category)
	}
	next.widgets[category] = ws
	return next
}

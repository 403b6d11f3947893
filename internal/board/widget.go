package board

// Widget is a single dashboard card. Key is the creation timestamp in Unix
// milliseconds and never changes once assigned.
type Widget struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Key     int64  `json:"key"`
}

// CategorySeed is one entry of the initial state supplied by a seed provider.
type CategorySeed struct {
	Title   string
	Widgets []Widget
}

// State maps category names to their ordered widgets. It is an immutable
// snapshot: the reducer builds a new State for every change.
type State struct {
	order   []string
	widgets map[string][]Widget
}

// NewState builds the initial state from seed records, keeping seed order.
// A repeated title keeps its first position and takes the later widgets.
func NewState(seed []CategorySeed) State {
	s := State{widgets: make(map[string][]Widget, len(seed))}
	for _, c := range seed {
		if _, ok := s.widgets[c.Title]; !ok {
			s.order = append(s.order, c.Title)
		}
		s.widgets[c.Title] = append([]Widget(nil), c.Widgets...)
	}
	return s
}

// Categories returns category names in state order.
func (s State) Categories() []string {
	return append([]string(nil), s.order...)
}

// Has reports whether the category exists.
func (s State) Has(category string) bool {
	_, ok := s.widgets[category]
	return ok
}

// Widgets returns a copy of the category's widgets, or nil if it is unknown.
func (s State) Widgets(category string) []Widget {
	ws, ok := s.widgets[category]
	if !ok {
		return nil
	}
	return append([]Widget{}, ws...)
}

// Len returns the number of widgets across all categories.
func (s State) Len() int {
	n := 0
	for _, ws := range s.widgets {
		n += len(ws)
	}
	return n
}

// MaxKey returns the largest widget key in the state, or 0 when empty.
func (s State) MaxKey() int64 {
	var out int64
	for _, ws := range s.widgets {
		for _, w := range ws {
			if w.Key > out {
				out = w.Key
			}
		}
	}
	return out
}

// Snapshot returns the state as seed records. Useful for comparisons.
func (s State) Snapshot() []CategorySeed {
	out := make([]CategorySeed, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, CategorySeed{Title: name, Widgets: s.Widgets(name)})
	}
	return out
}

package board

import "time"

// Listener is called after every dispatch with the action and the state it
// produced.
type Listener func(a Action, next State)

// Store owns the dashboard state. Callers hold it by pointer and change it
// only through Dispatch.
type Store struct {
	state     State
	lastKey   int64
	listeners []Listener
}

// NewStore initializes a store from seed records.
func NewStore(seed []CategorySeed) *Store {
	s := NewState(seed)
	return &Store{state: s, lastKey: s.MaxKey()}
}

// State returns the current snapshot.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies a and returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)
	if a.Type == ActionAddWidget && a.Widget.Key > s.lastKey {
		s.lastKey = a.Widget.Key
	}
	for _, fn := range s.listeners {
		fn(a, s.state)
	}
	return s.state
}

// Subscribe registers fn to run after each dispatch.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// NextKey returns a widget key derived from now in Unix milliseconds. Keys
// are strictly increasing for the life of the store, so two widgets created
// in the same millisecond still get distinct keys.
func (s *Store) NextKey(now time.Time) int64 {
	key := now.UnixMilli()
	if key <= s.lastKey {
		key = s.lastKey + 1
	}
	s.lastKey = key
	return key
}

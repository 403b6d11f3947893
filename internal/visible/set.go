// Package visible holds the set of widget keys shown on the dashboard grid
// and the single local slot it is persisted to.
package visible

import (
	"encoding/json"
	"fmt"
)

// Set is an ordered set of widget keys. Methods return new sets; a Set value
// is never modified after construction.
type Set struct {
	keys []int64
}

// NewSet builds a set from keys, dropping duplicates and keeping first order.
func NewSet(keys ...int64) Set {
	var s Set
	seen := make(map[int64]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		s.keys = append(s.keys, k)
	}
	return s
}

// Has reports membership.
func (s Set) Has(key int64) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Len returns the number of keys.
func (s Set) Len() int { return len(s.keys) }

// Keys returns the keys in insertion order.
func (s Set) Keys() []int64 {
	return append([]int64(nil), s.keys...)
}

// Toggle adds key when absent and removes it when present.
func (s Set) Toggle(key int64) Set {
	if s.Has(key) {
		return s.Remove(key)
	}
	next := make([]int64, len(s.keys), len(s.keys)+1)
	copy(next, s.keys)
	return Set{keys: append(next, key)}
}

// Remove drops key. The receiver is returned as-is when key is absent.
func (s Set) Remove(key int64) Set {
	if !s.Has(key) {
		return s
	}
	next := make([]int64, 0, len(s.keys)-1)
	for _, k := range s.keys {
		if k != key {
			next = append(next, k)
		}
	}
	return Set{keys: next}
}

// MarshalJSON encodes the set as a JSON array of numbers.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.keys == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.keys)
}

// UnmarshalJSON decodes a JSON array of numbers.
func (s *Set) UnmarshalJSON(data []byte) error {
	var keys []int64
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	*s = NewSet(keys...)
	return nil
}

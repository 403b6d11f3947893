package visible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SlotName is the key the visible-set is stored under.
const SlotName = "checkedItems"

// ErrCorrupt reports slot content that could not be decoded. Load returns an
// empty set alongside it so callers can keep going.
var ErrCorrupt = errors.New("visible-set slot is corrupt")

// Slot persists one visible-set.
type Slot interface {
	Load(ctx context.Context) (Set, error)
	Save(ctx context.Context, s Set) error
	Close() error
}

// Decode parses the serialized form of a set. Empty input is an empty set.
func Decode(data []byte) (Set, error) {
	if len(data) == 0 {
		return Set{}, nil
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		if errors.Is(err, ErrCorrupt) {
			return Set{}, err
		}
		return Set{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return s, nil
}

// Encode returns the serialized form of s.
func Encode(s Set) ([]byte, error) {
	return json.Marshal(s)
}

// Storage backends accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the slot for backend at path.
func Open(backend, path string) (Slot, error) {
	switch backend {
	case BackendFile, "":
		return NewFileSlot(path), nil
	case BackendSQLite:
		return OpenSQLiteSlot(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

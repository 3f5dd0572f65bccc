// Package collision tracks field names by their xxHash64 ID.
package collision

import (
	"fmt"
	"slices"

	"github.com/arloliu/credfmt/errs"
	"github.com/arloliu/credfmt/internal/hash"
)

// Tracker tracks field names of a format and detects duplicates and hash collisions.
// It keeps a hash-to-names mapping and the names in insertion order.
type Tracker struct {
	names      map[uint64][]string // Hash → names sharing it
	order      []string            // Insertion order
	collisions int                 // Buckets holding more than one name
}

// NewTracker creates a new field name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64][]string),
		order: make([]string, 0),
	}
}

// Track hashes name and tracks it.
func (t *Tracker) Track(name string) (uint64, error) {
	id := hash.ID(name)

	return id, t.TrackName(name, id)
}

// TrackName tracks name under the given hash.
//
// A name that is already tracked fails with errs.ErrDuplicateField. A different name with
// the same hash is accepted and recorded as a collision, since lookups compare names.
func (t *Tracker) TrackName(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidFieldName
	}

	bucket := t.names[id]
	if slices.Contains(bucket, name) {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateField, name)
	}
	if len(bucket) == 1 {
		t.collisions++
	}

	t.names[id] = append(bucket, name)
	t.order = append(t.order, name)

	return nil
}

// Untrack removes name. It reports whether the name was tracked.
func (t *Tracker) Untrack(name string) bool {
	return t.UntrackName(name, hash.ID(name))
}

// UntrackName removes name tracked under the given hash.
func (t *Tracker) UntrackName(name string, id uint64) bool {
	bucket := t.names[id]
	i := slices.Index(bucket, name)
	if i < 0 {
		return false
	}

	bucket = slices.Delete(bucket, i, i+1)
	switch len(bucket) {
	case 0:
		delete(t.names, id)
	case 1:
		t.collisions--
		t.names[id] = bucket
	default:
		t.names[id] = bucket
	}

	if j := slices.Index(t.order, name); j >= 0 {
		t.order = slices.Delete(t.order, j, j+1)
	}

	return true
}

// Contains reports whether name is tracked.
func (t *Tracker) Contains(name string) bool {
	return slices.Contains(t.names[hash.ID(name)], name)
}

// HasCollision reports whether two tracked names share a hash.
func (t *Tracker) HasCollision() bool {
	return t.collisions > 0
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return slices.Clone(t.order)
}

func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
	t.collisions = 0
}

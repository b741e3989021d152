// Package neighbor provides the compressed per-unit neighbor index consumed
// by the force engine.
//
// Neighbor references live in one flat sequence; each unit owns the
// sub-range [offset[i], offset[i]+count[i]). The index is rebuilt from
// scratch once per tick by an external broad phase, either incrementally via
// Begin/Add or in bulk via the raw columns followed by Commit.
package neighbor

import "fmt"

// avgNeighbors is the expected fan-out used to size the flat sequence.
// A hint, not a limit; the sequence grows past it when needed.
const avgNeighbors = 8

// List is an offset/count neighbor index over a flat sequence of unit
// indices. Not safe for concurrent use.
type List struct {
	flat    []uint32
	offsets []uint32
	counts  []uint32
}

// New allocates a List for up to maxUnits units, reserving flat capacity for
// the expected average fan-out.
func New(maxUnits int) *List {
	if maxUnits < 0 {
		maxUnits = 0
	}
	return &List{
		flat:    make([]uint32, 0, maxUnits*avgNeighbors),
		offsets: make([]uint32, maxUnits),
		counts:  make([]uint32, maxUnits),
	}
}

// Units returns the number of units the index can describe.
func (l *List) Units() int { return len(l.offsets) }

// Total returns the current length of the flat sequence.
func (l *List) Total() int { return len(l.flat) }

// Clear empties the flat sequence for the next tick. Offsets and counts are
// left stale; they are overwritten by the next round of Begin calls (or by
// a bulk producer).
func (l *List) Clear() { l.flat = l.flat[:0] }

// Begin starts the neighbor run of unit i at the current end of the flat
// sequence. Must be called before any Add for i, and units must be
// finalized in increasing index order within a tick.
func (l *List) Begin(i int) {
	l.offsets[i] = uint32(len(l.flat))
	l.counts[i] = 0
}

// Add appends neighbor j to the run of unit i.
func (l *List) Add(i int, j uint32) {
	l.flat = append(l.flat, j)
	l.counts[i]++
}

// Of returns the neighbor run of unit i as a view into the flat sequence.
// Valid until the next Clear or Add.
func (l *List) Of(i int) []uint32 {
	off := l.offsets[i]
	return l.flat[off : off+l.counts[i]]
}

// Count returns the number of neighbors recorded for unit i.
func (l *List) Count(i int) int { return int(l.counts[i]) }

// Offsets exposes the per-unit offset column for bulk producers.
func (l *List) Offsets() []uint32 { return l.offsets }

// Counts exposes the per-unit count column for bulk producers.
func (l *List) Counts() []uint32 { return l.counts }

// Flat exposes the reserved flat storage for bulk producers. Entries beyond
// Total are undefined until declared via Commit.
func (l *List) Flat() []uint32 { return l.flat[:cap(l.flat)] }

// Commit declares the flat sequence length after a bulk producer has
// written the raw columns directly. The declared total is validated against
// the reserved capacity rather than trusted.
func (l *List) Commit(total int) error {
	if total < 0 || total > cap(l.flat) {
		return fmt.Errorf("neighbor: committed total %d outside reserved capacity %d", total, cap(l.flat))
	}
	l.flat = l.flat[:total]
	return nil
}

// Package registry provides the implementation registry for force
// accumulation kernels.
//
// The registry-based dispatch system allows multiple kernel variants
// (generic scalar, SSE2, NEON) to coexist. Architecture-specific packages
// register themselves via init() functions, and the force package selects
// the highest-priority kernel compatible with the detected CPU at runtime.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/internal/cpu"
)

// EpsilonSq is the squared-distance floor below which a neighbor pair is
// treated as coincident and contributes no separation force.
const EpsilonSq float32 = 0.0001

// Params holds the per-invocation tunables a kernel needs inside the
// neighbor loop. Radii that are only ever compared against squared
// distances are pre-squared by the caller.
type Params struct {
	SepRadius     float32 // multiplier on combined radii
	SepStrength   float32
	CohRadiusSq   float32
	AlignRadiusSq float32
	MinSpeedSq    float32
}

// Accum collects the raw per-unit sums produced by the neighbor loop.
// Finalization (separation clamp, centroid direction, heading average)
// happens once in the force package, shared by all kernel variants.
type Accum struct {
	SepX, SepY float32

	CohX, CohY float32
	CohN       float32

	AlignX, AlignY float32
	AlignN         float32
}

// AccumulateFn runs the neighbor loop for unit u over the given neighbor
// run, adding contributions into acc. The unit itself is known to be live;
// per-neighbor exclusion is the kernel's job.
type AccumulateFn func(buf *buffer.Buffer, u int, neighbors []uint32, p *Params, acc *Accum)

// OpEntry represents a registered kernel variant.
type OpEntry struct {
	// Name is a human-readable identifier (e.g. "generic", "sse2").
	Name string

	// SIMDLevel indicates the instruction set required for this variant.
	SIMDLevel cpu.SIMDLevel

	// Priority determines selection order when multiple compatible
	// variants exist. Higher wins. Suggested: generic 0, SSE2 10, NEON 15.
	Priority int

	// Accumulate is the neighbor-loop kernel.
	Accumulate AccumulateFn
}

// OpRegistry manages registration and lookup of kernel variants.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default registry instance used by the force package.
var Global = &OpRegistry{}

// Register adds a kernel variant. Typically called from init() functions in
// architecture-specific packages; all registrations should complete before
// the first Lookup.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority kernel compatible with the given CPU
// features, or nil if none is registered (which cannot happen while the
// generic fallback is linked in).
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// sortByPriority sorts entries by priority, descending. Caller holds the
// write lock. Insertion sort; the registry holds a handful of entries.
func (r *OpRegistry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of all registered entries. For tests and
// diagnostics.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

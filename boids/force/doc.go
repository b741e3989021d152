// Package force computes per-unit steering forces (separation, cohesion,
// alignment) over a [buffer.Buffer] and a [neighbor.List].
//
// ComputeForces is a pure function of its inputs: it zeroes the output
// columns and accumulates the three forces for every live unit, applying an
// identical exclusion filter in the lane-batched and scalar kernel paths.
// Kernel variants are selected once per process from the registry in
// internal/arch based on detected CPU features.
//
// The package performs no allocation, no locking and no I/O; a single
// invocation runs to completion on the calling goroutine.
package force

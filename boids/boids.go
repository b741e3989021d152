// Package boids bundles the attribute buffer, the neighbor index and the
// force engine behind a single Engine for callers that do not need the
// individual packages.
//
// The Engine owns its storage: allocate once with New, refill positions,
// velocities and neighbor references every tick, then call ComputeForces
// and read the force columns back from the Buffer. None of the methods
// allocate after construction.
package boids

import (
	"fmt"

	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/boids/force"
	"github.com/cwbudde/algo-steer/boids/neighbor"
)

// Engine couples a unit buffer with its neighbor index and the steering
// parameters applied on each force pass. Not safe for concurrent use; give
// each goroutine its own Engine.
type Engine struct {
	buf    *buffer.Buffer
	nl     *neighbor.List
	params force.Params
}

// Option configures an Engine during New.
type Option func(*Engine)

// WithParams replaces the default steering parameters.
func WithParams(p force.Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// New allocates an Engine for up to maxUnits units. Capacity is rounded up
// to a multiple of four by the underlying buffer.
func New(maxUnits int, opts ...Option) *Engine {
	buf := buffer.New(maxUnits)
	e := &Engine{
		buf:    buf,
		nl:     neighbor.New(buf.Capacity()),
		params: force.DefaultParams(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capacity returns the rounded unit capacity.
func (e *Engine) Capacity() int { return e.buf.Capacity() }

// UnitCount returns the active unit count.
func (e *Engine) UnitCount() int { return e.buf.Len() }

// SetUnitCount sets the active unit count. Panics if n exceeds Capacity.
func (e *Engine) SetUnitCount(n int) { e.buf.SetLen(n) }

// Buffer exposes the attribute columns for bulk filling and force readback.
func (e *Engine) Buffer() *buffer.Buffer { return e.buf }

// Neighbors exposes the neighbor index for per-tick refills.
func (e *Engine) Neighbors() *neighbor.List { return e.nl }

// Params returns the current steering parameters.
func (e *Engine) Params() force.Params { return e.params }

// SetSeparationParams sets the separation radius multiplier, strength and
// force cap.
func (e *Engine) SetSeparationParams(radius, strength, maxForce float32) {
	e.params.SeparationRadius = radius
	e.params.SeparationStrength = strength
	e.params.MaxSeparationForce = maxForce
}

// SetCohesionParams sets the cohesion radius and strength.
func (e *Engine) SetCohesionParams(radius, strength float32) {
	e.params.CohesionRadius = radius
	e.params.CohesionStrength = strength
}

// SetAlignmentParams sets the alignment radius and strength.
func (e *Engine) SetAlignmentParams(radius, strength float32) {
	e.params.AlignmentRadius = radius
	e.params.AlignmentStrength = strength
}

// SetMinMovingSpeed sets the speed below which a neighbor's heading is
// ignored by alignment.
func (e *Engine) SetMinMovingSpeed(speed float32) {
	e.params.MinMovingSpeed = speed
}

// SetNeighborTotal commits a bulk-filled neighbor sequence. The caller
// writes the flat sequence via Neighbors().Flat() and the per-unit
// offset/count tables, then declares the total length here.
func (e *Engine) SetNeighborTotal(total int) error {
	if err := e.nl.Commit(total); err != nil {
		return fmt.Errorf("boids: set neighbor total: %w", err)
	}
	return nil
}

// ComputeForces runs one force pass over the active units with the current
// parameters.
func (e *Engine) ComputeForces() {
	force.ComputeForces(e.buf, e.nl, e.params)
}

// Clear resets the active unit count and the neighbor index, retaining all
// storage.
func (e *Engine) Clear() {
	e.buf.Clear()
	e.nl.Clear()
}

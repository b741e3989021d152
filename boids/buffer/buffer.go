// Package buffer provides the Structure-of-Arrays attribute store for
// steering-force computation.
//
// Each unit attribute lives in its own contiguous array so that four
// consecutive units can be loaded as one 4-wide float32 lane group:
//
//	positions x:  [x0, x1, x2, x3, x4, ...]
//	positions y:  [y0, y1, y2, y3, y4, ...]
//	velocities x: [vx0, vx1, vx2, vx3, ...]
//
// Capacity is always rounded up to a multiple of 4 and every float32 column
// is aligned to a 16-byte boundary. Storage is allocated once at
// construction and never reallocates; per-tick reuse is a cheap length
// reset via Clear.
package buffer

import "unsafe"

const (
	// laneWidth is the number of float32 values per SIMD lane group.
	laneWidth = 4

	// laneAlign is the byte alignment required for lane loads (4 x float32).
	laneAlign = 16
)

// State classifies a unit for the force-engine exclusion filter.
type State uint8

const (
	// StateActive marks a unit that is processed normally.
	StateActive State = iota
	// StateDead marks a unit skipped entirely during computation.
	StateDead
	// StateFlying marks an airborne unit; interaction is still governed by
	// the layer column, the state exists for producers that mirror it there.
	StateFlying
	// StateGathering marks a unit that exerts no forces on neighbors.
	StateGathering
	// StateWorker marks a worker; worker pairs skip each other so they can
	// overlap at resource nodes.
	StateWorker
)

// Buffer is a fixed-capacity SoA store of per-unit attributes and the three
// computed force outputs.
//
// Input columns are written by the caller before each tick; output columns
// are written by the force engine and read back afterward. Column slices
// returned by the accessors alias the backing storage for the lifetime of
// the Buffer. A Buffer is not safe for concurrent use.
type Buffer struct {
	posX, posY []float32
	velX, velY []float32
	radius     []float32
	states     []State
	layers     []uint8

	sepX, sepY     []float32
	cohX, cohY     []float32
	alignX, alignY []float32

	count    int
	capacity int
}

// New allocates a Buffer for up to capacity units. Capacity is rounded up to
// the next multiple of 4; zero or negative requests yield the one-lane
// minimum of 4. All columns are zero-initialized.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	aligned := (capacity + laneWidth - 1) &^ (laneWidth - 1)

	return &Buffer{
		posX:     alignedFloat32(aligned),
		posY:     alignedFloat32(aligned),
		velX:     alignedFloat32(aligned),
		velY:     alignedFloat32(aligned),
		radius:   alignedFloat32(aligned),
		states:   make([]State, aligned),
		layers:   make([]uint8, aligned),
		sepX:     alignedFloat32(aligned),
		sepY:     alignedFloat32(aligned),
		cohX:     alignedFloat32(aligned),
		cohY:     alignedFloat32(aligned),
		alignX:   alignedFloat32(aligned),
		alignY:   alignedFloat32(aligned),
		capacity: aligned,
	}
}

// alignedFloat32 allocates a zeroed float32 slice of length n whose backing
// array starts on a 16-byte boundary. The only unsafe use in the package;
// raw pointers never escape.
func alignedFloat32(n int) []float32 {
	raw := make([]float32, n+laneWidth-1)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := 0
	if rem := int(addr % laneAlign); rem != 0 {
		off = (laneAlign - rem) / 4
	}
	return raw[off : off+n : off+n]
}

// Capacity returns the allocated unit capacity (always a multiple of 4).
func (b *Buffer) Capacity() int { return b.capacity }

// Len returns the current active unit count.
func (b *Buffer) Len() int { return b.count }

// SetLen declares the active unit count after the caller has populated the
// input columns for indices [0, n). Panics if n exceeds capacity.
func (b *Buffer) SetLen(n int) {
	if n < 0 || n > b.capacity {
		panic("buffer: active unit count exceeds capacity")
	}
	b.count = n
}

// Clear resets the active unit count to zero. Storage is retained, ready
// for immediate repopulation.
func (b *Buffer) Clear() { b.count = 0 }

// ResetForces zeroes all six output columns across the full capacity, so
// stale forces cannot leak into a shrinking unit count.
func (b *Buffer) ResetForces() {
	clear(b.sepX)
	clear(b.sepY)
	clear(b.cohX)
	clear(b.cohY)
	clear(b.alignX)
	clear(b.alignY)
}

// PositionsX returns the x position column.
func (b *Buffer) PositionsX() []float32 { return b.posX }

// PositionsY returns the y position column.
func (b *Buffer) PositionsY() []float32 { return b.posY }

// VelocitiesX returns the x velocity column.
func (b *Buffer) VelocitiesX() []float32 { return b.velX }

// VelocitiesY returns the y velocity column.
func (b *Buffer) VelocitiesY() []float32 { return b.velY }

// Radii returns the collision radius column.
func (b *Buffer) Radii() []float32 { return b.radius }

// States returns the unit state column.
func (b *Buffer) States() []State { return b.states }

// Layers returns the interaction layer column. Units only exert forces on
// units sharing their layer.
func (b *Buffer) Layers() []uint8 { return b.layers }

// SeparationX returns the separation force x output column.
func (b *Buffer) SeparationX() []float32 { return b.sepX }

// SeparationY returns the separation force y output column.
func (b *Buffer) SeparationY() []float32 { return b.sepY }

// CohesionX returns the cohesion force x output column.
func (b *Buffer) CohesionX() []float32 { return b.cohX }

// CohesionY returns the cohesion force y output column.
func (b *Buffer) CohesionY() []float32 { return b.cohY }

// AlignmentX returns the alignment force x output column.
func (b *Buffer) AlignmentX() []float32 { return b.alignX }

// AlignmentY returns the alignment force y output column.
func (b *Buffer) AlignmentY() []float32 { return b.alignY }

// SetUnit writes all input attributes of unit i in one call.
func (b *Buffer) SetUnit(i int, x, y, vx, vy, r float32, state State, layer uint8) {
	b.posX[i] = x
	b.posY[i] = y
	b.velX[i] = vx
	b.velY[i] = vy
	b.radius[i] = r
	b.states[i] = state
	b.layers[i] = layer
}

// SeparationForce returns the computed separation force of unit i.
func (b *Buffer) SeparationForce(i int) (x, y float32) {
	return b.sepX[i], b.sepY[i]
}

// CohesionForce returns the computed cohesion force of unit i.
func (b *Buffer) CohesionForce(i int) (x, y float32) {
	return b.cohX[i], b.cohY[i]
}

// AlignmentForce returns the computed alignment force of unit i.
func (b *Buffer) AlignmentForce(i int) (x, y float32) {
	return b.alignX[i], b.alignY[i]
}

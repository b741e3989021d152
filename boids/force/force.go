package force

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/registry"
	"github.com/cwbudde/algo-steer/boids/neighbor"
	"github.com/cwbudde/algo-steer/internal/cpu"
)

// directionFloor guards the post-loop normalizations: centroid pulls and
// averaged headings shorter than this yield no force, keeping the direction
// numerically stable.
const directionFloor float32 = 0.1

var (
	accumImpl     registry.AccumulateFn
	accumName     string
	accumInitOnce sync.Once
)

func initAccumulateKernel() {
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("force: no accumulation kernel registered (missing generic fallback?)")
	}

	if entry.Accumulate == nil {
		panic("force: selected kernel missing Accumulate")
	}

	accumImpl = entry.Accumulate
	accumName = entry.Name
}

// KernelName reports which kernel variant serves ComputeForces on this CPU
// ("generic", "sse2", "neon").
func KernelName() string {
	accumInitOnce.Do(initAccumulateKernel)
	return accumName
}

// ComputeForces computes separation, cohesion and alignment forces for all
// active units in buf and writes them to the buffer's output columns.
// A no-op when the active count is zero; otherwise the outputs are reset
// first, so indices at and beyond the active count read as zero.
//
// nl must describe at least buf.Len() units with every neighbor reference
// below buf.Capacity(); this is the caller's contract, checked only by the
// slice bounds. Zero-alloc.
func ComputeForces(buf *buffer.Buffer, nl *neighbor.List, p Params) {
	count := buf.Len()
	if count == 0 {
		return
	}

	accumInitOnce.Do(initAccumulateKernel)

	buf.ResetForces()

	kp := registry.Params{
		SepRadius:     p.SeparationRadius,
		SepStrength:   p.SeparationStrength,
		CohRadiusSq:   p.CohesionRadius * p.CohesionRadius,
		AlignRadiusSq: p.AlignmentRadius * p.AlignmentRadius,
		MinSpeedSq:    p.MinMovingSpeed * p.MinMovingSpeed,
	}

	states := buf.States()
	for u := 0; u < count; u++ {
		if states[u] == buffer.StateDead {
			continue
		}

		var acc registry.Accum
		accumImpl(buf, u, nl.Of(u), &kp, &acc)
		finalize(buf, u, &p, &acc)
	}
}

// finalize turns the raw neighbor-loop sums of one unit into output forces.
// Shared by all kernel variants.
func finalize(buf *buffer.Buffer, u int, p *Params, acc *registry.Accum) {
	// Separation: clamp the summed vector to the force cap, preserving
	// direction.
	sx, sy := acc.SepX, acc.SepY
	magSq := sx*sx + sy*sy
	if maxF := p.MaxSeparationForce; magSq > maxF*maxF {
		scale := maxF / math32.Sqrt(magSq)
		sx *= scale
		sy *= scale
	}
	buf.SeparationX()[u] = sx
	buf.SeparationY()[u] = sy

	// Cohesion: unit direction toward the neighbor centroid.
	if acc.CohN > 0 {
		cx := acc.CohX / acc.CohN
		cy := acc.CohY / acc.CohN
		tx := cx - buf.PositionsX()[u]
		ty := cy - buf.PositionsY()[u]
		dist := math32.Sqrt(tx*tx + ty*ty)
		if dist > directionFloor {
			buf.CohesionX()[u] = tx / dist * p.CohesionStrength
			buf.CohesionY()[u] = ty / dist * p.CohesionStrength
		}
	}

	// Alignment: renormalized average of the accumulated headings.
	if acc.AlignN > 0 {
		avx := acc.AlignX / acc.AlignN
		avy := acc.AlignY / acc.AlignN
		mag := math32.Sqrt(avx*avx + avy*avy)
		if mag > directionFloor {
			buf.AlignmentX()[u] = avx / mag * p.AlignmentStrength
			buf.AlignmentY()[u] = avy / mag * p.AlignmentStrength
		}
	}
}

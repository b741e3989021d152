// Package lane4 provides the 4-wide lane kernel for force accumulation.
//
// Neighbors are processed in batches of 4. Every lane evaluates the same
// sequence of operations; the exclusion filter and the per-force range
// tests are lowered to 0/1 float masks combined by multiplication, the pure
// Go equivalent of an all-ones/all-zeros bitwise select. Lane accumulators
// are reduced with a horizontal add after the batch loop and any remaining
// 1-3 neighbors run through the scalar reference kernel, so batched and
// unbatched results agree up to floating-point summation order.
//
// The fixed-trip lane loops compile to straight-line code the compiler can
// auto-vectorize on SSE2/NEON targets.
package lane4

import (
	"github.com/chewxy/math32"

	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/generic"
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/registry"
)

// laneWidth is the number of parallel computation slots per batch.
const laneWidth = 4

// vec is one 4-wide group of float32 lanes.
type vec [laneWidth]float32

// Accumulate runs the neighbor loop for unit u in 4-wide batches with a
// scalar tail.
func Accumulate(buf *buffer.Buffer, u int, neighbors []uint32, p *registry.Params, acc *registry.Accum) {
	posX, posY := buf.PositionsX(), buf.PositionsY()
	velX, velY := buf.VelocitiesX(), buf.VelocitiesY()
	radius := buf.Radii()
	states, layers := buf.States(), buf.Layers()

	ux, uy := posX[u], posY[u]
	ur := radius[u]
	uState, uLayer := states[u], layers[u]

	batched := len(neighbors) &^ (laneWidth - 1)

	var (
		sepX, sepY       vec
		cohX, cohY, cohN vec
		alX, alY, alN    vec
	)

	for base := 0; base < batched; base += laneWidth {
		// Exclusion filter, one boolean predicate per lane.
		var idx [laneWidth]int
		var valid vec
		for l := 0; l < laneWidth; l++ {
			ni := int(neighbors[base+l])
			idx[l] = ni
			if generic.ValidNeighbor(states, layers, u, ni, uState, uLayer) {
				valid[l] = 1
			}
		}

		// Gather neighbor attributes into lanes.
		var nx, ny, nr vec
		for l := 0; l < laneWidth; l++ {
			nx[l] = posX[idx[l]]
			ny[l] = posY[idx[l]]
			nr[l] = radius[idx[l]]
		}

		var dx, dy, distSq vec
		for l := 0; l < laneWidth; l++ {
			dx[l] = ux - nx[l]
			dy[l] = uy - ny[l]
			distSq[l] = dx[l]*dx[l] + dy[l]*dy[l]
		}

		// Separation: in range when distSq is below the squared combined
		// radius range and above the coincidence floor.
		for l := 0; l < laneWidth; l++ {
			sepDist := (ur + nr[l]) * p.SepRadius
			m := valid[l] * ltMask(distSq[l], sepDist*sepDist) * gtMask(distSq[l], registry.EpsilonSq)

			// Floored denominators keep masked-out lanes finite; a lane
			// with sepDist below the floor never passes the range test.
			dist := math32.Sqrt(maxf(distSq[l], registry.EpsilonSq))
			strength := p.SepStrength * (1 - dist/maxf(sepDist, registry.EpsilonSq))
			sepX[l] += dx[l] / dist * strength * m
			sepY[l] += dy[l] / dist * strength * m
		}

		// Cohesion: accumulate positions for the centroid.
		for l := 0; l < laneWidth; l++ {
			m := valid[l] * ltMask(distSq[l], p.CohRadiusSq)
			cohX[l] += nx[l] * m
			cohY[l] += ny[l] * m
			cohN[l] += m
		}

		// Alignment: accumulate unit-length headings of moving neighbors.
		var nvx, nvy vec
		for l := 0; l < laneWidth; l++ {
			nvx[l] = velX[idx[l]]
			nvy[l] = velY[idx[l]]
		}
		for l := 0; l < laneWidth; l++ {
			speedSq := nvx[l]*nvx[l] + nvy[l]*nvy[l]
			m := valid[l] * ltMask(distSq[l], p.AlignRadiusSq) * gtMask(speedSq, p.MinSpeedSq)

			// Masked-out lanes divide by 1 instead of a possibly zero
			// speed; included lanes see the exact value.
			speed := math32.Sqrt(speedSq*m + (1 - m))
			alX[l] += nvx[l] / speed * m
			alY[l] += nvy[l] / speed * m
			alN[l] += m
		}
	}

	// Horizontal reduction of the lane accumulators.
	acc.SepX += hsum(sepX)
	acc.SepY += hsum(sepY)
	acc.CohX += hsum(cohX)
	acc.CohY += hsum(cohY)
	acc.CohN += hsum(cohN)
	acc.AlignX += hsum(alX)
	acc.AlignY += hsum(alY)
	acc.AlignN += hsum(alN)

	// Scalar tail for the remaining 0-3 neighbors.
	generic.Accumulate(buf, u, neighbors[batched:], p, acc)
}

// hsum reduces a lane group to a scalar, pairing opposite lanes first.
func hsum(v vec) float32 {
	return (v[0] + v[2]) + (v[1] + v[3])
}

// ltMask returns 1 when a < b, else 0.
func ltMask(a, b float32) float32 {
	if a < b {
		return 1
	}
	return 0
}

// gtMask returns 1 when a > b, else 0.
func gtMask(a, b float32) float32 {
	if a > b {
		return 1
	}
	return 0
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

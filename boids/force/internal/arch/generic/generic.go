// Package generic provides the pure Go reference kernel for force
// accumulation. It is the baseline every SIMD variant must match up to
// floating-point summation order, and the scalar tail used by the lane
// kernel for neighbor counts not divisible by the lane width.
package generic

import (
	"github.com/chewxy/math32"

	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/registry"
)

// ValidNeighbor reports whether neighbor n contributes any force to unit u.
// The filter gates all three accumulators: self-pairs, dead units, layer
// mismatches, worker-worker pairs and gathering units are excluded.
func ValidNeighbor(states []buffer.State, layers []uint8, u, n int, uState buffer.State, uLayer uint8) bool {
	if n == u {
		return false
	}

	nState := states[n]
	if nState == buffer.StateDead {
		return false
	}
	if layers[n] != uLayer {
		return false
	}
	// Workers ignore each other so they can stack at resource nodes.
	if uState == buffer.StateWorker && nState == buffer.StateWorker {
		return false
	}
	// Gathering units exert no forces.
	if nState == buffer.StateGathering {
		return false
	}

	return true
}

// Accumulate is the reference per-neighbor loop.
func Accumulate(buf *buffer.Buffer, u int, neighbors []uint32, p *registry.Params, acc *registry.Accum) {
	posX, posY := buf.PositionsX(), buf.PositionsY()
	velX, velY := buf.VelocitiesX(), buf.VelocitiesY()
	radius := buf.Radii()
	states, layers := buf.States(), buf.Layers()

	ux, uy := posX[u], posY[u]
	ur := radius[u]
	uState, uLayer := states[u], layers[u]

	for _, nj := range neighbors {
		n := int(nj)
		if !ValidNeighbor(states, layers, u, n, uState, uLayer) {
			continue
		}

		nx, ny := posX[n], posY[n]
		dx, dy := ux-nx, uy-ny
		distSq := dx*dx + dy*dy

		// Separation: push apart within the combined-radius range.
		sepDist := (ur + radius[n]) * p.SepRadius
		if distSq < sepDist*sepDist && distSq > registry.EpsilonSq {
			dist := math32.Sqrt(distSq)
			strength := p.SepStrength * (1 - dist/sepDist)
			acc.SepX += dx / dist * strength
			acc.SepY += dy / dist * strength
		}

		// Cohesion: gather positions for the centroid.
		if distSq < p.CohRadiusSq {
			acc.CohX += nx
			acc.CohY += ny
			acc.CohN++
		}

		// Alignment: gather unit-length headings of moving neighbors.
		if distSq < p.AlignRadiusSq {
			nvx, nvy := velX[n], velY[n]
			speedSq := nvx*nvx + nvy*nvy
			if speedSq > p.MinSpeedSq {
				speed := math32.Sqrt(speedSq)
				acc.AlignX += nvx / speed
				acc.AlignY += nvy / speed
				acc.AlignN++
			}
		}
	}
}

//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/lane4"
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/registry"
	"github.com/cwbudde/algo-steer/internal/cpu"
)

// init registers the 4-wide lane kernel for SSE2-capable CPUs.
//
// The kernel is straight-line Go over fixed 4-lane groups, matching the
// 128-bit register width; the compiler vectorizes the lane loops.
// TODO: replace with an explicit SSE2 asm kernel once the gather layout
// settles.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "sse2",
		SIMDLevel:  cpu.SIMDSSE2,
		Priority:   10,
		Accumulate: lane4.Accumulate,
	})
}

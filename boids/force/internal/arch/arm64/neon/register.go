//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/lane4"
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/registry"
	"github.com/cwbudde/algo-steer/internal/cpu"
)

// init registers the 4-wide lane kernel for NEON-capable CPUs. NEON is
// mandatory on ARMv8, so this entry is effectively always selected on arm64.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "neon",
		SIMDLevel:  cpu.SIMDNEON,
		Priority:   15,
		Accumulate: lane4.Accumulate,
	})
}

package generic

import (
	"github.com/cwbudde/algo-steer/boids/force/internal/arch/registry"
	"github.com/cwbudde/algo-steer/internal/cpu"
)

// init registers the generic (pure Go scalar) kernel.
//
// Priority 0: used only when no SIMD variants are available or when
// ForceGeneric is enabled for testing.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "generic",
		SIMDLevel:  cpu.SIMDNone,
		Priority:   0,
		Accumulate: Accumulate,
	})
}

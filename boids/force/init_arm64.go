//go:build arm64 && !purego

package force

// This file imports arm64-specific kernel packages to trigger their init()
// functions, which register kernels with the global registry.

import (
	// Generic kernel (pure Go fallback)
	_ "github.com/cwbudde/algo-steer/boids/force/internal/arch/generic"

	// ARM64 kernels
	_ "github.com/cwbudde/algo-steer/boids/force/internal/arch/arm64/neon"
)

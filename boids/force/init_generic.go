//go:build (!amd64 && !arm64) || purego

package force

// This file imports only the generic kernel for architectures without a
// SIMD variant and for purego builds.

import (
	_ "github.com/cwbudde/algo-steer/boids/force/internal/arch/generic"
)

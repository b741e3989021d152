package force

// Params holds the per-invocation force tunables. The zero value disables
// every force; start from DefaultParams.
type Params struct {
	// SeparationRadius scales the push-apart range: two units separate when
	// closer than (radius(u)+radius(n)) * SeparationRadius. The combined
	// radius is always part of the product; there is no flat minimum range.
	SeparationRadius float32

	// SeparationStrength scales the push-apart force.
	SeparationStrength float32

	// MaxSeparationForce caps the magnitude of the summed separation force.
	// The cap rescales uniformly, preserving direction.
	MaxSeparationForce float32

	// CohesionRadius is the distance within which a neighbor pulls the unit
	// toward the local centroid.
	CohesionRadius float32

	// CohesionStrength scales the centroid pull.
	CohesionStrength float32

	// AlignmentRadius is the distance within which a neighbor's heading is
	// matched.
	AlignmentRadius float32

	// AlignmentStrength scales the heading-matching force.
	AlignmentStrength float32

	// MinMovingSpeed is the speed below which a neighbor is ignored for
	// alignment.
	MinMovingSpeed float32
}

// DefaultParams returns the RTS-tuned defaults.
func DefaultParams() Params {
	return Params{
		SeparationRadius:   1.0,
		SeparationStrength: 1.5,
		MaxSeparationForce: 1.5,

		CohesionRadius:   8.0,
		CohesionStrength: 0.1,

		AlignmentRadius:   4.0,
		AlignmentStrength: 0.3,

		MinMovingSpeed: 0.1,
	}
}

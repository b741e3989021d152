package force_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/boids/force"
	"github.com/cwbudde/algo-steer/boids/neighbor"
)

func closeEnough(got, want, tol float32) bool {
	return math.Abs(float64(got-want)) <= float64(tol)
}

// pair builds two units that are each other's sole neighbor.
func pair(t *testing.T, a, b [7]float32, aState, bState buffer.State, aLayer, bLayer uint8) (*buffer.Buffer, *neighbor.List) {
	t.Helper()

	buf := buffer.New(4)
	buf.SetUnit(0, a[0], a[1], a[2], a[3], a[4], aState, aLayer)
	buf.SetUnit(1, b[0], b[1], b[2], b[3], b[4], bState, bLayer)
	buf.SetLen(2)

	nl := neighbor.New(4)
	nl.Begin(0)
	nl.Add(0, 1)
	nl.Begin(1)
	nl.Add(1, 0)
	nl.Begin(2)
	nl.Begin(3)

	return buf, nl
}

func TestSeparationPushesApart(t *testing.T) {
	buf, nl := pair(t,
		[7]float32{0, 0, 0, 0, 0.5}, [7]float32{0.5, 0, 0, 0, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	force.ComputeForces(buf, nl, force.DefaultParams())

	sx0, sy0 := buf.SeparationForce(0)
	if sx0 >= 0 {
		t.Errorf("unit 0 separation x = %v, want negative", sx0)
	}
	if math.Abs(float64(sy0)) >= 0.01 {
		t.Errorf("unit 0 separation y = %v, want |y| < 0.01", sy0)
	}

	sx1, sy1 := buf.SeparationForce(1)
	if sx1 <= 0 {
		t.Errorf("unit 1 separation x = %v, want positive", sx1)
	}
	if math.Abs(float64(sy1)) >= 0.01 {
		t.Errorf("unit 1 separation y = %v, want |y| < 0.01", sy1)
	}
}

func TestSeparationEqualAndOpposite(t *testing.T) {
	buf, nl := pair(t,
		[7]float32{1.25, -0.5, 0, 0, 0.5}, [7]float32{1.5, 0.25, 0, 0, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	force.ComputeForces(buf, nl, force.DefaultParams())

	sx0, sy0 := buf.SeparationForce(0)
	sx1, sy1 := buf.SeparationForce(1)

	if !closeEnough(sx0, -sx1, 1e-6) || !closeEnough(sy0, -sy1, 1e-6) {
		t.Fatalf("separation not equal and opposite: (%v,%v) vs (%v,%v)", sx0, sy0, sx1, sy1)
	}
	if sx0 == 0 && sy0 == 0 {
		t.Fatal("expected nonzero separation for overlapping units")
	}
}

func TestCohesionPullsTowardCentroid(t *testing.T) {
	buf, nl := pair(t,
		[7]float32{0, 0, 0, 0, 0.5}, [7]float32{5, 0, 0, 0, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	p := force.DefaultParams()
	force.ComputeForces(buf, nl, p)

	cx, cy := buf.CohesionForce(0)
	if !closeEnough(cx, p.CohesionStrength, 1e-5) {
		t.Errorf("cohesion x = %v, want ~%v", cx, p.CohesionStrength)
	}
	if math.Abs(float64(cy)) >= 0.01 {
		t.Errorf("cohesion y = %v, want ~0", cy)
	}
}

func TestAlignmentMatchesHeading(t *testing.T) {
	buf, nl := pair(t,
		[7]float32{0, 0, 0, 0, 0.5}, [7]float32{2, 0, 0, 1, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	p := force.DefaultParams()
	force.ComputeForces(buf, nl, p)

	ax, ay := buf.AlignmentForce(0)
	if math.Abs(float64(ax)) >= 0.01 {
		t.Errorf("alignment x = %v, want ~0", ax)
	}
	if !closeEnough(ay, p.AlignmentStrength, 1e-5) {
		t.Errorf("alignment y = %v, want ~%v", ay, p.AlignmentStrength)
	}
}

func TestAlignmentIgnoresSlowNeighbors(t *testing.T) {
	// Neighbor crawls below MinMovingSpeed; no heading to match.
	buf, nl := pair(t,
		[7]float32{0, 0, 0, 0, 0.5}, [7]float32{2, 0, 0, 0.05, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	force.ComputeForces(buf, nl, force.DefaultParams())

	ax, ay := buf.AlignmentForce(0)
	if ax != 0 || ay != 0 {
		t.Fatalf("alignment = (%v,%v), want zero for slow neighbor", ax, ay)
	}
}

func TestExcludedNeighborsContributeNothing(t *testing.T) {
	cases := []struct {
		name           string
		uState, nState buffer.State
		uLayer, nLayer uint8
	}{
		{name: "dead neighbor", uState: buffer.StateActive, nState: buffer.StateDead},
		{name: "different layer", uState: buffer.StateActive, nState: buffer.StateActive, nLayer: 1},
		{name: "worker pair", uState: buffer.StateWorker, nState: buffer.StateWorker},
		{name: "gathering neighbor", uState: buffer.StateActive, nState: buffer.StateGathering},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Neighbor close, moving, and inside every radius: it would
			// contribute to all three forces if not excluded.
			buf, nl := pair(t,
				[7]float32{0, 0, 0, 0, 0.5}, [7]float32{0.5, 0, 0, 1, 0.5},
				tc.uState, tc.nState, tc.uLayer, tc.nLayer)

			force.ComputeForces(buf, nl, force.DefaultParams())

			sx, sy := buf.SeparationForce(0)
			cx, cy := buf.CohesionForce(0)
			ax, ay := buf.AlignmentForce(0)
			if sx != 0 || sy != 0 || cx != 0 || cy != 0 || ax != 0 || ay != 0 {
				t.Fatalf("excluded neighbor produced forces: sep(%v,%v) coh(%v,%v) align(%v,%v)",
					sx, sy, cx, cy, ax, ay)
			}
		})
	}
}

func TestDeadUnitGetsNoForces(t *testing.T) {
	buf, nl := pair(t,
		[7]float32{0, 0, 0, 0, 0.5}, [7]float32{0.5, 0, 0, 1, 0.5},
		buffer.StateDead, buffer.StateActive, 0, 0)

	force.ComputeForces(buf, nl, force.DefaultParams())

	sx, sy := buf.SeparationForce(0)
	if sx != 0 || sy != 0 {
		t.Fatalf("dead unit received separation (%v,%v)", sx, sy)
	}
}

func TestSeparationCap(t *testing.T) {
	// Crowd a unit with near-coincident neighbors so the raw sum far
	// exceeds the cap.
	buf := buffer.New(12)
	buf.SetUnit(0, 0, 0, 0, 0, 0.5, buffer.StateActive, 0)
	for i := 1; i < 12; i++ {
		angle := float64(i) * 2 * math.Pi / 11
		x := float32(0.05 * math.Cos(angle))
		y := float32(0.05 * math.Sin(angle))
		buf.SetUnit(i, x, y, 0, 0, 0.5, buffer.StateActive, 0)
	}
	buf.SetLen(12)

	nl := neighbor.New(12)
	for u := 0; u < 12; u++ {
		nl.Begin(u)
	}
	for i := 1; i < 12; i++ {
		nl.Add(0, uint32(i))
	}

	p := force.DefaultParams()
	force.ComputeForces(buf, nl, p)

	sx, sy := buf.SeparationForce(0)
	mag := math.Hypot(float64(sx), float64(sy))
	if mag > float64(p.MaxSeparationForce)+1e-5 {
		t.Fatalf("separation magnitude %v exceeds cap %v", mag, p.MaxSeparationForce)
	}
}

func TestZeroActiveCountIsNoOp(t *testing.T) {
	buf := buffer.New(4)
	nl := neighbor.New(4)

	buf.ResetForces()
	force.ComputeForces(buf, nl, force.DefaultParams())

	for i := 0; i < buf.Capacity(); i++ {
		sx, sy := buf.SeparationForce(i)
		cx, cy := buf.CohesionForce(i)
		ax, ay := buf.AlignmentForce(i)
		if sx != 0 || sy != 0 || cx != 0 || cy != 0 || ax != 0 || ay != 0 {
			t.Fatalf("unit %d has forces after zero-count compute", i)
		}
	}
}

func TestCoincidentUnitsYieldZeroSeparation(t *testing.T) {
	// Exactly coincident units fall under the squared-distance floor.
	buf, nl := pair(t,
		[7]float32{1, 1, 0, 0, 0.5}, [7]float32{1, 1, 0, 0, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	force.ComputeForces(buf, nl, force.DefaultParams())

	sx, sy := buf.SeparationForce(0)
	if sx != 0 || sy != 0 {
		t.Fatalf("coincident pair produced separation (%v,%v)", sx, sy)
	}
}

func TestStaleForcesClearedOnShrink(t *testing.T) {
	buf, nl := pair(t,
		[7]float32{0, 0, 0, 0, 0.5}, [7]float32{0.5, 0, 0, 0, 0.5},
		buffer.StateActive, buffer.StateActive, 0, 0)

	force.ComputeForces(buf, nl, force.DefaultParams())
	if sx, _ := buf.SeparationForce(1); sx == 0 {
		t.Fatal("expected nonzero separation before shrink")
	}

	// Shrink to one unit with no neighbors; unit 1's old force must not
	// survive the next pass.
	buf.SetLen(1)
	nl.Clear()
	nl.Begin(0)
	force.ComputeForces(buf, nl, force.DefaultParams())

	if sx, sy := buf.SeparationForce(1); sx != 0 || sy != 0 {
		t.Fatalf("stale separation (%v,%v) on shrunk unit", sx, sy)
	}
}

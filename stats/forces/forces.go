// Package forces computes summary statistics over one force column pair,
// typically for per-tick diagnostics of a steering pass.
package forces

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds magnitude statistics of a force field.
type Stats struct {
	Length  int
	Mean    float64
	RMS     float64
	Max     float64
	MaxPos  int
	Min     float64
	MinPos  int
	Energy  float64 // sum of squared magnitudes
	NonZero int     // units with a nonzero force vector
}

// scratchBuf holds pooled scratch memory for float32-to-float64 widening.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (x, y, mag []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Calculate computes magnitude statistics over the force vectors
// (fx[i], fy[i]). The slices must be equal length. Scratch buffers are
// pooled internally, so in steady state this does not allocate.
func Calculate(fx, fy []float32) Stats {
	n := len(fx)
	if n == 0 {
		return Stats{}
	}
	if len(fy) != n {
		panic("forces: column length mismatch")
	}

	x, y, mag, buf := getScratch(n)
	for i := 0; i < n; i++ {
		x[i] = float64(fx[i])
		y[i] = float64(fy[i])
	}

	vecmath.Magnitude(mag, x, y)

	s := Stats{
		Length: n,
		Max:    mag[0],
		Min:    mag[0],
	}

	var sum, sumSq float64
	for i, m := range mag {
		sum += m
		sumSq += m * m

		if m > s.Max {
			s.Max = m
			s.MaxPos = i
		}
		if m < s.Min {
			s.Min = m
			s.MinPos = i
		}
		if m != 0 {
			s.NonZero++
		}
	}
	putScratch(buf)

	s.Mean = sum / float64(n)
	s.RMS = math.Sqrt(sumSq / float64(n))
	s.Energy = sumSq

	return s
}

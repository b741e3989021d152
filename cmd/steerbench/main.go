// Command steerbench exercises the steering pipeline on a synthetic swarm
// and prints per-tick timing and force-field statistics.
//
// Usage:
//
//	steerbench [flags]
//
// Examples:
//
//	steerbench -units 4096 -ticks 200
//	steerbench -units 1024 -radius 6 -seed 7
//	steerbench -units 8192 -cpuprofile
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pkg/profile"

	"github.com/cwbudde/algo-steer/boids"
	"github.com/cwbudde/algo-steer/boids/buffer"
	"github.com/cwbudde/algo-steer/boids/force"
	"github.com/cwbudde/algo-steer/stats/forces"
)

func main() {
	var (
		units      = flag.Int("units", 1024, "number of units in the swarm")
		ticks      = flag.Int("ticks", 100, "number of force passes to run")
		radius     = flag.Float64("radius", 8, "neighbor search radius (world units)")
		seed       = flag.Int64("seed", 1, "seed for the synthetic swarm")
		cpuprofile = flag.Bool("cpuprofile", false, "write cpu.pprof to the working directory")
		memprofile = flag.Bool("memprofile", false, "write mem.pprof to the working directory")
	)
	flag.Parse()

	if *units <= 0 || *ticks <= 0 {
		fmt.Fprintln(os.Stderr, "steerbench: -units and -ticks must be positive")
		os.Exit(2)
	}

	switch {
	case *cpuprofile:
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case *memprofile:
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	run(*units, *ticks, float32(*radius), *seed)
}

// worldSide sizes the square world so density stays constant as the swarm
// grows, keeping neighbor fan-out roughly unit-count independent.
func worldSide(units int) float32 {
	return float32(math.Sqrt(float64(units))) * 4
}

func run(units, ticks int, radius float32, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	e := boids.New(units)

	side := worldSide(units)
	buf := e.Buffer()
	for i := 0; i < units; i++ {
		buf.SetUnit(i,
			rng.Float32()*side, rng.Float32()*side,
			rng.Float32()*2-1, rng.Float32()*2-1,
			0.3+rng.Float32()*0.4,
			buffer.StateActive, 0)
	}
	e.SetUnitCount(units)

	var (
		total    time.Duration
		best     = time.Duration(math.MaxInt64)
		fanout   int
		findTime time.Duration
	)

	for tick := 0; tick < ticks; tick++ {
		start := time.Now()
		fanout = fillNeighbors(e, radius)
		findTime += time.Since(start)

		start = time.Now()
		e.ComputeForces()
		elapsed := time.Since(start)

		total += elapsed
		if elapsed < best {
			best = elapsed
		}
	}

	sep := forces.Calculate(buf.SeparationX()[:units], buf.SeparationY()[:units])
	coh := forces.Calculate(buf.CohesionX()[:units], buf.CohesionY()[:units])
	align := forces.Calculate(buf.AlignmentX()[:units], buf.AlignmentY()[:units])

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "kernel\t%s\n", force.KernelName())
	fmt.Fprintf(w, "units\t%d\n", units)
	fmt.Fprintf(w, "ticks\t%d\n", ticks)
	fmt.Fprintf(w, "avg neighbors\t%.1f\n", float64(fanout)/float64(units))
	fmt.Fprintf(w, "neighbor fill\t%v/tick\n", findTime/time.Duration(ticks))
	fmt.Fprintf(w, "force pass\t%v/tick (best %v)\n", total/time.Duration(ticks), best)
	fmt.Fprintf(w, "units/s\t%.0f\n", float64(units)*float64(ticks)/total.Seconds())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "force\tmean\trms\tmax\tnonzero")
	fmt.Fprintf(w, "separation\t%.4f\t%.4f\t%.4f\t%d\n", sep.Mean, sep.RMS, sep.Max, sep.NonZero)
	fmt.Fprintf(w, "cohesion\t%.4f\t%.4f\t%.4f\t%d\n", coh.Mean, coh.RMS, coh.Max, coh.NonZero)
	fmt.Fprintf(w, "alignment\t%.4f\t%.4f\t%.4f\t%d\n", align.Mean, align.RMS, align.Max, align.NonZero)
	w.Flush()
}

// fillNeighbors rebuilds the neighbor index with a brute-force range query
// and returns the total reference count.
func fillNeighbors(e *boids.Engine, radius float32) int {
	buf := e.Buffer()
	nl := e.Neighbors()
	posX, posY := buf.PositionsX(), buf.PositionsY()
	units := e.UnitCount()
	radiusSq := radius * radius

	nl.Clear()
	for u := 0; u < units; u++ {
		nl.Begin(u)
		ux, uy := posX[u], posY[u]
		for n := 0; n < units; n++ {
			if n == u {
				continue
			}
			dx, dy := posX[n]-ux, posY[n]-uy
			if dx*dx+dy*dy <= radiusSq {
				nl.Add(u, uint32(n))
			}
		}
	}
	return nl.Total()
}

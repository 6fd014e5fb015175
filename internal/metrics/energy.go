package metrics

import (
	"math"

	"github.com/san-kum/softgrid/internal/softbody"
)

// EnergyDrift tracks the worst relative deviation of total grid energy from
// the first observed value. A healthy damped run never drifts upward; drift
// here is the classic symptom of an unstable timestep.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(g *softbody.Grid, t float64) {
	energy := g.Energy()

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	} else {
		// A grid that starts at rest has zero energy; report absolute
		// growth instead of a meaningless ratio.
		e.maxDrift = math.Max(e.maxDrift, math.Abs(energy))
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

package sim

import "github.com/san-kum/softgrid/internal/softbody"

// ForceSource supplies the external force for one physics step. The force is
// sampled exactly once per step and applied to the bottom row of the grid.
type ForceSource interface {
	Force(t float64) softbody.Vec3
}

// ForceFunc adapts a plain function to a ForceSource.
type ForceFunc func(t float64) softbody.Vec3

func (f ForceFunc) Force(t float64) softbody.Vec3 { return f(t) }

// Zero is a ForceSource that never pushes.
var Zero = ForceFunc(func(float64) softbody.Vec3 { return softbody.Vec3{} })

// Metric observes the grid once per step and reduces to a single value.
type Metric interface {
	Name() string
	Observe(g *softbody.Grid, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed physics step.
type Observer interface {
	OnStep(g *softbody.Grid, external softbody.Vec3, t float64)
}

// Config drives a headless batch run.
type Config struct {
	Dt       float64
	Duration float64
	// SampleEvery records a position snapshot every n-th step; 0 means 1.
	SampleEvery int
}

// Result holds sampled trajectories and final metric values from a run.
type Result struct {
	Positions  [][]softbody.Vec3
	Forces     []softbody.Vec3
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

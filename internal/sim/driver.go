package sim

import "fmt"

const (
	// DefaultStep is the fixed physics timestep.
	DefaultStep = 0.012

	// DefaultMaxElapsed bounds how much wall-clock time a single tick may
	// bank, so a long stall cannot trigger an unbounded burst of catch-up
	// steps.
	DefaultMaxElapsed = 0.25
)

// Driver converts variable real-time ticks into fixed-size physics steps.
// It banks elapsed time in an accumulator and pays it out in Step quanta.
type Driver struct {
	Step       float64
	MaxElapsed float64

	lastTime    float64
	accumulator float64
}

// NewDriver validates the step sizes. MaxElapsed below Step would make the
// driver unable to ever run a step.
func NewDriver(step, maxElapsed float64) (*Driver, error) {
	if step <= 0 {
		return nil, fmt.Errorf("sim: physics step must be positive, got %g", step)
	}
	if maxElapsed < step {
		return nil, fmt.Errorf("sim: max elapsed %g is below the physics step %g", maxElapsed, step)
	}
	return &Driver{Step: step, MaxElapsed: maxElapsed}, nil
}

// Advance consumes wall-clock time up to now and returns how many fixed
// steps are owed. Elapsed time at or under one step returns zero without
// touching the accumulator; anything longer is clamped to MaxElapsed first.
// Clamping is a silent correction, not an error.
func (d *Driver) Advance(now float64) int {
	elapsed := now - d.lastTime
	if elapsed <= d.Step {
		return 0
	}
	d.lastTime = now

	if elapsed > d.MaxElapsed {
		elapsed = d.MaxElapsed
	}
	d.accumulator += elapsed

	steps := 0
	for d.accumulator >= d.Step {
		d.accumulator -= d.Step
		steps++
	}
	return steps
}

// Reset rebases the driver at now and drops any banked time.
func (d *Driver) Reset(now float64) {
	d.lastTime = now
	d.accumulator = 0
}

// Pending returns the currently banked time, below one step by construction.
func (d *Driver) Pending() float64 {
	return d.accumulator
}

package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/softgrid/internal/softbody"
)

// Simulator owns the grid and sequences force accumulation, integration and
// observation. It is the single writer of point-mass state: input sampling,
// the force sweep, integration and render snapshots happen in strict order,
// so no locking is needed.
type Simulator struct {
	grid      *softbody.Grid
	driver    *Driver
	source    ForceSource
	metrics   []Metric
	observers []Observer
	t         float64
}

func New(grid *softbody.Grid, driver *Driver, source ForceSource) *Simulator {
	if source == nil {
		source = Zero
	}
	return &Simulator{grid: grid, driver: driver, source: source}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Grid exposes the lattice for read-only consumers.
func (s *Simulator) Grid() *softbody.Grid { return s.grid }

// Time returns accumulated simulation time.
func (s *Simulator) Time() float64 { return s.t }

// ResetClock rebases the driver at now, dropping banked time. Used after a
// pause so the stall is not treated as elapsed simulation time.
func (s *Simulator) ResetClock(now float64) { s.driver.Reset(now) }

// Step runs exactly one physics step: sample the external force, sweep the
// spring network, integrate, then notify metrics and observers.
func (s *Simulator) Step(dt float64) {
	external := s.source.Force(s.t)
	s.grid.Step(external, dt)
	s.t += dt

	for _, m := range s.metrics {
		m.Observe(s.grid, s.t)
	}
	for _, o := range s.observers {
		o.OnStep(s.grid, external, s.t)
	}
}

// Tick advances wall-clock time to now and runs however many fixed steps the
// driver owes. Returns the number of steps executed.
func (s *Simulator) Tick(now float64) int {
	steps := s.driver.Advance(now)
	for i := 0; i < steps; i++ {
		s.Step(s.driver.Step)
	}
	return steps
}

// Run executes a headless batch simulation over synthetic time, recording
// position snapshots and the sampled force per recorded frame.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery == 0 {
		sampleEvery = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Positions: make([][]softbody.Vec3, 0, steps/sampleEvery+1),
		Forces:    make([]softbody.Vec3, 0, steps/sampleEvery+1),
		Times:     make([]float64, 0, steps/sampleEvery+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Positions = append(result.Positions, s.grid.Positions(nil))
	result.Forces = append(result.Forces, s.source.Force(s.t))
	result.Times = append(result.Times, s.t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Dt)
		result.StepsTaken++

		if (i+1)%sampleEvery == 0 {
			result.Positions = append(result.Positions, s.grid.Positions(nil))
			result.Forces = append(result.Forces, s.source.Force(s.t))
			result.Times = append(result.Times, s.t)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sim: sample interval must be >= 0, got %d", cfg.SampleEvery)
	}
	return nil
}

package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/softgrid/internal/softbody"
)

func newGrid(t *testing.T) *softbody.Grid {
	t.Helper()
	g, err := softbody.NewGrid(1.0, 1.0, 4, 4, 25.0, 0.5)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

func TestEnergyDrift_RestGrid(t *testing.T) {
	g := newGrid(t)
	m := NewEnergyDrift()

	for i := 0; i < 50; i++ {
		m.Observe(g, float64(i)*0.012)
		g.Step(softbody.Vec3{}, 0.012)
	}

	if m.Value() > 1e-12 {
		t.Errorf("rest grid should not drift, got %g", m.Value())
	}
}

func TestEnergyDrift_Relative(t *testing.T) {
	g := newGrid(t)
	g.At(0, 0).Position.X += 0.05

	m := NewEnergyDrift()
	m.Observe(g, 0)

	// Stretch further: energy grows, drift becomes positive.
	g.At(0, 0).Position.X -= 0.1
	m.Observe(g, 0.012)

	if m.Value() <= 0 {
		t.Errorf("expected positive drift, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestStability(t *testing.T) {
	g := newGrid(t)
	m := NewStability(10.0)

	m.Observe(g, 0)
	if m.Value() != 1.0 {
		t.Errorf("expected stability 1.0, got %f", m.Value())
	}

	g.At(0, 0).Position = softbody.Vec3{X: 100}
	m.Observe(g, 0.012)
	if m.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}

	g.At(0, 0).Position = softbody.Vec3{X: math.NaN()}
	m.Observe(g, 0.024)
	if m.Value() >= 0.5 {
		t.Errorf("NaN sample should count as violation, got %f", m.Value())
	}
}

func TestStability_NoSamples(t *testing.T) {
	m := NewStability(10.0)
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %f", m.Value())
	}
}

func TestDisplacement(t *testing.T) {
	g := newGrid(t)
	m := NewDisplacement()

	m.Observe(g, 0)
	if m.Value() != 0 {
		t.Errorf("baseline observation should report 0, got %f", m.Value())
	}

	g.At(1, 1).Position.X += 0.25
	m.Observe(g, 0.012)
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected max displacement 0.25, got %f", m.Value())
	}

	// Moving back does not lower the recorded maximum.
	g.At(1, 1).Position.X -= 0.25
	m.Observe(g, 0.024)
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("maximum should be sticky, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

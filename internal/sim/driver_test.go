package sim

import (
	"math"
	"testing"
)

func TestDriverCatchUpClamp(t *testing.T) {
	d, err := NewDriver(0.012, 0.25)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	// A huge stall must be clamped to 0.25, paying out exactly
	// floor(0.25/0.012) = 20 steps rather than ~833.
	steps := d.Advance(10.0)
	if steps != 20 {
		t.Errorf("expected 20 clamped catch-up steps, got %d", steps)
	}

	if d.Pending() >= d.Step {
		t.Errorf("accumulator %g not drained below one step", d.Pending())
	}
}

func TestDriverNotEnoughTime(t *testing.T) {
	d, err := NewDriver(0.012, 0.25)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	if steps := d.Advance(0.005); steps != 0 {
		t.Errorf("expected 0 steps below one physics step, got %d", steps)
	}
	if steps := d.Advance(0.012); steps != 0 {
		t.Errorf("elapsed equal to the step should not fire, got %d", steps)
	}
	if d.Pending() != 0 {
		t.Errorf("short ticks must not bank time, accumulator = %g", d.Pending())
	}

	// The short ticks did not move lastTime, so the full elapsed window
	// counts once it finally exceeds the step.
	if steps := d.Advance(0.013); steps != 1 {
		t.Errorf("expected 1 step, got %d", steps)
	}
}

func TestDriverSteadyRate(t *testing.T) {
	d, err := NewDriver(0.012, 0.25)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	// One second of 60 Hz frames should land within one step of 1/0.012.
	total := 0
	now := 0.0
	for i := 0; i < 60; i++ {
		now += 1.0 / 60.0
		total += d.Advance(now)
	}

	step := 0.012
	expected := int(1.0 / step)
	if math.Abs(float64(total-expected)) > 1 {
		t.Errorf("expected ~%d steps over one second, got %d", expected, total)
	}
}

func TestDriverReset(t *testing.T) {
	d, err := NewDriver(0.012, 0.25)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	d.Advance(0.1)
	d.Reset(5.0)

	if d.Pending() != 0 {
		t.Errorf("expected empty accumulator after reset, got %g", d.Pending())
	}
	if steps := d.Advance(5.005); steps != 0 {
		t.Errorf("expected 0 steps right after rebase, got %d", steps)
	}
}

func TestNewDriverValidation(t *testing.T) {
	tests := []struct {
		name             string
		step, maxElapsed float64
	}{
		{"zero step", 0, 0.25},
		{"negative step", -0.012, 0.25},
		{"clamp below step", 0.012, 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDriver(tt.step, tt.maxElapsed); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

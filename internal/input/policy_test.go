package input

import (
	"testing"

	"github.com/san-kum/softgrid/internal/softbody"
)

func TestPolicyForce(t *testing.T) {
	tests := []struct {
		name string
		held Held
		want softbody.Vec3
	}{
		{"idle", Held{}, softbody.Vec3{}},
		{"positive x", Held{Positive: true}, softbody.Vec3{X: 2.0}},
		{"negative x", Held{Negative: true}, softbody.Vec3{X: -2.0}},
		{"positive y", Held{Positive: true, AxisY: true}, softbody.Vec3{Y: 2.0}},
		{"negative y", Held{Negative: true, AxisY: true}, softbody.Vec3{Y: -2.0}},
		{"both held resolves negative", Held{Positive: true, Negative: true}, softbody.Vec3{X: -2.0}},
		{"axis alone pushes nothing", Held{AxisY: true}, softbody.Vec3{}},
	}

	p := NewPolicy(DefaultMagnitude)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Set(tt.held)
			if got := p.Force(0); got != tt.want {
				t.Errorf("Force() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolicyMagnitude(t *testing.T) {
	p := NewPolicy(5.0)
	p.Set(Held{Positive: true})

	if got := p.Force(0); got != (softbody.Vec3{X: 5.0}) {
		t.Errorf("Force() = %v, want {5 0 0}", got)
	}
}

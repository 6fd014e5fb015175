// Package input maps held user controls to the external force vector the
// simulation consumes once per physics step. It is pure state-to-vector
// mapping; the device polling itself lives in the presentation layer.
package input

import "github.com/san-kum/softgrid/internal/softbody"

// DefaultMagnitude is the strength of the user force along the active axis.
const DefaultMagnitude = 2.0

// Held mirrors which controls are currently held down. Positive and Negative
// push along the active axis; AxisY switches the axis from X to Y.
type Held struct {
	Positive bool
	Negative bool
	AxisY    bool
}

// Policy converts a Held snapshot into a force vector. The zero value is not
// usable; NewPolicy sets the magnitude.
type Policy struct {
	Magnitude float64
	held      Held
}

func NewPolicy(magnitude float64) *Policy {
	return &Policy{Magnitude: magnitude}
}

// Set replaces the held-control snapshot. The presentation layer calls this
// from its event handling; the simulation only ever reads the derived force.
func (p *Policy) Set(h Held) {
	p.held = h
}

// Force implements sim.ForceSource. Positive and negative held together
// resolve in favor of negative, matching last-writer-wins of the reference
// input handling.
func (p *Policy) Force(_ float64) softbody.Vec3 {
	var axis float64
	if p.held.Positive {
		axis = p.Magnitude
	}
	if p.held.Negative {
		axis = -p.Magnitude
	}

	if p.held.AxisY {
		return softbody.Vec3{Y: axis}
	}
	return softbody.Vec3{X: axis}
}

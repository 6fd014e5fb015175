package softbody

// PointMass is one node of the lattice. Forces accumulate into NetForce and
// NetImpulse between steps; integration consumes and clears both.
//
// InverseMass is the state that integration actually uses: an InverseMass of
// zero encodes infinite mass, so a pinned node ignores every force and
// impulse without any special casing downstream.
type PointMass struct {
	Mass        float64
	InverseMass float64

	Position     Vec3
	Velocity     Vec3
	Acceleration Vec3

	NetForce   Vec3
	NetImpulse Vec3
}

// NewPointMass builds a point mass at pos. A mass of zero pins the node in
// place; negative mass is rejected.
func NewPointMass(pos, vel Vec3, mass float64) (PointMass, error) {
	if mass < 0 {
		return PointMass{}, ErrNegativeMass
	}
	b := PointMass{
		Mass:     mass,
		Position: pos,
		Velocity: vel,
	}
	if mass != 0 {
		b.InverseMass = 1 / mass
	}
	return b, nil
}

// ApplyForce adds a continuous force for the current step.
func (b *PointMass) ApplyForce(f Vec3) {
	b.NetForce = b.NetForce.Add(f)
}

// ApplyImpulse adds an instantaneous change of momentum for the current step.
func (b *PointMass) ApplyImpulse(j Vec3) {
	b.NetImpulse = b.NetImpulse.Add(j)
}

// Pinned reports whether the node has infinite mass.
func (b *PointMass) Pinned() bool {
	return b.InverseMass == 0
}

// SetMass changes the node's mass, keeping InverseMass consistent. Setting
// zero pins the node.
func (b *PointMass) SetMass(mass float64) error {
	if mass < 0 {
		return ErrNegativeMass
	}
	b.Mass = mass
	if mass == 0 {
		b.InverseMass = 0
	} else {
		b.InverseMass = 1 / mass
	}
	return nil
}

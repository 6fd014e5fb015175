package softbody

// IntegrateLinear advances one point mass by dt using semi-implicit Euler
// with a second-order position term:
//
//	a = invM * F
//	x += v*dt + a*dt^2/2
//	v += a*dt + invM * J
//
// and clears both accumulators. An infinite-mass node (invM == 0) keeps its
// position and velocity no matter what was accumulated; that is the whole
// pinning mechanism.
func IntegrateLinear(b *PointMass, dt float64) {
	b.Acceleration = b.NetForce.Scale(b.InverseMass)

	v0dt := b.Velocity.Scale(dt)
	at2 := b.Acceleration.Scale(0.5 * dt * dt)
	b.Position = b.Position.Add(v0dt).Add(at2)

	b.Velocity = b.Velocity.
		Add(b.Acceleration.Scale(dt)).
		Add(b.NetImpulse.Scale(b.InverseMass))

	b.NetForce = Vec3{}
	b.NetImpulse = Vec3{}
}

// Integrate advances every node by dt, independently and in row-major order.
func (g *Grid) Integrate(dt float64) {
	for i := range g.bodies {
		IntegrateLinear(&g.bodies[i], dt)
	}
}

// Step runs one full physics step: the force sweep for the entire grid, then
// integration for the entire grid. The sweep must finish before any node
// moves, otherwise late nodes would see already-advanced neighbors.
func (g *Grid) Step(external Vec3, dt float64) {
	g.AccumulateForces(external)
	g.Integrate(dt)
}

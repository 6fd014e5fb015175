package softbody

// springForce is the contribution one neighbor connection adds to a node's
// force accumulator:
//
//	F = k * (|d| - rest) * normalize(d) - v * c
//
// where d points from the node to its neighbor. The damping term acts on the
// node's own velocity, not the relative velocity of the pair, and is applied
// once per connection; a node with four neighbors is damped four times as
// hard as a node with one. That asymmetry is the reference model's behavior
// and is kept as is.
func (g *Grid) springForce(b, neighbor *PointMass, rest float64) Vec3 {
	displacement := neighbor.Position.Sub(b.Position)
	mag := displacement.Length()
	if mag == 0 {
		// Coincident nodes have no direction to pull along; damping alone
		// would inject a force with no spring behind it, so skip entirely.
		return Vec3{}
	}
	dir := displacement.Scale(1 / mag)
	return dir.Scale(g.Stiffness * (mag - rest)).Sub(b.Velocity.Scale(g.Damping))
}

// AccumulateForces runs the spring-network sweep over the whole grid, adding
// each node's neighbor contributions plus the external force (bottom row
// only) into NetForce. Nothing integrates during the sweep, so every node
// reads the same pre-step snapshot of its neighbors.
func (g *Grid) AccumulateForces(external Vec3) {
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			b := g.At(i, j)

			if i > 0 {
				b.ApplyForce(g.springForce(b, g.At(i-1, j), g.RestHeight))
			}
			if i < g.Rows-1 {
				b.ApplyForce(g.springForce(b, g.At(i+1, j), g.RestHeight))
			}
			if j > 0 {
				b.ApplyForce(g.springForce(b, g.At(i, j-1), g.RestWidth))
			}
			if j < g.Cols-1 {
				b.ApplyForce(g.springForce(b, g.At(i, j+1), g.RestWidth))
			}

			// User force lands on the bottom edge of the sheet.
			if i == 0 {
				b.ApplyForce(external)
			}
		}
	}
}

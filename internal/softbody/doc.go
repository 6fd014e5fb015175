// Package softbody implements a 2D mass-spring softbody: a lattice of point
// masses connected to their orthogonal neighbors by damped Hooke springs.
//
// The package is the headless physics core:
//
//   - [PointMass]: position, velocity, mass and force/impulse accumulators
//   - [Grid]: owns the rows x cols lattice in one contiguous buffer
//   - [Grid.AccumulateForces]: spring-network force sweep
//   - [Grid.Integrate]: semi-implicit Euler step
//
// A full physics step is AccumulateForces followed by Integrate; the force
// sweep for the whole grid completes before any position advances, so every
// point mass sees a consistent pre-step snapshot of its neighbors.
//
// Rendering and input live outside this package. Callers feed one external
// force vector per step and read positions back through [Grid.Positions].
package softbody

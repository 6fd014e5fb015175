package softbody

import "fmt"

// Grid is a rows x cols lattice of point masses joined to their orthogonal
// neighbors by springs that share one stiffness and one damping coefficient.
// Storage is a single contiguous row-major slice owned by the grid.
type Grid struct {
	Rows, Cols int

	// RestWidth and RestHeight are the natural spring lengths along the
	// horizontal and vertical connection directions.
	RestWidth  float64
	RestHeight float64

	// Stiffness is Hooke's constant k; Damping is the per-connection
	// velocity-proportional coefficient.
	Stiffness float64
	Damping   float64

	bodies []PointMass
}

// NewGrid lays the lattice out on a regular rectangle centered at the
// origin, unit mass and zero velocity everywhere. Spacing derives from the
// sheet extent divided by the subdivision counts.
func NewGrid(width, height float64, rows, cols int, stiffness, damping float64) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadSubdivisions, rows, cols)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %gx%g", ErrBadExtent, width, height)
	}
	if stiffness < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNegativeStiffness, stiffness)
	}
	if damping < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNegativeDamping, damping)
	}

	g := &Grid{
		Rows:       rows,
		Cols:       cols,
		RestWidth:  width / float64(cols),
		RestHeight: height / float64(rows),
		Stiffness:  stiffness,
		Damping:    damping,
		bodies:     make([]PointMass, rows*cols),
	}

	startX := -width / 2
	startY := -height / 2
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			pos := Vec3{
				X: startX + g.RestWidth*float64(j),
				Y: startY + g.RestHeight*float64(i),
			}
			b, err := NewPointMass(pos, Vec3{}, 1.0)
			if err != nil {
				return nil, err
			}
			g.bodies[i*cols+j] = b
		}
	}

	return g, nil
}

// Index maps (row, col) to the flat row-major index.
func (g *Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// At returns the point mass at (row, col). Row 0 is the bottom edge.
func (g *Grid) At(row, col int) *PointMass {
	return &g.bodies[g.Index(row, col)]
}

// Len returns the number of point masses.
func (g *Grid) Len() int {
	return len(g.bodies)
}

// Positions copies every node position into dst in row-major order,
// allocating only when dst is too small. The renderer reads the lattice
// through this and never touches physics state.
func (g *Grid) Positions(dst []Vec3) []Vec3 {
	if cap(dst) < len(g.bodies) {
		dst = make([]Vec3, len(g.bodies))
	}
	dst = dst[:len(g.bodies)]
	for i := range g.bodies {
		dst[i] = g.bodies[i].Position
	}
	return dst
}

// IsFinite reports whether every position and velocity is finite.
func (g *Grid) IsFinite() bool {
	for i := range g.bodies {
		if !g.bodies[i].Position.IsFinite() || !g.bodies[i].Velocity.IsFinite() {
			return false
		}
	}
	return true
}

// Energy returns kinetic plus elastic potential energy. Each undirected
// spring is counted once with its stretch relative to rest length.
func (g *Grid) Energy() float64 {
	e := 0.0
	for i := range g.bodies {
		b := &g.bodies[i]
		e += 0.5 * b.Mass * b.Velocity.LengthSq()
	}
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			p := g.At(i, j)
			if j+1 < g.Cols {
				stretch := g.At(i, j+1).Position.Sub(p.Position).Length() - g.RestWidth
				e += 0.5 * g.Stiffness * stretch * stretch
			}
			if i+1 < g.Rows {
				stretch := g.At(i+1, j).Position.Sub(p.Position).Length() - g.RestHeight
				e += 0.5 * g.Stiffness * stretch * stretch
			}
		}
	}
	return e
}

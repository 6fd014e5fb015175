package metrics

import (
	"math"

	"github.com/san-kum/softgrid/internal/softbody"
)

// Displacement tracks the largest distance any node has traveled from its
// position at the first observation. Useful as a cheap "how hard did the
// cloth move" summary for a run.
type Displacement struct {
	name    string
	rest    []softbody.Vec3
	maxDist float64
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "max_displacement"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(g *softbody.Grid, t float64) {
	if d.rest == nil {
		d.rest = g.Positions(nil)
		return
	}

	for i := 0; i < g.Len(); i++ {
		row, col := i/g.Cols, i%g.Cols
		dist := g.At(row, col).Position.Sub(d.rest[i]).Length()
		d.maxDist = math.Max(d.maxDist, dist)
	}
}

func (d *Displacement) Value() float64 { return d.maxDist }

func (d *Displacement) Reset() {
	d.rest = nil
	d.maxDist = 0
}

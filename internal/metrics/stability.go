package metrics

import "github.com/san-kum/softgrid/internal/softbody"

// Stability reports the fraction of observed steps where every node was
// finite and within threshold of the origin. 1.0 means the run never blew up.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(g *softbody.Grid, t float64) {
	s.samples++

	if !g.IsFinite() {
		s.violations++
		return
	}
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if g.At(i, j).Position.Length() > s.threshold {
				s.violations++
				return
			}
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

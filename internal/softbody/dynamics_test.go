package softbody_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/softgrid/internal/softbody"
)

const dt = 0.012

// newSpringPair builds a 1x2 grid with rest length 0.1 and the two nodes
// stretched to double rest length at (0,0,0) and (0.2,0,0).
func newSpringPair(stiffness, damping float64) *softbody.Grid {
	g, err := softbody.NewGrid(0.2, 0.1, 1, 2, stiffness, damping)
	Expect(err).NotTo(HaveOccurred())
	g.At(0, 0).Position = softbody.Vec3{}
	g.At(0, 1).Position = softbody.Vec3{X: 0.2}
	return g
}

var _ = Describe("Grid dynamics", func() {
	Describe("equilibrium", func() {
		It("stays at rest without external force", func() {
			g, err := softbody.NewGrid(1.0, 1.0, 10, 10, 25.0, 0.5)
			Expect(err).NotTo(HaveOccurred())

			initial := g.Positions(nil)
			for n := 0; n < 500; n++ {
				g.Step(softbody.Vec3{}, dt)
			}

			final := g.Positions(nil)
			for i := range final {
				Expect(final[i].Sub(initial[i]).Length()).To(BeNumerically("<", 1e-9))
			}
			for i := 0; i < g.Rows; i++ {
				for j := 0; j < g.Cols; j++ {
					Expect(g.At(i, j).Velocity.Length()).To(BeNumerically("<", 1e-9))
				}
			}
		})
	})

	Describe("a single stretched spring", func() {
		It("pulls the first node toward the second after one step", func() {
			g := newSpringPair(25.0, 0.5)

			g.Step(softbody.Vec3{}, dt)

			Expect(g.At(0, 0).Position.X).To(BeNumerically(">", 1e-6))
			Expect(g.At(0, 1).Position.X).To(BeNumerically("<", 0.2-1e-6))
		})

		It("converges to rest length with damping", func() {
			g := newSpringPair(25.0, 0.5)
			initialEnergy := g.Energy()

			for n := 0; n < 20000; n++ {
				g.Step(softbody.Vec3{}, dt)
			}

			separation := g.At(0, 1).Position.Sub(g.At(0, 0).Position).Length()
			Expect(separation).To(BeNumerically("~", 0.1, 1e-3))
			Expect(g.At(0, 0).Velocity.Length()).To(BeNumerically("<", 1e-4))
			Expect(g.At(0, 1).Velocity.Length()).To(BeNumerically("<", 1e-4))
			Expect(g.Energy()).To(BeNumerically("<", initialEnergy))
			Expect(g.IsFinite()).To(BeTrue())
		})

		It("never diverges over a long run", func() {
			g := newSpringPair(25.0, 0.5)

			peak := g.Energy()
			for n := 0; n < 5000; n++ {
				g.Step(softbody.Vec3{}, dt)
				Expect(g.Energy()).To(BeNumerically("<=", peak*1.01))
			}
		})
	})

	Describe("pinning", func() {
		It("keeps an infinite-mass node immobile under force and impulse", func() {
			g := newSpringPair(25.0, 0.5)
			pinned := g.At(0, 0)
			Expect(pinned.SetMass(0)).To(Succeed())
			start := pinned.Position

			pinned.ApplyForce(softbody.Vec3{X: 50})
			pinned.ApplyImpulse(softbody.Vec3{X: 100})
			for n := 0; n < 1000; n++ {
				g.Step(softbody.Vec3{}, dt)
			}

			Expect(pinned.Position).To(Equal(start))
			Expect(pinned.Velocity).To(Equal(softbody.Vec3{}))

			// The free end still relaxes toward the pinned one.
			separation := g.At(0, 1).Position.Sub(start).Length()
			Expect(separation).To(BeNumerically("<", 0.2))
		})
	})

	Describe("zero-dt integration", func() {
		It("moves nothing but still clears the accumulators", func() {
			g := newSpringPair(25.0, 0.5)
			b := g.At(0, 0)
			b.ApplyForce(softbody.Vec3{X: 3})
			b.ApplyImpulse(softbody.Vec3{Y: 2})
			pos, vel := b.Position, b.Velocity

			g.Integrate(0)

			Expect(b.Position).To(Equal(pos))
			Expect(b.Velocity).To(Equal(vel))
			Expect(b.NetForce).To(Equal(softbody.Vec3{}))
			Expect(b.NetImpulse).To(Equal(softbody.Vec3{}))
		})
	})

	Describe("external force", func() {
		It("is applied to the bottom row only", func() {
			g, err := softbody.NewGrid(1.0, 1.0, 3, 3, 25.0, 0.5)
			Expect(err).NotTo(HaveOccurred())

			g.AccumulateForces(softbody.Vec3{X: 2})

			for j := 0; j < g.Cols; j++ {
				Expect(g.At(0, j).NetForce.X).To(BeNumerically("~", 2, 1e-12))
			}
			for i := 1; i < g.Rows; i++ {
				for j := 0; j < g.Cols; j++ {
					Expect(g.At(i, j).NetForce.X).To(BeNumerically("~", 0, 1e-12))
				}
			}
		})
	})

	Describe("coincident nodes", func() {
		It("contributes zero force instead of NaN", func() {
			g := newSpringPair(25.0, 0.5)
			g.At(0, 1).Position = g.At(0, 0).Position

			for n := 0; n < 100; n++ {
				g.Step(softbody.Vec3{}, dt)
			}

			Expect(g.IsFinite()).To(BeTrue())
		})
	})
})

package softbody

import "testing"

func BenchmarkAccumulateForces(b *testing.B) {
	g, err := NewGrid(1.0, 1.0, 10, 10, 25.0, 0.5)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.AccumulateForces(Vec3{X: 2.0})
		g.Integrate(0) // clear accumulators without moving the lattice
	}
}

func BenchmarkStep(b *testing.B) {
	g, err := NewGrid(1.0, 1.0, 10, 10, 25.0, 0.5)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(Vec3{X: 2.0}, 0.012)
	}
}

func BenchmarkStepDense(b *testing.B) {
	g, err := NewGrid(1.0, 1.0, 40, 40, 25.0, 0.5)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step(Vec3{X: 2.0}, 0.012)
	}
}

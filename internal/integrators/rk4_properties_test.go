package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
)

func zero(y []float64, u float64, i int) float64 { return 0 }

func harmonic(y []float64, u float64, i int) float64 {
	if i == 0 {
		return y[1]
	}
	return -y[0]
}

func decay(a float64) dynamo.DerivativeFunc {
	return func(y []float64, u float64, i int) float64 {
		return -a * y[i]
	}
}

// integrateHarmonic runs the unit oscillator from (1, 0) to t=total and
// returns the max-norm error against (cos t, -sin t).
func integrateHarmonic(h, total float64) float64 {
	rk, err := integrators.NewRK4(2)
	Expect(err).NotTo(HaveOccurred())

	y := []float64{1, 0}
	steps := int(math.Round(total / h))
	for i := 0; i < steps; i++ {
		Expect(rk.Step(harmonic, y, h, 0)).To(Succeed())
	}
	t := float64(steps) * h
	return math.Max(math.Abs(y[0]-math.Cos(t)), math.Abs(y[1]+math.Sin(t)))
}

var _ = Describe("RK4", func() {
	Describe("dimension check", func() {
		DescribeTable("rejects a mismatched state without touching it",
			func(n int, y []float64) {
				rk, err := integrators.NewRK4(n)
				Expect(err).NotTo(HaveOccurred())

				ref := append([]float64(nil), y...)
				Expect(rk.Step(harmonic, y, 0.1, 1)).To(MatchError(dynamo.ErrDimensionMismatch))
				Expect(y).To(Equal(ref))
			},
			Entry("n=1, len 2", 1, []float64{1, 2}),
			Entry("n=2, len 1", 2, []float64{3}),
			Entry("n=4, len 3", 4, []float64{1, 2, 3}),
			Entry("n=5, len 8", 5, []float64{1, 2, 3, 4, 5, 6, 7, 8}),
		)

		It("checks on every call, not only the first", func() {
			rk, _ := integrators.NewRK4(2)
			Expect(rk.Step(harmonic, []float64{1, 0}, 0.1, 0)).To(Succeed())
			Expect(rk.Step(harmonic, []float64{1}, 0.1, 0)).To(MatchError(dynamo.ErrDimensionMismatch))
			Expect(rk.Step(harmonic, []float64{1, 0}, 0.1, 0)).To(Succeed())
		})
	})

	DescribeTable("zero derivative is a fixed point",
		func(n int, h, u float64) {
			rk, _ := integrators.NewRK4(n)
			y := make([]float64, n)
			for i := range y {
				y[i] = float64(i) - 1.5
			}
			ref := append([]float64(nil), y...)

			Expect(rk.Step(zero, y, h, u)).To(Succeed())
			for i := range y {
				Expect(y[i]).To(BeNumerically("~", ref[i], 1e-15))
			}
		},
		Entry("scalar", 1, 0.01, 0.0),
		Entry("cart-pole sized", 4, 0.1, 10.0),
		Entry("negative step", 3, -0.5, -2.0),
		Entry("large system", 16, 1.0, 1e3),
	)

	DescribeTable("constant derivative advances by exactly h*c",
		func(c []float64, h float64) {
			rk, _ := integrators.NewRK4(len(c))
			df := func(y []float64, u float64, i int) float64 { return c[i] }
			y := make([]float64, len(c))
			for i := range y {
				y[i] = 0.25 * float64(i)
			}
			ref := append([]float64(nil), y...)

			Expect(rk.Step(df, y, h, 0)).To(Succeed())
			for i := range y {
				Expect(y[i]).To(BeNumerically("~", ref[i]+h*c[i], 1e-12))
			}
		},
		Entry("single", []float64{2}, 0.1),
		Entry("mixed signs", []float64{1, -3, 0.5, 0}, 0.01),
		Entry("large step", []float64{7, -7}, 2.0),
	)

	DescribeTable("matches the closed-form RK4 update of dy/dt = -a*y",
		func(a, h, y0 float64) {
			rk, _ := integrators.NewRK4(1)
			y := []float64{y0}
			Expect(rk.Step(decay(a), y, h, 0)).To(Succeed())

			z := a * h
			want := y0 * (1 - z + z*z/2 - z*z*z/6 + z*z*z*z/24)
			Expect(y[0]).To(BeNumerically("~", want, 1e-9))
		},
		Entry("a=1, h=0.1", 1.0, 0.1, 1.0),
		Entry("a=2, h=0.01", 2.0, 0.01, 5.0),
		Entry("a=0.5, h=1", 0.5, 1.0, -3.0),
		Entry("a=10, h=0.05", 10.0, 0.05, 2.5),
	)

	Describe("convergence on the harmonic oscillator", func() {
		It("approximates the analytic solution", func() {
			Expect(integrateHarmonic(0.01, 2*math.Pi)).To(BeNumerically("<", 1e-8))
		})

		It("cuts the error about 16x when h is halved", func() {
			e1 := integrateHarmonic(0.1, 10)
			e2 := integrateHarmonic(0.05, 10)
			e3 := integrateHarmonic(0.025, 10)

			Expect(e2).To(BeNumerically("<", e1))
			Expect(e3).To(BeNumerically("<", e2))
			Expect(e1 / e2).To(BeNumerically("~", 16, 3))
			Expect(e2 / e3).To(BeNumerically("~", 16, 3))
		})
	})

	Describe("scratch buffers", func() {
		It("gives bit-identical results on separate instances", func() {
			a, _ := integrators.NewRK4(2)
			b, _ := integrators.NewRK4(2)
			ya := []float64{0.3, -0.7}
			yb := []float64{0.3, -0.7}

			Expect(a.Step(harmonic, ya, 0.05, 0)).To(Succeed())
			Expect(b.Step(harmonic, yb, 0.05, 0)).To(Succeed())
			Expect(ya).To(Equal(yb))
		})

		It("carries no state between calls on one instance", func() {
			rk, _ := integrators.NewRK4(2)

			first := []float64{0.3, -0.7}
			Expect(rk.Step(harmonic, first, 0.05, 0)).To(Succeed())

			// A different step in between must not leak into the next call.
			Expect(rk.Step(decay(3), []float64{9, 9}, 0.2, 1)).To(Succeed())

			second := []float64{0.3, -0.7}
			Expect(rk.Step(harmonic, second, 0.05, 0)).To(Succeed())
			Expect(second).To(Equal(first))
		})
	})
})

package streamline_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/integrators"
	"github.com/san-kum/fieldlab/internal/probe"
	"github.com/san-kum/fieldlab/internal/streamline"
)

// uniformSampler builds an n^3 grid over the unit cube holding c at every point.
func uniformSampler(n int, c field.Vec3) *probe.Sampler {
	h := 1.0 / float64(n-1)
	grid, err := field.NewImageData([3]int{n, n, n}, field.Vec3{}, field.Vec3{h, h, h})
	Expect(err).NotTo(HaveOccurred())
	values := make([]field.Vec3, grid.PointCount())
	for i := range values {
		values[i] = c
	}
	vf, err := field.NewVectorField(grid, "v", values)
	Expect(err).NotTo(HaveOccurred())
	s, err := probe.NewVector(grid, vf)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func newTracer(s integrators.VectorSampler, policy integrators.BoundaryPolicy, opts streamline.Options) *streamline.Tracer {
	tr, err := streamline.New(s, integrators.NewRK4(policy), opts)
	Expect(err).NotTo(HaveOccurred())
	return tr
}

var _ = Describe("Tracer", func() {
	var (
		seed field.Vec3
		opts streamline.Options
	)

	BeforeEach(func() {
		seed = field.Vec3{0.5, 0.5, 0.5}
		opts = streamline.DefaultOptions()
		opts.StepSize = 0.01
		opts.MaxSteps = 10
	})

	Context("in a constant field", func() {
		var line *streamline.Streamline

		BeforeEach(func() {
			tr := newTracer(uniformSampler(11, field.Vec3{1, 0, 0}), integrators.Zero, opts)
			var err error
			line, err = tr.Generate(seed)
			Expect(err).NotTo(HaveOccurred())
		})

		It("holds 2*MaxSteps+1 points with the seed in the middle", func() {
			Expect(line.Len()).To(Equal(2*opts.MaxSteps + 1))
			Expect(line.SeedIndex).To(Equal(opts.MaxSteps))
			Expect(line.Seed()).To(Equal(seed))
			Expect(line.Backward).To(Equal(opts.MaxSteps))
			Expect(line.Forward).To(Equal(opts.MaxSteps))
		})

		It("contains the seed exactly once", func() {
			count := 0
			for _, p := range line.Points {
				if p == seed {
					count++
				}
			}
			Expect(count).To(Equal(1))
		})

		It("mirrors the backward pass around the seed", func() {
			for k := 1; k <= opts.MaxSteps; k++ {
				fwd := line.Points[line.SeedIndex+k].Sub(seed)
				bwd := line.Points[line.SeedIndex-k].Sub(seed)
				for i := 0; i < 3; i++ {
					Expect(fwd[i]).To(BeNumerically("~", -bwd[i], 1e-12))
				}
			}
		})

		It("moves h*|v| per step", func() {
			for i := 1; i < line.Len(); i++ {
				Expect(line.Points[i][0] - line.Points[i-1][0]).To(BeNumerically("~", opts.StepSize, 1e-12))
			}
			Expect(line.ArcLength()).To(BeNumerically("~", 2*float64(opts.MaxSteps)*opts.StepSize, 1e-9))
		})

		It("connects consecutive points with two-point lines", func() {
			lines := line.Lines()
			Expect(lines).To(HaveLen(line.Len() - 1))
			for i, l := range lines {
				Expect(l).To(Equal([]int{i, i + 1}))
			}
		})
	})

	Context("when the trace reaches the domain edge", func() {
		var s *probe.Sampler

		BeforeEach(func() {
			s = uniformSampler(11, field.Vec3{1, 0, 0})
			opts.StepSize = 0.1
			opts.MaxSteps = 20
		})

		It("stalls near the boundary under the zero policy", func() {
			line, err := newTracer(s, integrators.Zero, opts).Generate(seed)
			Expect(err).NotTo(HaveOccurred())
			Expect(line.Len()).To(Equal(2*opts.MaxSteps + 1))

			last := line.Points[line.Len()-1]
			Expect(last).To(Equal(line.Points[line.Len()-2]))
			Expect(last[0]).To(BeNumerically(">", 1))
			Expect(last[0]).To(BeNumerically("<=", 1+opts.StepSize))

			first := line.Points[0]
			Expect(first).To(Equal(line.Points[1]))
			Expect(first[0]).To(BeNumerically("<", 0))
			Expect(first[0]).To(BeNumerically(">=", -opts.StepSize))
		})

		It("keeps every point inside the domain with StopOnExit", func() {
			opts.Termination = streamline.StopOnExit
			line, err := newTracer(s, integrators.Zero, opts).Generate(seed)
			Expect(err).NotTo(HaveOccurred())
			Expect(line.Len()).To(BeNumerically("<", 2*opts.MaxSteps+1))
			for _, p := range line.Points {
				Expect(s.Bounds().Contains(p)).To(BeTrue(), "point %v left the domain", p)
			}
			Expect(line.Seed()).To(Equal(seed))
		})

		It("stops on exit without reserving memory for an unbounded step count", func() {
			opts.Termination = streamline.StopOnExit
			opts.MaxSteps = 1 << 40
			line, err := newTracer(s, integrators.Zero, opts).Generate(seed)
			Expect(err).NotTo(HaveOccurred())
			Expect(line.Len()).To(BeNumerically("<", 100))
		})

		It("fails with an out-of-bounds trace error under the abort policy", func() {
			_, err := newTracer(s, integrators.Abort, opts).Generate(seed)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, field.ErrOutOfBounds)).To(BeTrue())

			var te *streamline.TraceError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Direction).To(Equal(streamline.Forward))
			Expect(te.Step).To(BeNumerically(">", 0))
		})
	})

	Context("in a still field", func() {
		It("stops at once with StopOnStagnation", func() {
			opts.Termination = streamline.StopOnStagnation
			line, err := newTracer(uniformSampler(5, field.Vec3{}), integrators.Zero, opts).Generate(seed)
			Expect(err).NotTo(HaveOccurred())
			Expect(line.Points).To(Equal([]field.Vec3{seed}))
			Expect(line.SeedIndex).To(Equal(0))
			Expect(line.Lines()).To(BeEmpty())
		})

		It("repeats the seed with FixedSteps", func() {
			line, err := newTracer(uniformSampler(5, field.Vec3{}), integrators.Zero, opts).Generate(seed)
			Expect(err).NotTo(HaveOccurred())
			for _, p := range line.Points {
				Expect(p).To(Equal(seed))
			}
		})
	})

	It("produces the same line when the passes run concurrently", func() {
		s := uniformSampler(9, field.Vec3{0.3, -0.2, 0.1})
		serial, err := newTracer(s, integrators.Zero, opts).Generate(seed)
		Expect(err).NotTo(HaveOccurred())

		opts.Concurrent = true
		parallel, err := newTracer(s, integrators.Zero, opts).Generate(seed)
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel).To(Equal(serial))
	})

	It("overrides step size and count with GenerateWith", func() {
		tr := newTracer(uniformSampler(5, field.Vec3{0, 1, 0}), integrators.Zero, opts)
		line, err := tr.GenerateWith(seed, 0.02, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(line.Len()).To(Equal(7))
		Expect(line.Points[6][1]).To(BeNumerically("~", 0.56, 1e-12))

		line, err = tr.GenerateWith(seed, 0.02, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(line.Points).To(Equal([]field.Vec3{seed}))

		_, err = tr.GenerateWith(seed, 0, 3)
		Expect(errors.Is(err, field.ErrInvalidRange)).To(BeTrue())
	})

	It("rejects invalid options", func() {
		bad := streamline.DefaultOptions()
		bad.MaxSteps = -1
		_, err := streamline.New(uniformSampler(3, field.Vec3{}), integrators.NewRK4(integrators.Zero), bad)
		Expect(errors.Is(err, field.ErrInvalidRange)).To(BeTrue())
	})

	It("reports whether a seed can be resolved", func() {
		tr := newTracer(uniformSampler(3, field.Vec3{1, 0, 0}), integrators.Zero, opts)
		Expect(tr.CheckSeed(seed)).To(Succeed())
		Expect(errors.Is(tr.CheckSeed(field.Vec3{2, 0, 0}), field.ErrOutOfBounds)).To(BeTrue())
	})
})

var _ = DescribeTable("ParseTermination",
	func(in string, want streamline.Termination) {
		got, err := streamline.ParseTermination(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	},
	Entry("default", "", streamline.FixedSteps),
	Entry("fixed", "fixed", streamline.FixedSteps),
	Entry("exit", "EXIT", streamline.StopOnExit),
	Entry("stagnation", "stagnation", streamline.StopOnStagnation),
)

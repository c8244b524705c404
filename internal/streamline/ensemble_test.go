package streamline_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/integrators"
	"github.com/san-kum/fieldlab/internal/streamline"
)

var _ = Describe("TraceMany", func() {
	var tr *streamline.Tracer

	BeforeEach(func() {
		opts := streamline.DefaultOptions()
		opts.StepSize = 0.01
		opts.MaxSteps = 20
		tr = newTracer(uniformSampler(9, field.Vec3{0, 0, 1}), integrators.Zero, opts)
	})

	It("traces each seed in order", func() {
		seeds := streamline.Rake(field.Vec3{0.2, 0.5, 0.5}, field.Vec3{0.8, 0.5, 0.5}, 7)
		lines, err := tr.TraceMany(context.Background(), seeds)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(HaveLen(7))
		for i, l := range lines {
			Expect(l.Seed()).To(Equal(seeds[i]))

			single, err := tr.Generate(seeds[i])
			Expect(err).NotTo(HaveOccurred())
			Expect(l).To(Equal(single))
		}
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := tr.TraceMany(ctx, []field.Vec3{{0.5, 0.5, 0.5}})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("returns nothing for no seeds", func() {
		lines, err := tr.TraceMany(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(BeEmpty())
	})
})

var _ = Describe("Rake", func() {
	It("spaces seeds evenly and ends exactly on b", func() {
		a, b := field.Vec3{0, 0, 0}, field.Vec3{1, 2, 3}
		seeds := streamline.Rake(a, b, 5)
		Expect(seeds).To(HaveLen(5))
		Expect(seeds[0]).To(Equal(a))
		Expect(seeds[4]).To(Equal(b))
		Expect(seeds[2][1]).To(BeNumerically("~", 1, 1e-12))
	})

	It("handles degenerate counts", func() {
		Expect(streamline.Rake(field.Vec3{}, field.Vec3{1, 1, 1}, 0)).To(BeEmpty())
		Expect(streamline.Rake(field.Vec3{1, 0, 0}, field.Vec3{1, 1, 1}, 1)).To(Equal([]field.Vec3{{1, 0, 0}}))
	})
})

package streamline

import (
	"context"
	"fmt"

	"github.com/san-kum/fieldlab/internal/field"
)

// TraceMany traces every seed with the same tracer across workers. The
// result keeps the order of seeds.
func (t *Tracer) TraceMany(ctx context.Context, seeds []field.Vec3) ([]*Streamline, error) {
	lines := make([]*Streamline, len(seeds))
	errs := make([]error, len(seeds))

	field.ParallelFor(len(seeds), 1, func(_, start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			lines[i], errs[i] = t.Generate(seeds[i])
		}
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
	}
	return lines, nil
}

// Rake returns n seeds evenly spaced on the segment from a to b.
func Rake(a, b field.Vec3, n int) []field.Vec3 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []field.Vec3{a}
	}
	seeds := make([]field.Vec3, n)
	d := b.Sub(a)
	for i := range seeds {
		seeds[i] = a.AddScaled(d, float64(i)/float64(n-1))
	}
	seeds[n-1] = b
	return seeds
}

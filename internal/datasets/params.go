package datasets

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldlab/internal/field"
)

const (
	Scalars = "scalars"
	Vectors = "vectors"

	// MaxResolution bounds the per-axis sample count of planar generators.
	MaxResolution = 1024
	// MaxVolumeResolution bounds volumetric generators, which allocate n^3 vectors.
	MaxVolumeResolution = 256
)

// Params holds named numeric generator parameters. Missing keys take the
// generator's defaults.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

func (p Params) resolution(def, limit int) (int, error) {
	n := p.get("n", float64(def))
	if err := field.CheckRange("n", n, 2, float64(limit)); err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: n=%g is not an integer", field.ErrInvalidRange, n)
	}
	return int(n), nil
}

// axis returns n evenly spaced samples covering [lo, hi].
func axis(n int, lo, hi float64) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

func spacing(n int, lo, hi float64) float64 {
	return (hi - lo) / float64(n-1)
}

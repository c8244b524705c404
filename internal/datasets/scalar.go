package datasets

import (
	"math"

	"github.com/san-kum/fieldlab/internal/field"
)

// planar samples fn over an n x n grid covering [lo,hi]^2 at height z.
func planar(n int, lo, hi, z float64, fn func(x, y float64) float64) (*field.Dataset, error) {
	h := spacing(n, lo, hi)
	grid, err := field.NewImageData([3]int{n, n, 1}, field.Vec3{lo, lo, z}, field.Vec3{h, h, 1})
	if err != nil {
		return nil, err
	}
	xs := axis(n, lo, hi)
	values := make([]float64, grid.PointCount())
	for j, y := range xs {
		for i, x := range xs {
			values[grid.PointID(i, j, 0)] = fn(x, y)
		}
	}
	ds := field.NewDataset(grid)
	if err := ds.AddScalars(Scalars, values); err != nil {
		return nil, err
	}
	return ds, nil
}

// Saddle is x^2 - y^2 on [-1,1]^2.
func Saddle(n int, z float64) (*field.Dataset, error) {
	return planar(n, -1, 1, z, func(x, y float64) float64 {
		return x*x - y*y
	})
}

// Ripple is cos(2*pi*k*r) damped by exp(-r) on [-1,1]^2.
func Ripple(n int, k, z float64) (*field.Dataset, error) {
	return planar(n, -1, 1, z, func(x, y float64) float64 {
		r := math.Hypot(x, y)
		return math.Cos(2*math.Pi*k*r) * math.Exp(-r)
	})
}

type gaussian struct {
	x, y, amp, sigma float64
}

// pressure cells: one deep low in the middle, two weaker highs.
var pressureCells = []gaussian{
	{x: 250, y: 250, amp: -1500, sigma: 60},
	{x: 100, y: 400, amp: 650, sigma: 80},
	{x: 420, y: 120, amp: 600, sigma: 70},
}

// Gaussians is a sum of signed Gaussian cells on [0,500]^2, shaped like a
// hurricane pressure slice.
func Gaussians(n int, z float64) (*field.Dataset, error) {
	return planar(n, 0, 500, z, func(x, y float64) float64 {
		v := 0.0
		for _, g := range pressureCells {
			dx, dy := x-g.x, y-g.y
			v += g.amp * math.Exp(-(dx*dx+dy*dy)/(2*g.sigma*g.sigma))
		}
		return v
	})
}

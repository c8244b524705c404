package datasets

import (
	"math"

	"github.com/san-kum/fieldlab/internal/field"
)

// Tornado samples Crawfis' analytic tornado on an n^3 grid over the unit
// cube at time t.
func Tornado(n int, t float64) (*field.Dataset, error) {
	h := spacing(n, 0, 1)
	grid, err := field.NewImageData([3]int{n, n, n}, field.Vec3{}, field.Vec3{h, h, h})
	if err != nil {
		return nil, err
	}

	xs := axis(n, 0, 1)
	values := make([]field.Vec3, grid.PointCount())
	for k, z := range xs {
		xc := 0.5 + 0.1*math.Sin(0.04*t+10*z)
		yc := 0.5 + 0.1*math.Cos(0.03*t+3*z)
		r := 0.1 + 0.4*z*z + 0.1*z*math.Sin(8*z)
		r2 := 0.2 + 0.1*z

		for j, y := range xs {
			for i, x := range xs {
				dx, dy := x-xc, y-yc
				temp := math.Hypot(dx, dy)

				scale := math.Abs(r - temp)
				if scale > r2 {
					scale = 0.8 - scale
				} else {
					scale = 1
				}

				z0 := math.Max(0, 0.1*(0.1-temp*z))
				temp = math.Hypot(temp, z0)
				scale = (r + r2 - temp) * scale / (temp + 1e-8)
				scale /= 1 + z

				values[grid.PointID(i, j, k)] = field.Vec3{
					scale*dy + 0.1*dx,
					-scale*dx + 0.1*dy,
					scale * z0,
				}
			}
		}
	}

	ds := field.NewDataset(grid)
	if err := ds.AddVectors(Vectors, values); err != nil {
		return nil, err
	}
	return ds, nil
}

// Uniform fills an n^3 unit-cube grid with the constant vector (c, 0, 0).
func Uniform(n int, c float64) (*field.Dataset, error) {
	h := spacing(n, 0, 1)
	grid, err := field.NewImageData([3]int{n, n, n}, field.Vec3{}, field.Vec3{h, h, h})
	if err != nil {
		return nil, err
	}
	values := make([]field.Vec3, grid.PointCount())
	for i := range values {
		values[i] = field.Vec3{c, 0, 0}
	}
	ds := field.NewDataset(grid)
	if err := ds.AddVectors(Vectors, values); err != nil {
		return nil, err
	}
	return ds, nil
}

// Vortex is rigid rotation about the z axis with angular speed omega over
// [-1,1]x[-1,1]x[0,1]. The z axis has two layers so seeds off the z=0
// plane still resolve.
func Vortex(n int, omega float64) (*field.Dataset, error) {
	h := spacing(n, -1, 1)
	grid, err := field.NewImageData([3]int{n, n, 2}, field.Vec3{-1, -1, 0}, field.Vec3{h, h, 1})
	if err != nil {
		return nil, err
	}
	xs := axis(n, -1, 1)
	values := make([]field.Vec3, grid.PointCount())
	for k := 0; k < 2; k++ {
		for j, y := range xs {
			for i, x := range xs {
				values[grid.PointID(i, j, k)] = field.Vec3{-omega * y, omega * x, 0}
			}
		}
	}
	ds := field.NewDataset(grid)
	if err := ds.AddVectors(Vectors, values); err != nil {
		return nil, err
	}
	return ds, nil
}

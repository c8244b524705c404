package field

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

// AddScaled returns v + f*o.
func (v Vec3) AddScaled(o Vec3, f float64) Vec3 {
	return Vec3{v[0] + f*o[0], v[1] + f*o[1], v[2] + f*o[2]}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Bounds is an axis-aligned box. Both faces are inside.
type Bounds struct {
	Min, Max Vec3
}

func (b Bounds) Contains(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b Bounds) Clamp(p Vec3) Vec3 {
	for i := 0; i < 3; i++ {
		p[i] = math.Max(b.Min[i], math.Min(p[i], b.Max[i]))
	}
	return p
}

func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// ImageData is a structured grid with uniform spacing. Point ids run x
// fastest, then y, then z.
type ImageData struct {
	Dims    [3]int
	Origin  Vec3
	Spacing Vec3
}

func NewImageData(dims [3]int, origin, spacing Vec3) (*ImageData, error) {
	cellAxes := 0
	for i, n := range dims {
		if n < 1 {
			return nil, fmt.Errorf("%w: dims[%d]=%d", ErrInvalidGrid, i, n)
		}
		if n > 1 {
			cellAxes++
			if !(spacing[i] > 0) || math.IsInf(spacing[i], 0) {
				return nil, fmt.Errorf("%w: spacing[%d]=%g", ErrInvalidGrid, i, spacing[i])
			}
		}
	}
	if cellAxes == 0 {
		return nil, fmt.Errorf("%w: grid has no cells", ErrInvalidGrid)
	}
	if !origin.IsValid() {
		return nil, fmt.Errorf("%w: origin %v", ErrInvalidGrid, origin)
	}
	return &ImageData{Dims: dims, Origin: origin, Spacing: spacing}, nil
}

func (g *ImageData) PointCount() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

func (g *ImageData) PointID(i, j, k int) int {
	return i + g.Dims[0]*(j+g.Dims[1]*k)
}

func (g *ImageData) Point(id int) Vec3 {
	nx, ny := g.Dims[0], g.Dims[1]
	i := id % nx
	j := (id / nx) % ny
	k := id / (nx * ny)
	return Vec3{
		g.Origin[0] + float64(i)*g.Spacing[0],
		g.Origin[1] + float64(j)*g.Spacing[1],
		g.Origin[2] + float64(k)*g.Spacing[2],
	}
}

func (g *ImageData) Bounds() Bounds {
	var b Bounds
	for i := 0; i < 3; i++ {
		b.Min[i] = g.Origin[i]
		b.Max[i] = g.Origin[i] + float64(g.Dims[i]-1)*g.Spacing[i]
	}
	return b
}

// IsPlanar reports whether the grid is a single z-slice of quads.
func (g *ImageData) IsPlanar() bool {
	return g.Dims[2] == 1 && g.Dims[0] > 1 && g.Dims[1] > 1
}

// CellCount returns the number of quad cells of a planar grid and zero
// for any other shape; volumetric cells are reached through sampling only.
func (g *ImageData) CellCount() int {
	if !g.IsPlanar() {
		return 0
	}
	return (g.Dims[0] - 1) * (g.Dims[1] - 1)
}

// QuadCell returns the corner ids of quad c in pixel order:
// (i,j), (i+1,j), (i,j+1), (i+1,j+1).
func (g *ImageData) QuadCell(c int) [4]int {
	cx := g.Dims[0] - 1
	i, j := c%cx, c/cx
	p0 := g.PointID(i, j, 0)
	p2 := g.PointID(i, j+1, 0)
	return [4]int{p0, p0 + 1, p2, p2 + 1}
}

type ScalarField struct {
	Name   string
	Values []float64
}

func NewScalarField(grid *ImageData, name string, values []float64) (*ScalarField, error) {
	if len(values) != grid.PointCount() {
		return nil, fmt.Errorf("%w: %q has %d values, grid has %d points", ErrDimensionMismatch, name, len(values), grid.PointCount())
	}
	return &ScalarField{Name: name, Values: values}, nil
}

// Range returns the smallest and largest sample.
func (s *ScalarField) Range() (float64, float64) {
	if len(s.Values) == 0 {
		return 0, 0
	}
	return floats.Min(s.Values), floats.Max(s.Values)
}

type VectorField struct {
	Name   string
	Values []Vec3
}

func NewVectorField(grid *ImageData, name string, values []Vec3) (*VectorField, error) {
	if len(values) != grid.PointCount() {
		return nil, fmt.Errorf("%w: %q has %d vectors, grid has %d points", ErrDimensionMismatch, name, len(values), grid.PointCount())
	}
	return &VectorField{Name: name, Values: values}, nil
}

// MaxMagnitude returns the largest vector norm in the field.
func (v *VectorField) MaxMagnitude() float64 {
	if len(v.Values) == 0 {
		return 0
	}
	mags := make([]float64, len(v.Values))
	for i, x := range v.Values {
		mags[i] = x.Norm()
	}
	return floats.Max(mags)
}

// Source supplies point coordinates, quad connectivity and named
// per-point arrays. Implementations must be read-only.
type Source interface {
	Grid() *ImageData
	PointCount() int
	Point(id int) Vec3
	CellCount() int
	QuadCell(c int) [4]int
	Scalars(name string) (*ScalarField, error)
	Vectors(name string) (*VectorField, error)
}

// Dataset is an in-memory Source.
type Dataset struct {
	grid    *ImageData
	scalars map[string]*ScalarField
	vectors map[string]*VectorField
}

func NewDataset(grid *ImageData) *Dataset {
	return &Dataset{
		grid:    grid,
		scalars: make(map[string]*ScalarField),
		vectors: make(map[string]*VectorField),
	}
}

func (d *Dataset) AddScalars(name string, values []float64) error {
	s, err := NewScalarField(d.grid, name, values)
	if err != nil {
		return err
	}
	d.scalars[name] = s
	return nil
}

func (d *Dataset) AddVectors(name string, values []Vec3) error {
	v, err := NewVectorField(d.grid, name, values)
	if err != nil {
		return err
	}
	d.vectors[name] = v
	return nil
}

func (d *Dataset) Grid() *ImageData      { return d.grid }
func (d *Dataset) PointCount() int       { return d.grid.PointCount() }
func (d *Dataset) Point(id int) Vec3     { return d.grid.Point(id) }
func (d *Dataset) CellCount() int        { return d.grid.CellCount() }
func (d *Dataset) QuadCell(c int) [4]int { return d.grid.QuadCell(c) }

func (d *Dataset) Scalars(name string) (*ScalarField, error) {
	s, ok := d.scalars[name]
	if !ok {
		return nil, fmt.Errorf("%w: scalars %q", ErrUnknownArray, name)
	}
	return s, nil
}

func (d *Dataset) Vectors(name string) (*VectorField, error) {
	v, ok := d.vectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: vectors %q", ErrUnknownArray, name)
	}
	return v, nil
}

// ArrayNames lists the scalar and vector arrays, each sorted.
func (d *Dataset) ArrayNames() (scalars, vectors []string) {
	for name := range d.scalars {
		scalars = append(scalars, name)
	}
	for name := range d.vectors {
		vectors = append(vectors, name)
	}
	sort.Strings(scalars)
	sort.Strings(vectors)
	return scalars, vectors
}

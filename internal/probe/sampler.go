package probe

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldlab/internal/field"
)

// planeTol is the relative tolerance for positions on a degenerate axis.
const planeTol = 1e-9

type Sampler struct {
	grid    *field.ImageData
	bounds  field.Bounds
	name    string
	scalars []float64
	vectors []field.Vec3
}

func NewScalar(grid *field.ImageData, s *field.ScalarField) (*Sampler, error) {
	if len(s.Values) != grid.PointCount() {
		return nil, fmt.Errorf("%w: %q", field.ErrDimensionMismatch, s.Name)
	}
	return &Sampler{grid: grid, bounds: grid.Bounds(), name: s.Name, scalars: s.Values}, nil
}

func NewVector(grid *field.ImageData, v *field.VectorField) (*Sampler, error) {
	if len(v.Values) != grid.PointCount() {
		return nil, fmt.Errorf("%w: %q", field.ErrDimensionMismatch, v.Name)
	}
	return &Sampler{grid: grid, bounds: grid.Bounds(), name: v.Name, vectors: v.Values}, nil
}

// FromSource builds a vector sampler for the named array of src.
func FromSource(src field.Source, vectors string) (*Sampler, error) {
	v, err := src.Vectors(vectors)
	if err != nil {
		return nil, err
	}
	return NewVector(src.Grid(), v)
}

func (s *Sampler) Bounds() field.Bounds { return s.bounds }
func (s *Sampler) Name() string         { return s.name }

// stencil holds the contributing vertex ids and their weights.
type stencil struct {
	ids [8]int
	w   [8]float64
	n   int
}

func (s *Sampler) locate(p field.Vec3) (stencil, bool) {
	var st stencil
	if !p.IsValid() {
		return st, false
	}

	var idx [3][2]int
	var wt [3][2]float64
	var cnt [3]int

	g := s.grid
	for a := 0; a < 3; a++ {
		n := g.Dims[a]
		if n == 1 {
			tol := planeTol * (1 + math.Abs(g.Origin[a]))
			if math.Abs(p[a]-g.Origin[a]) > tol {
				return st, false
			}
			idx[a][0], wt[a][0], cnt[a] = 0, 1, 1
			continue
		}

		// Inside-ness follows Bounds so both faces are accepted; u may
		// still round past the last vertex and is pulled back.
		if p[a] < s.bounds.Min[a] || p[a] > s.bounds.Max[a] {
			return st, false
		}
		u := math.Max(0, math.Min((p[a]-g.Origin[a])/g.Spacing[a], float64(n-1)))
		i := int(math.Floor(u))
		if i >= n-1 {
			i = n - 2
		}
		t := u - float64(i)
		idx[a] = [2]int{i, i + 1}
		wt[a] = [2]float64{1 - t, t}
		cnt[a] = 2
	}

	for dk := 0; dk < cnt[2]; dk++ {
		for dj := 0; dj < cnt[1]; dj++ {
			for di := 0; di < cnt[0]; di++ {
				st.ids[st.n] = g.PointID(idx[0][di], idx[1][dj], idx[2][dk])
				st.w[st.n] = wt[0][di] * wt[1][dj] * wt[2][dk]
				st.n++
			}
		}
	}
	return st, true
}

// Scalar interpolates the scalar field at p.
func (s *Sampler) Scalar(p field.Vec3) (float64, error) {
	if s.scalars == nil {
		return 0, fmt.Errorf("%w: %q carries no scalars", field.ErrUnknownArray, s.name)
	}
	st, ok := s.locate(p)
	if !ok {
		return 0, &field.OutOfBoundsError{Position: p, Field: s.name}
	}
	v := 0.0
	for i := 0; i < st.n; i++ {
		v += st.w[i] * s.scalars[st.ids[i]]
	}
	return v, nil
}

// Vector interpolates the vector field at p.
func (s *Sampler) Vector(p field.Vec3) (field.Vec3, error) {
	if s.vectors == nil {
		return field.Vec3{}, fmt.Errorf("%w: %q carries no vectors", field.ErrUnknownArray, s.name)
	}
	st, ok := s.locate(p)
	if !ok {
		return field.Vec3{}, &field.OutOfBoundsError{Position: p, Field: s.name}
	}
	var v field.Vec3
	for i := 0; i < st.n; i++ {
		v = v.AddScaled(s.vectors[st.ids[i]], st.w[i])
	}
	return v, nil
}

package contour

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldlab/internal/field"
)

// loop reorders pixel corners (i,j),(i+1,j),(i,j+1),(i+1,j+1) into a
// closed walk so consecutive entries share an edge.
var loop = [4]int{0, 1, 3, 2}

// Extract contours the named scalar array of src.
func Extract(src field.Source, scalars string, opts Options) (*PolylineSet, error) {
	s, err := src.Scalars(scalars)
	if err != nil {
		return nil, err
	}
	return ExtractField(src.Grid(), s, opts)
}

// ExtractField contours s at opts.Isovalue.
func ExtractField(grid *field.ImageData, s *field.ScalarField, opts Options) (*PolylineSet, error) {
	if !grid.IsPlanar() {
		return nil, fmt.Errorf("%w: contouring needs a planar grid, got dims %v", field.ErrInvalidGrid, grid.Dims)
	}
	if len(s.Values) != grid.PointCount() {
		return nil, fmt.Errorf("%w: %q", field.ErrDimensionMismatch, s.Name)
	}
	if math.IsNaN(opts.Isovalue) || math.IsInf(opts.Isovalue, 0) {
		return nil, &field.RangeError{Name: "isovalue", Value: opts.Isovalue, Min: math.Inf(-1), Max: math.Inf(1)}
	}

	n := grid.CellCount()
	if !opts.Parallel {
		set := &PolylineSet{}
		extractRange(grid, s.Values, 0, n, opts, set)
		return set, nil
	}

	chunks := field.Chunks(n, opts.MinChunk)
	parts := make([]*PolylineSet, len(chunks))
	field.RunChunks(chunks, func(c, start, end int) {
		part := &PolylineSet{}
		extractRange(grid, s.Values, start, end, opts, part)
		parts[c] = part
	})

	set := &PolylineSet{}
	for _, part := range parts {
		set.Append(part)
	}
	return set, nil
}

// ExtractLevels contours s at every level and merges the results in order.
func ExtractLevels(grid *field.ImageData, s *field.ScalarField, levels []float64, opts Options) (*PolylineSet, error) {
	set := &PolylineSet{}
	for _, v := range levels {
		opts.Isovalue = v
		part, err := ExtractField(grid, s, opts)
		if err != nil {
			return nil, fmt.Errorf("level %g: %w", v, err)
		}
		set.Append(part)
	}
	return set, nil
}

// ValidateIsovalue rejects isovalues outside [lo, hi].
func ValidateIsovalue(v, lo, hi float64) error {
	return field.CheckRange("isovalue", v, lo, hi)
}

func extractRange(grid *field.ImageData, values []float64, start, end int, opts Options, out *PolylineSet) {
	for c := start; c < end; c++ {
		extractCell(grid, values, c, opts, out)
	}
}

func extractCell(grid *field.ImageData, values []float64, c int, opts Options, out *PolylineSet) {
	v := opts.Isovalue
	quad := grid.QuadCell(c)

	var ids [4]int
	var s [4]float64
	allBelow, allAbove := true, true
	for k, corner := range loop {
		ids[k] = quad[corner]
		s[k] = values[ids[k]]
		if !(s[k] < v) {
			allBelow = false
		}
		if !(s[k] > v) {
			allAbove = false
		}
	}
	if allBelow || allAbove {
		return
	}

	var pts [4]field.Vec3
	n := 0
	for j := 0; j < 4; j++ {
		nj := (j + 1) % 4
		if (s[j] <= v && s[nj] > v) || (s[j] >= v && s[nj] < v) {
			t := (s[j] - v) / (s[j] - s[nj])
			a, b := grid.Point(ids[j]), grid.Point(ids[nj])
			pts[n] = field.Vec3{
				t*(b[0]-a[0]) + a[0],
				t*(b[1]-a[1]) + a[1],
				opts.PlaneZ,
			}
			n++
		}
	}

	switch n {
	case 0:
	case 2:
		out.AddPolyline(pts[0], pts[1])
	case 4:
		if opts.Pairing == AlternatePairing {
			out.AddPolyline(pts[1], pts[2])
			out.AddPolyline(pts[3], pts[0])
		} else {
			out.AddPolyline(pts[0], pts[1])
			out.AddPolyline(pts[2], pts[3])
		}
	default:
		out.Degenerate++
	}
}

package field

import (
	"errors"
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.AddScaled(b, 0.5); got != (Vec3{3, 4.5, 6}) {
		t.Errorf("AddScaled failed: got %v", got)
	}
	if got := (Vec3{3, 4, 0}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestVec3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		valid bool
	}{
		{"zero", Vec3{}, true},
		{"normal", Vec3{1, -2, 3}, true},
		{"with NaN", Vec3{1, math.NaN(), 0}, false},
		{"with +Inf", Vec3{math.Inf(1), 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestNewImageData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dims    [3]int
		spacing Vec3
	}{
		{"zero dim", [3]int{0, 2, 1}, Vec3{1, 1, 1}},
		{"single point", [3]int{1, 1, 1}, Vec3{1, 1, 1}},
		{"zero spacing", [3]int{2, 2, 1}, Vec3{0, 1, 1}},
		{"negative spacing", [3]int{2, 2, 2}, Vec3{1, 1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageData(tt.dims, Vec3{}, tt.spacing)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("expected ErrInvalidGrid, got %v", err)
			}
		})
	}
}

func TestImageData_Geometry(t *testing.T) {
	g, err := NewImageData([3]int{3, 2, 1}, Vec3{1, 2, 25}, Vec3{0.5, 2, 1})
	if err != nil {
		t.Fatalf("NewImageData failed: %v", err)
	}

	if g.PointCount() != 6 {
		t.Errorf("expected 6 points, got %d", g.PointCount())
	}
	if g.CellCount() != 2 {
		t.Errorf("expected 2 cells, got %d", g.CellCount())
	}
	if got := g.Point(g.PointID(2, 1, 0)); got != (Vec3{2, 4, 25}) {
		t.Errorf("Point(2,1,0) = %v", got)
	}

	b := g.Bounds()
	if b.Min != (Vec3{1, 2, 25}) || b.Max != (Vec3{2, 4, 25}) {
		t.Errorf("unexpected bounds %+v", b)
	}

	if got := g.QuadCell(1); got != [4]int{1, 2, 4, 5} {
		t.Errorf("QuadCell(1) = %v, want [1 2 4 5]", got)
	}
}

func TestImageData_VolumeHasNoQuads(t *testing.T) {
	g, err := NewImageData([3]int{4, 4, 4}, Vec3{}, Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("NewImageData failed: %v", err)
	}
	if g.IsPlanar() || g.CellCount() != 0 {
		t.Errorf("volume grid should expose no quad cells, got %d", g.CellCount())
	}
}

func TestBounds_ContainsAndClamp(t *testing.T) {
	b := Bounds{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}

	if !b.Contains(Vec3{1, 0, 0.5}) {
		t.Error("faces should be inside")
	}
	if b.Contains(Vec3{1.0001, 0, 0}) {
		t.Error("point past max face should be outside")
	}
	if got := b.Clamp(Vec3{-1, 0.5, 2}); got != (Vec3{0, 0.5, 1}) {
		t.Errorf("Clamp = %v", got)
	}
}

func TestDataset_Arrays(t *testing.T) {
	g, _ := NewImageData([3]int{2, 2, 1}, Vec3{}, Vec3{1, 1, 1})
	ds := NewDataset(g)

	if err := ds.AddScalars("p", []float64{1, 2, 3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := ds.AddScalars("p", []float64{-3, 2, 7, 0}); err != nil {
		t.Fatalf("AddScalars failed: %v", err)
	}

	s, err := ds.Scalars("p")
	if err != nil {
		t.Fatalf("Scalars failed: %v", err)
	}
	lo, hi := s.Range()
	if lo != -3 || hi != 7 {
		t.Errorf("Range = (%v, %v), want (-3, 7)", lo, hi)
	}

	if _, err := ds.Vectors("v"); !errors.Is(err, ErrUnknownArray) {
		t.Errorf("expected ErrUnknownArray, got %v", err)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	var err error = &OutOfBoundsError{Position: Vec3{2, 0, 0}, Field: "vectors"}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Error("OutOfBoundsError should match ErrOutOfBounds")
	}

	var oob *OutOfBoundsError
	if !errors.As(err, &oob) || oob.Position[0] != 2 {
		t.Errorf("errors.As failed: %v", err)
	}

	if err := CheckRange("isovalue", 700, -1438, 630); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if err := CheckRange("isovalue", 0, -1438, 630); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

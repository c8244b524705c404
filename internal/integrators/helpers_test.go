package integrators

import "github.com/san-kum/fieldlab/internal/field"

// analyticField evaluates fn inside bounds and reports out-of-bounds
// everywhere else.
type analyticField struct {
	fn     func(p field.Vec3) field.Vec3
	bounds field.Bounds
}

func (a *analyticField) Vector(p field.Vec3) (field.Vec3, error) {
	if !p.IsValid() || !a.bounds.Contains(p) {
		return field.Vec3{}, &field.OutOfBoundsError{Position: p}
	}
	return a.fn(p), nil
}

func (a *analyticField) Bounds() field.Bounds { return a.bounds }

var wide = field.Bounds{Min: field.Vec3{-100, -100, -100}, Max: field.Vec3{100, 100, 100}}

func constantField(c field.Vec3, b field.Bounds) *analyticField {
	return &analyticField{fn: func(field.Vec3) field.Vec3 { return c }, bounds: b}
}

// rotation is rigid rotation about z: (-y, x, 0).
func rotation() *analyticField {
	return &analyticField{
		fn:     func(p field.Vec3) field.Vec3 { return field.Vec3{-p[1], p[0], 0} },
		bounds: wide,
	}
}

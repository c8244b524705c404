package integrators

import "github.com/san-kum/fieldlab/internal/field"

type Euler struct {
	Policy BoundaryPolicy
}

func NewEuler(policy BoundaryPolicy) *Euler {
	return &Euler{Policy: policy}
}

func (e *Euler) Step(f VectorSampler, p field.Vec3, h float64) (field.Vec3, error) {
	v, err := e.Policy.sample(f, p)
	if err != nil {
		return p, err
	}
	return p.AddScaled(v, h), nil
}

package integrators

import "github.com/san-kum/fieldlab/internal/field"

// RK4 is the classical fourth-order Runge-Kutta scheme. It keeps no state
// between calls.
type RK4 struct {
	Policy BoundaryPolicy
}

func NewRK4(policy BoundaryPolicy) *RK4 {
	return &RK4{Policy: policy}
}

func (r *RK4) Step(f VectorSampler, p field.Vec3, h float64) (field.Vec3, error) {
	k1, err := r.Policy.sample(f, p)
	if err != nil {
		return p, err
	}

	k2, err := r.Policy.sample(f, p.AddScaled(k1, h*0.5))
	if err != nil {
		return p, err
	}

	k3, err := r.Policy.sample(f, p.AddScaled(k2, h*0.5))
	if err != nil {
		return p, err
	}

	k4, err := r.Policy.sample(f, p.AddScaled(k3, h))
	if err != nil {
		return p, err
	}

	var result field.Vec3
	for i := 0; i < 3; i++ {
		delta := (k1[i] + 2*k2[i] + 2*k3[i] + k4[i]) / 6
		result[i] = p[i] + h*delta
	}
	return result, nil
}

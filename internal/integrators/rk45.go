package integrators

import (
	"math"

	"github.com/san-kum/fieldlab/internal/field"
)

// Dormand-Prince coefficients (RK45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince embedded 5(4) pair. StepAdaptive returns the
// fifth-order position and a step size suggestion from the error estimate.
type RK45 struct {
	Policy   BoundaryPolicy
	Tol      float64
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45(policy BoundaryPolicy) *RK45 {
	return &RK45{
		Policy:   policy,
		Tol:      1e-6,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(f VectorSampler, p field.Vec3, h float64) (field.Vec3, error) {
	next, _, err := r.StepAdaptive(f, p, h, r.Tol)
	return next, err
}

func (r *RK45) StepAdaptive(f VectorSampler, p field.Vec3, h, tol float64) (field.Vec3, float64, error) {
	var k [7]field.Vec3
	var err error

	stage := func(i int, q field.Vec3) bool {
		k[i], err = r.Policy.sample(f, q)
		return err == nil
	}

	if !stage(0, p) {
		return p, h, err
	}
	if !stage(1, combine(p, h, k[:1], b21)) {
		return p, h, err
	}
	if !stage(2, combine(p, h, k[:2], b31, b32)) {
		return p, h, err
	}
	if !stage(3, combine(p, h, k[:3], b41, b42, b43)) {
		return p, h, err
	}
	if !stage(4, combine(p, h, k[:4], b51, b52, b53, b54)) {
		return p, h, err
	}
	if !stage(5, combine(p, h, k[:5], b61, b62, b63, b64, b65)) {
		return p, h, err
	}

	next := combine(p, h, k[:6], c1, 0, c3, c4, c5, c6)

	if !stage(6, next) {
		return p, h, err
	}

	errMax := 0.0
	for i := 0; i < 3; i++ {
		errEst := h * (dc1*k[0][i] + dc3*k[2][i] + dc4*k[3][i] + dc5*k[4][i] + dc6*k[5][i] + dc7*k[6][i])
		scale := math.Abs(p[i]) + math.Abs(h*k[0][i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	errRatio := errMax / tol

	var hNew float64
	if errRatio > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		hNew = h * scale
	} else {
		if errRatio > 0 {
			scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
			hNew = h * scale
		} else {
			hNew = h * r.maxScale
		}
	}

	return next, hNew, nil
}

// combine returns p + h*sum(w[i]*k[i]).
func combine(p field.Vec3, h float64, k []field.Vec3, w ...float64) field.Vec3 {
	out := p
	for i, wi := range w {
		if wi == 0 {
			continue
		}
		out = out.AddScaled(k[i], h*wi)
	}
	return out
}

package integrators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
)

// VectorSampler interpolates a vector field. Positions outside Bounds
// must return an error matching field.ErrOutOfBounds.
type VectorSampler interface {
	Vector(p field.Vec3) (field.Vec3, error)
	Bounds() field.Bounds
}

type Integrator interface {
	Step(f VectorSampler, p field.Vec3, h float64) (field.Vec3, error)
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(f VectorSampler, p field.Vec3, h, tol float64) (field.Vec3, float64, error)
}

// BoundaryPolicy decides what a stage evaluation does when the sampler
// reports an out-of-bounds position.
type BoundaryPolicy int

const (
	// Zero treats the stage as the zero vector, so traces stall at the edge.
	Zero BoundaryPolicy = iota
	// Abort returns the out-of-bounds error from Step.
	Abort
	// Clamp re-samples at the nearest point of the domain.
	Clamp
)

func (b BoundaryPolicy) String() string {
	switch b {
	case Zero:
		return "zero"
	case Abort:
		return "abort"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("policy(%d)", int(b))
	}
}

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return Zero, nil
	case "abort":
		return Abort, nil
	case "clamp":
		return Clamp, nil
	}
	return 0, fmt.Errorf("unknown boundary policy: %s", s)
}

// sample evaluates f at p under policy b. Errors other than
// out-of-bounds always propagate.
func (b BoundaryPolicy) sample(f VectorSampler, p field.Vec3) (field.Vec3, error) {
	v, err := f.Vector(p)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, field.ErrOutOfBounds) {
		return field.Vec3{}, err
	}

	switch b {
	case Zero:
		return field.Vec3{}, nil
	case Clamp:
		q := f.Bounds().Clamp(p)
		if !q.IsValid() {
			return field.Vec3{}, err
		}
		return f.Vector(q)
	default:
		return field.Vec3{}, err
	}
}

package streamline

import (
	"sync"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/integrators"
)

type Tracer struct {
	sampler integrators.VectorSampler
	integ   integrators.Integrator
	opts    Options
}

func New(sampler integrators.VectorSampler, integ integrators.Integrator, opts Options) (*Tracer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Tracer{sampler: sampler, integ: integ, opts: opts}, nil
}

func (t *Tracer) Options() Options { return t.opts }

// CheckSeed reports whether the sampler can resolve seed.
func (t *Tracer) CheckSeed(seed field.Vec3) error {
	_, err := t.sampler.Vector(seed)
	return err
}

// Generate traces from seed with the tracer's step size and step count.
func (t *Tracer) Generate(seed field.Vec3) (*Streamline, error) {
	return t.trace(seed, t.opts.StepSize, t.opts.MaxSteps)
}

// GenerateWith traces from seed with an explicit step size and step count.
func (t *Tracer) GenerateWith(seed field.Vec3, stepSize float64, maxSteps int) (*Streamline, error) {
	opts := t.opts
	opts.StepSize, opts.MaxSteps = stepSize, maxSteps
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return t.trace(seed, stepSize, maxSteps)
}

func (t *Tracer) trace(seed field.Vec3, h float64, maxSteps int) (*Streamline, error) {
	var fwd, bwd []field.Vec3
	var fwdErr, bwdErr error

	if t.opts.Concurrent {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			fwd, fwdErr = t.pass(seed, h, maxSteps, Forward)
		}()
		go func() {
			defer wg.Done()
			bwd, bwdErr = t.pass(seed, -h, maxSteps, Backward)
		}()
		wg.Wait()
	} else {
		fwd, fwdErr = t.pass(seed, h, maxSteps, Forward)
		if fwdErr == nil {
			bwd, bwdErr = t.pass(seed, -h, maxSteps, Backward)
		}
	}

	if fwdErr != nil {
		return nil, fwdErr
	}
	if bwdErr != nil {
		return nil, bwdErr
	}

	points := make([]field.Vec3, 0, len(bwd)+1+len(fwd))
	for i := len(bwd) - 1; i >= 0; i-- {
		points = append(points, bwd[i])
	}
	points = append(points, seed)
	points = append(points, fwd...)

	return &Streamline{
		Points:    points,
		SeedIndex: len(bwd),
		Backward:  len(bwd),
		Forward:   len(fwd),
	}, nil
}

// reserveSteps bounds the up-front allocation of a pass; longer passes grow.
const reserveSteps = 4096

// pass integrates from seed and returns the visited positions in the
// order they were computed, seed excluded.
func (t *Tracer) pass(seed field.Vec3, h float64, maxSteps int, dir Direction) ([]field.Vec3, error) {
	pts := make([]field.Vec3, 0, min(maxSteps, reserveSteps))
	bounds := t.sampler.Bounds()
	p := seed

	for i := 0; i < maxSteps; i++ {
		next, err := t.integ.Step(t.sampler, p, h)
		if err != nil {
			return nil, &TraceError{Direction: dir, Step: i, Position: p, Err: err}
		}

		switch t.opts.Termination {
		case StopOnExit:
			if !bounds.Contains(next) {
				return pts, nil
			}
		case StopOnStagnation:
			if next.Sub(p).Norm() < t.opts.StagnationTol {
				return pts, nil
			}
		}

		pts = append(pts, next)
		p = next
	}
	return pts, nil
}

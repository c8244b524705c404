package streamline

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
)

// Termination selects when a pass stops before MaxSteps.
type Termination int

const (
	// FixedSteps always takes MaxSteps steps per direction.
	FixedSteps Termination = iota
	// StopOnExit ends a pass when the next position leaves the domain.
	StopOnExit
	// StopOnStagnation ends a pass when a step moves less than StagnationTol.
	StopOnStagnation
)

func (t Termination) String() string {
	switch t {
	case FixedSteps:
		return "fixed"
	case StopOnExit:
		return "exit"
	case StopOnStagnation:
		return "stagnation"
	default:
		return fmt.Sprintf("termination(%d)", int(t))
	}
}

func ParseTermination(s string) (Termination, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed", "fixed_steps":
		return FixedSteps, nil
	case "exit", "stop_on_exit":
		return StopOnExit, nil
	case "stagnation", "stop_on_stagnation":
		return StopOnStagnation, nil
	}
	return 0, fmt.Errorf("unknown termination: %s", s)
}

const (
	DefaultStepSize      = 0.05
	DefaultMaxSteps      = 1000
	DefaultStagnationTol = 1e-9
)

type Options struct {
	StepSize      float64
	MaxSteps      int
	Termination   Termination
	StagnationTol float64
	// Concurrent runs the backward and forward passes in parallel.
	Concurrent bool
}

func DefaultOptions() Options {
	return Options{
		StepSize:      DefaultStepSize,
		MaxSteps:      DefaultMaxSteps,
		Termination:   FixedSteps,
		StagnationTol: DefaultStagnationTol,
	}
}

func (o Options) Validate() error {
	if o.StepSize == 0 || math.IsNaN(o.StepSize) || math.IsInf(o.StepSize, 0) {
		return &field.RangeError{Name: "step_size", Value: o.StepSize, Min: math.Inf(-1), Max: math.Inf(1)}
	}
	if o.MaxSteps < 0 {
		return &field.RangeError{Name: "max_steps", Value: float64(o.MaxSteps), Min: 0, Max: math.MaxInt32}
	}
	if o.StagnationTol < 0 || math.IsNaN(o.StagnationTol) {
		return &field.RangeError{Name: "stagnation_tol", Value: o.StagnationTol, Min: 0, Max: math.Inf(1)}
	}
	return nil
}

// Streamline is an ordered point sequence through a seed.
type Streamline struct {
	Points    []field.Vec3
	SeedIndex int
	// Backward and Forward count the points on each side of the seed.
	Backward int
	Forward  int
}

func (s *Streamline) Seed() field.Vec3 {
	return s.Points[s.SeedIndex]
}

func (s *Streamline) Len() int {
	return len(s.Points)
}

// Lines returns one two-point segment per consecutive pair of points.
func (s *Streamline) Lines() [][]int {
	if len(s.Points) < 2 {
		return nil
	}
	lines := make([][]int, len(s.Points)-1)
	for i := range lines {
		lines[i] = []int{i, i + 1}
	}
	return lines
}

func (s *Streamline) ArcLength() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i].Sub(s.Points[i-1]).Norm()
	}
	return total
}

// Direction names a tracing pass.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// TraceError reports the integrator error that ended a pass.
type TraceError struct {
	Direction Direction
	Step      int
	Position  field.Vec3
	Err       error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("%s pass, step %d at (%g, %g, %g): %v",
		e.Direction, e.Step, e.Position[0], e.Position[1], e.Position[2], e.Err)
}

func (e *TraceError) Unwrap() error {
	return e.Err
}

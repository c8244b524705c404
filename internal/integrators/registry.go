package integrators

import (
	"fmt"
	"sort"
)

var registry = map[string]func(BoundaryPolicy) Integrator{
	"euler": func(p BoundaryPolicy) Integrator { return NewEuler(p) },
	"rk4":   func(p BoundaryPolicy) Integrator { return NewRK4(p) },
	"rk45":  func(p BoundaryPolicy) Integrator { return NewRK45(p) },
}

// New returns the named integrator configured with policy.
func New(name string, policy BoundaryPolicy) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(policy), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

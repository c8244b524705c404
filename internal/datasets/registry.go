package datasets

import (
	"fmt"
	"sort"

	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/field"
)

type Generator func(Params) (*field.Dataset, error)

type entry struct {
	gen  Generator
	desc string
}

type Registry struct {
	datasets map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{datasets: make(map[string]entry)}

	r.Register("tornado", "Crawfis tornado vector field on the unit cube (n, t)", func(p Params) (*field.Dataset, error) {
		n, err := p.resolution(32, MaxVolumeResolution)
		if err != nil {
			return nil, err
		}
		return Tornado(n, p.get("t", 0))
	})
	r.Register("uniform", "constant vector field (c,0,0) on the unit cube (n, c)", func(p Params) (*field.Dataset, error) {
		n, err := p.resolution(8, MaxVolumeResolution)
		if err != nil {
			return nil, err
		}
		return Uniform(n, p.get("c", 1))
	})
	r.Register("vortex", "rigid rotation about z over [-1,1]^2 (n, omega)", func(p Params) (*field.Dataset, error) {
		n, err := p.resolution(41, MaxResolution)
		if err != nil {
			return nil, err
		}
		return Vortex(n, p.get("omega", 1))
	})
	r.Register("saddle", "scalar x^2-y^2 over [-1,1]^2 (n, z)", func(p Params) (*field.Dataset, error) {
		n, err := p.resolution(64, MaxResolution)
		if err != nil {
			return nil, err
		}
		return Saddle(n, p.get("z", contour.DefaultPlaneZ))
	})
	r.Register("ripple", "damped radial cosine over [-1,1]^2 (n, k, z)", func(p Params) (*field.Dataset, error) {
		n, err := p.resolution(64, MaxResolution)
		if err != nil {
			return nil, err
		}
		return Ripple(n, p.get("k", 2), p.get("z", contour.DefaultPlaneZ))
	})
	r.Register("gaussians", "pressure-like scalar slice over [0,500]^2 (n, z)", func(p Params) (*field.Dataset, error) {
		n, err := p.resolution(100, MaxResolution)
		if err != nil {
			return nil, err
		}
		return Gaussians(n, p.get("z", contour.DefaultPlaneZ))
	})

	return r
}

func (r *Registry) Register(name, desc string, gen Generator) {
	r.datasets[name] = entry{gen: gen, desc: desc}
}

func (r *Registry) Get(name string, params Params) (*field.Dataset, error) {
	e, ok := r.datasets[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset: %s", name)
	}
	return e.gen(params)
}

func (r *Registry) Describe(name string) (string, error) {
	e, ok := r.datasets[name]
	if !ok {
		return "", fmt.Errorf("unknown dataset: %s", name)
	}
	return e.desc, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

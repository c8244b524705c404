package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/datasets"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/integrators"
	"github.com/san-kum/fieldlab/internal/streamline"
)

const (
	DefaultDataset    = "tornado"
	DefaultResolution = 32
	DefaultIntegrator = "rk4"

	// Declared range of the hurricane pressure slice.
	DefaultMinValue = -1438.0
	DefaultMaxValue = 630.0
)

type Config struct {
	Dataset    string             `yaml:"dataset"`
	Resolution int                `yaml:"resolution"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Scalars    string             `yaml:"scalars"`
	Vectors    string             `yaml:"vectors"`
	Contour    ContourConfig      `yaml:"contour"`
	Streamline StreamlineConfig   `yaml:"streamline"`
	Output     string             `yaml:"output,omitempty"`
}

type ContourConfig struct {
	Isovalue float64   `yaml:"isovalue"`
	Levels   []float64 `yaml:"levels,omitempty"`
	PlaneZ   float64   `yaml:"plane_z"`
	Pairing  string    `yaml:"pairing"`
	MinValue float64   `yaml:"min_value"`
	MaxValue float64   `yaml:"max_value"`
	Parallel bool      `yaml:"parallel"`
}

type StreamlineConfig struct {
	Seed        [3]float64 `yaml:"seed,flow"`
	StepSize    float64    `yaml:"step_size"`
	MaxSteps    int        `yaml:"max_steps"`
	Integrator  string     `yaml:"integrator"`
	Boundary    string     `yaml:"boundary"`
	Termination string     `yaml:"termination"`
	Concurrent  bool       `yaml:"concurrent"`
}

func DefaultConfig() *Config {
	return &Config{
		Dataset:    DefaultDataset,
		Resolution: DefaultResolution,
		Scalars:    datasets.Scalars,
		Vectors:    datasets.Vectors,
		Contour: ContourConfig{
			PlaneZ:   contour.DefaultPlaneZ,
			Pairing:  contour.DiscoveryOrder.String(),
			MinValue: DefaultMinValue,
			MaxValue: DefaultMaxValue,
		},
		Streamline: StreamlineConfig{
			Seed:        [3]float64{0.5, 0.5, 0.5},
			StepSize:    streamline.DefaultStepSize,
			MaxSteps:    streamline.DefaultMaxSteps,
			Integrator:  DefaultIntegrator,
			Boundary:    integrators.Zero.String(),
			Termination: streamline.FixedSteps.String(),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that would fail during extraction or tracing.
func (c *Config) Validate() error {
	if c.Contour.MinValue > c.Contour.MaxValue {
		return fmt.Errorf("%w: min_value %g above max_value %g", field.ErrInvalidRange, c.Contour.MinValue, c.Contour.MaxValue)
	}
	for _, v := range c.Isovalues() {
		if err := contour.ValidateIsovalue(v, c.Contour.MinValue, c.Contour.MaxValue); err != nil {
			return err
		}
	}
	if _, err := c.ContourOptions(); err != nil {
		return err
	}
	if _, err := c.StreamlineOptions(); err != nil {
		return err
	}
	if _, err := c.Integrator(); err != nil {
		return err
	}
	return nil
}

// Isovalues returns Levels when set and the single Isovalue otherwise.
func (c *Config) Isovalues() []float64 {
	if len(c.Contour.Levels) > 0 {
		return c.Contour.Levels
	}
	return []float64{c.Contour.Isovalue}
}

// DatasetParams merges Resolution into Params as "n".
func (c *Config) DatasetParams() datasets.Params {
	p := make(datasets.Params, len(c.Params)+1)
	for k, v := range c.Params {
		p[k] = v
	}
	if c.Resolution > 0 {
		p["n"] = float64(c.Resolution)
	}
	if _, ok := p["z"]; !ok {
		p["z"] = c.Contour.PlaneZ
	}
	return p
}

func (c *Config) ContourOptions() (contour.Options, error) {
	pairing, err := contour.ParsePairing(c.Contour.Pairing)
	if err != nil {
		return contour.Options{}, err
	}
	opts := contour.DefaultOptions()
	opts.Isovalue = c.Contour.Isovalue
	opts.PlaneZ = c.Contour.PlaneZ
	opts.Pairing = pairing
	opts.Parallel = c.Contour.Parallel
	return opts, nil
}

func (c *Config) StreamlineOptions() (streamline.Options, error) {
	term, err := streamline.ParseTermination(c.Streamline.Termination)
	if err != nil {
		return streamline.Options{}, err
	}
	opts := streamline.DefaultOptions()
	opts.StepSize = c.Streamline.StepSize
	opts.MaxSteps = c.Streamline.MaxSteps
	opts.Termination = term
	opts.Concurrent = c.Streamline.Concurrent
	if err := opts.Validate(); err != nil {
		return streamline.Options{}, err
	}
	return opts, nil
}

func (c *Config) Integrator() (integrators.Integrator, error) {
	policy, err := integrators.ParseBoundaryPolicy(c.Streamline.Boundary)
	if err != nil {
		return nil, err
	}
	return integrators.New(c.Streamline.Integrator, policy)
}

func (c *Config) Seed() field.Vec3 {
	return field.Vec3(c.Streamline.Seed)
}

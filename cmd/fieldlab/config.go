package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
)

// buildConfig layers defaults, an optional preset, an optional config file
// and finally the flags the user actually set.
func buildConfig(cmd *cobra.Command, args []string, defaultDataset string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Dataset = defaultDataset
	if len(args) > 0 {
		cfg.Dataset = args[0]
	}

	// Load preset if specified
	if preset != "" {
		p := config.GetPreset(cfg.Dataset, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Dataset))
		}
		c := *p
		cfg = &c
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Dataset = args[0]
	}

	// Apply flags (CLI flags override config)
	flags := cmd.Flags()
	if flags.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if flags.Changed("param") {
		merged := make(map[string]float64, len(cfg.Params)+len(params))
		for k, v := range cfg.Params {
			merged[k] = v
		}
		for k, raw := range params {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", k, err)
			}
			merged[k] = v
		}
		cfg.Params = merged
	}

	if flags.Changed("isovalue") {
		cfg.Contour.Isovalue = isovalue
		cfg.Contour.Levels = nil
	}
	if flags.Changed("levels") {
		cfg.Contour.Levels = levels
	}
	if flags.Changed("plane-z") {
		cfg.Contour.PlaneZ = planeZ
	}
	if flags.Changed("pairing") {
		cfg.Contour.Pairing = pairing
	}
	if flags.Changed("min") {
		cfg.Contour.MinValue = minValue
	}
	if flags.Changed("max") {
		cfg.Contour.MaxValue = maxValue
	}
	if flags.Changed("parallel") {
		cfg.Contour.Parallel = parallel
	}
	if flags.Changed("scalars") {
		cfg.Scalars = scalarsArr
	}

	if flags.Changed("seed") {
		seed, err := vec3("seed", seedFlag)
		if err != nil {
			return nil, err
		}
		cfg.Streamline.Seed = seed
	}
	if flags.Changed("step") {
		cfg.Streamline.StepSize = stepSize
	}
	if flags.Changed("steps") {
		cfg.Streamline.MaxSteps = maxSteps
	}
	if flags.Changed("integrator") {
		cfg.Streamline.Integrator = integrator
	}
	if flags.Changed("boundary") {
		cfg.Streamline.Boundary = boundary
	}
	if flags.Changed("termination") {
		cfg.Streamline.Termination = termination
	}
	if flags.Changed("concurrent") {
		cfg.Streamline.Concurrent = concurrent
	}
	if flags.Changed("vectors") {
		cfg.Vectors = vectorsArr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func vec3(name string, v []float64) (field.Vec3, error) {
	if len(v) != 3 {
		return field.Vec3{}, fmt.Errorf("%w: --%s needs 3 components, got %d", field.ErrDimensionMismatch, name, len(v))
	}
	return field.Vec3{v[0], v[1], v[2]}, nil
}

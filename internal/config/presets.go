package config

import "sort"

func preset(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"gaussians": {
		"isabel": preset(func(c *Config) {
			c.Dataset, c.Resolution = "gaussians", 500
			c.Contour.Isovalue = 0
		}),
		"eye": preset(func(c *Config) {
			c.Dataset, c.Resolution = "gaussians", 250
			c.Contour.Isovalue = -1000
		}),
		"bands": preset(func(c *Config) {
			c.Dataset, c.Resolution = "gaussians", 250
			c.Contour.Levels = []float64{-1200, -800, -400, 0, 200, 400}
			c.Contour.Parallel = true
		}),
	},
	"saddle": {
		"cross": preset(func(c *Config) {
			c.Dataset, c.Resolution = "saddle", 64
			c.Contour.Isovalue = 0
			c.Contour.MinValue, c.Contour.MaxValue = -1, 1
		}),
		"alternate": preset(func(c *Config) {
			c.Dataset, c.Resolution = "saddle", 64
			c.Contour.Isovalue = 0
			c.Contour.MinValue, c.Contour.MaxValue = -1, 1
			c.Contour.Pairing = "alternate"
		}),
	},
	"tornado": {
		"tornado": preset(func(c *Config) {
			c.Dataset, c.Resolution = "tornado", 64
		}),
		"core": preset(func(c *Config) {
			c.Dataset, c.Resolution = "tornado", 64
			c.Streamline.Seed = [3]float64{0.5, 0.6, 0.1}
			c.Streamline.StepSize = 0.01
			c.Streamline.MaxSteps = 5000
			c.Streamline.Concurrent = true
		}),
		"bounded": preset(func(c *Config) {
			c.Dataset, c.Resolution = "tornado", 32
			c.Streamline.Termination = "exit"
			c.Streamline.MaxSteps = 10000
		}),
	},
	"vortex": {
		"orbit": preset(func(c *Config) {
			c.Dataset, c.Resolution = "vortex", 41
			c.Streamline.Seed = [3]float64{0.5, 0, 0.5}
			c.Streamline.StepSize = 0.01
			c.Streamline.MaxSteps = 315
		}),
	},
}

func GetPreset(dataset, name string) *Config {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	cfg, ok := datasetPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(dataset string) []string {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(datasetPresets))
	for name := range datasetPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetDatasets lists the datasets that have presets.
func PresetDatasets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldlab/internal/analysis"
	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/datasets"
	"github.com/san-kum/fieldlab/internal/export"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/integrators"
	"github.com/san-kum/fieldlab/internal/probe"
	"github.com/san-kum/fieldlab/internal/report"
	"github.com/san-kum/fieldlab/internal/storage"
	"github.com/san-kum/fieldlab/internal/streamline"
)

func runContour(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args, "gaussians")
	if err != nil {
		return err
	}

	ds, name, err := loadScalarDataset(cfg)
	if err != nil {
		return err
	}
	s, err := ds.Scalars(cfg.Scalars)
	if err != nil {
		return err
	}
	opts, err := cfg.ContourOptions()
	if err != nil {
		return err
	}

	lo, hi := s.Range()
	for _, v := range cfg.Isovalues() {
		if v < lo || v > hi {
			slog.Warn("isovalue outside the data range, no isolines", "isovalue", v, "min", lo, "max", hi)
		}
	}

	slog.Debug("extracting contours", "dataset", name, "cells", ds.CellCount(), "levels", len(cfg.Isovalues()), "parallel", opts.Parallel)
	start := time.Now()
	set, err := contour.ExtractLevels(ds.Grid(), s, cfg.Isovalues(), opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	slog.Debug("extraction done", "segments", set.SegmentCount(), "elapsed", elapsed)

	st := analysis.ContourStats(set)
	pd := export.FromPolylines(set)

	runID, err := saveRun(storage.Run{
		Kind:    storage.KindContour,
		Dataset: name,
		Params:  cfg.DatasetParams(),
		Settings: map[string]string{
			"isovalues": joinFloats(cfg.Isovalues()),
			"pairing":   opts.Pairing.String(),
			"plane_z":   strconv.FormatFloat(opts.PlaneZ, 'g', -1, 64),
		},
		Stats: map[string]float64{
			"segments":   float64(st.Segments),
			"length":     st.Length,
			"degenerate": float64(st.Degenerate),
			"data_min":   lo,
			"data_max":   hi,
		},
		Data: pd,
	})
	if err != nil {
		return err
	}
	if err := writeOut(pd); err != nil {
		return err
	}

	rows := []report.Row{
		report.Text("dataset", name),
		report.Text("isovalues", joinFloats(cfg.Isovalues())),
		report.Text("pairing", opts.Pairing.String()),
		report.Int("cells", ds.CellCount()),
		report.Int("segments", st.Segments),
		report.Float("total length", st.Length),
		report.Text("elapsed", elapsed.String()),
	}
	if runID != "" {
		rows = append(rows, report.Text("run id", runID))
	}
	fmt.Println(report.Summary("contour", rows))
	if err := set.Err(); err != nil {
		fmt.Println(report.Warning(err.Error()))
	}
	return nil
}

func loadScalarDataset(cfg *config.Config) (*field.Dataset, string, error) {
	if inputCSV == "" {
		ds, err := datasets.NewRegistry().Get(cfg.Dataset, cfg.DatasetParams())
		return ds, cfg.Dataset, err
	}

	o, err := vec3("origin", origin)
	if err != nil {
		return nil, "", err
	}
	sp, err := vec3("spacing", spacing)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(inputCSV)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	ds, err := datasets.LoadScalarCSV(f, o, sp)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", inputCSV, err)
	}
	cfg.Scalars = datasets.Scalars
	return ds, filepath.Base(inputCSV), nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args, config.DefaultDataset)
	if err != nil {
		return err
	}

	ds, err := datasets.NewRegistry().Get(cfg.Dataset, cfg.DatasetParams())
	if err != nil {
		return err
	}
	vf, err := ds.Vectors(cfg.Vectors)
	if err != nil {
		return err
	}
	sampler, err := probe.NewVector(ds.Grid(), vf)
	if err != nil {
		return err
	}
	fieldMax := vf.MaxMagnitude()
	integ, err := cfg.Integrator()
	if err != nil {
		return err
	}
	opts, err := cfg.StreamlineOptions()
	if err != nil {
		return err
	}
	tracer, err := streamline.New(sampler, integ, opts)
	if err != nil {
		return err
	}

	seed := cfg.Seed()
	seeds := []field.Vec3{seed}
	if rakeN > 1 {
		to, err := vec3("rake-to", rakeTo)
		if err != nil {
			return err
		}
		seeds = streamline.Rake(seed, to, rakeN)
	}
	for _, s := range seeds {
		if err := tracer.CheckSeed(s); err != nil {
			slog.Warn("seed cannot be resolved, the trace will not leave it", "seed", s, "err", err)
		}
	}

	slog.Debug("tracing", "dataset", cfg.Dataset, "integrator", cfg.Streamline.Integrator, "seeds", len(seeds), "step", opts.StepSize, "steps", opts.MaxSteps)
	start := time.Now()
	lines, err := tracer.TraceMany(cmd.Context(), seeds)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	parts := make([]*export.PolyData, len(lines))
	var total analysis.LineStats
	for i, line := range lines {
		parts[i] = export.FromStreamline(line)
		st := analysis.StreamlineStats(line, sampler)
		total.Points += st.Points
		total.ArcLength += st.ArcLength
		total.MeanSpeed += st.MeanSpeed / float64(len(lines))
		total.MaxSpeed = max(total.MaxSpeed, st.MaxSpeed)
		total.Stalled += st.Stalled
	}
	pd := export.Merge(parts...)

	runID, err := saveRun(storage.Run{
		Kind:    storage.KindStreamline,
		Dataset: cfg.Dataset,
		Params:  cfg.DatasetParams(),
		Settings: map[string]string{
			"seed":        joinFloats(seed[:]),
			"integrator":  cfg.Streamline.Integrator,
			"boundary":    cfg.Streamline.Boundary,
			"termination": opts.Termination.String(),
		},
		Stats: map[string]float64{
			"seeds":      float64(len(lines)),
			"seed_index": float64(lines[0].SeedIndex),
			"step_size":  opts.StepSize,
			"arc_length": total.ArcLength,
			"mean_speed": total.MeanSpeed,
			"max_speed":  total.MaxSpeed,
			"field_max":  fieldMax,
			"stalled":    float64(total.Stalled),
		},
		Data: pd,
	})
	if err != nil {
		return err
	}
	if err := writeOut(pd); err != nil {
		return err
	}

	rows := []report.Row{
		report.Text("dataset", cfg.Dataset),
		report.Text("seed", joinFloats(seed[:])),
		report.Text("integrator", cfg.Streamline.Integrator),
		report.Int("streamlines", len(lines)),
		report.Int("points", total.Points),
		report.Int("backward", lines[0].Backward),
		report.Int("forward", lines[0].Forward),
		report.Float("arc length", total.ArcLength),
		report.Float("mean speed", total.MeanSpeed),
		report.Float("field max |v|", fieldMax),
		report.Text("elapsed", elapsed.String()),
	}
	if runID != "" {
		rows = append(rows, report.Text("run id", runID))
	}
	fmt.Println(report.Summary("streamline", rows))
	if total.Stalled > 0 {
		fmt.Println(report.Warning(fmt.Sprintf("%d zero-length steps, the trace reached the domain edge", total.Stalled)))
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args[1:]
	cfg, err := buildConfig(cmd, args[:1], config.DefaultDataset)
	if err != nil {
		return err
	}

	ds, err := datasets.NewRegistry().Get(cfg.Dataset, cfg.DatasetParams())
	if err != nil {
		return err
	}
	sampler, err := probe.FromSource(ds, cfg.Vectors)
	if err != nil {
		return err
	}
	policy, err := integrators.ParseBoundaryPolicy(cfg.Streamline.Boundary)
	if err != nil {
		return err
	}
	opts, err := cfg.StreamlineOptions()
	if err != nil {
		return err
	}
	seed := cfg.Seed()

	fmt.Printf("comparing integrators for %s (h=%.4f, steps=%d)\n\n", cfg.Dataset, opts.StepSize, opts.MaxSteps)
	fmt.Printf("%-12s  %-8s  %-12s  %-12s  %-8s  %-12s\n", "integrator", "points", "arc_length", "end_offset", "stalled", "time_ms")
	fmt.Println(report.Separator(74))

	var ref *field.Vec3
	for _, name := range names {
		integ, err := integrators.New(name, policy)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}
		tracer, err := streamline.New(sampler, integ, opts)
		if err != nil {
			return err
		}

		start := time.Now()
		line, err := tracer.Generate(seed)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		end := line.Points[line.Len()-1]
		if ref == nil {
			ref = &end
		}
		st := analysis.StreamlineStats(line, nil)
		fmt.Printf("%-12s  %8d  %12.6f  %12.2e  %8d  %12.2f\n",
			name, line.Len(), st.ArcLength, end.Sub(*ref).Norm(), st.Stalled, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func benchDataset(cmd *cobra.Command, args []string) error {
	name := args[0]
	registry := datasets.NewRegistry()

	probeDS, err := registry.Get(name, datasets.Params{"n": 4})
	if err != nil {
		return err
	}
	_, vectors := probeDS.ArrayNames()

	fmt.Printf("benchmarking %s\n\n", name)
	w := newTable()

	if len(vectors) > 0 {
		fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tPOINTS\tTIME\tSTEPS/SEC")
		ds, err := registry.Get(name, nil)
		if err != nil {
			return err
		}
		sampler, err := probe.FromSource(ds, datasets.Vectors)
		if err != nil {
			return err
		}
		seed := ds.Grid().Bounds().Min.AddScaled(ds.Grid().Bounds().Size(), 0.5)
		for _, integName := range integrators.Names() {
			integ, err := integrators.New(integName, integrators.Zero)
			if err != nil {
				return err
			}
			for _, steps := range []int{100, 1000, 10000} {
				opts := streamline.DefaultOptions()
				opts.MaxSteps = steps
				opts.StepSize = 0.005
				tracer, err := streamline.New(sampler, integ, opts)
				if err != nil {
					return err
				}
				start := time.Now()
				line, err := tracer.Generate(seed)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)
				fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
					integName, steps, line.Len(), elapsed, float64(2*steps)/elapsed.Seconds())
			}
		}
		return w.Flush()
	}

	fmt.Fprintln(w, "RESOLUTION\tCELLS\tMODE\tSEGMENTS\tTIME\tCELLS/SEC")
	for _, n := range []int{64, 256, 1024} {
		ds, err := registry.Get(name, datasets.Params{"n": float64(n)})
		if err != nil {
			return err
		}
		s, err := ds.Scalars(datasets.Scalars)
		if err != nil {
			return err
		}
		lo, hi := s.Range()
		for _, par := range []bool{false, true} {
			opts := contour.DefaultOptions()
			opts.Isovalue = (lo + hi) / 2
			opts.Parallel = par
			start := time.Now()
			set, err := contour.ExtractField(ds.Grid(), s, opts)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			mode := "serial"
			if par {
				mode = "parallel"
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%v\t%.0f\n",
				n, ds.CellCount(), mode, set.SegmentCount(), elapsed, float64(ds.CellCount())/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func saveRun(run storage.Run) (string, error) {
	if noSave {
		return "", nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	runID, err := st.Save(run)
	if err != nil {
		return "", err
	}
	slog.Debug("run saved", "id", runID, "dir", dataDir)
	return runID, nil
}

func writeOut(pd *export.PolyData) error {
	if outPath == "" {
		return nil
	}
	if err := export.WriteFile(outPath, pd); err != nil {
		return err
	}
	slog.Debug("wrote output", "path", outPath)
	return nil
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

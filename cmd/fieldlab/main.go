package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	// Config file
	configFile string
	// Preset name
	preset     string
	resolution int
	params     map[string]string
	noSave     bool
	outPath    string

	// contour
	isovalue   float64
	levels     []float64
	planeZ     float64
	pairing    string
	minValue   float64
	maxValue   float64
	parallel   bool
	scalarsArr string
	inputCSV   string
	origin     []float64
	spacing    []float64

	// trace
	seedFlag    []float64
	stepSize    float64
	maxSteps    int
	integrator  string
	boundary    string
	termination string
	concurrent  bool
	vectorsArr  string
	rakeTo      []float64
	rakeN       int
)

// main registers the fieldlab commands and flags and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "fieldlab",
		Short:         "contour and streamline extraction for gridded fields",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	contourCmd := &cobra.Command{
		Use:   "contour [dataset]",
		Short: "extract isolines from a planar scalar field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runContour,
	}
	addRunFlags(contourCmd)
	contourCmd.Flags().Float64Var(&isovalue, "isovalue", 0, "isovalue")
	contourCmd.Flags().Float64SliceVar(&levels, "levels", nil, "several isovalues, merged into one output")
	contourCmd.Flags().Float64Var(&planeZ, "plane-z", 25, "z coordinate of emitted points")
	contourCmd.Flags().StringVar(&pairing, "pairing", "discovery", "saddle pairing (discovery|alternate)")
	contourCmd.Flags().Float64Var(&minValue, "min", -1438, "lowest accepted isovalue")
	contourCmd.Flags().Float64Var(&maxValue, "max", 630, "highest accepted isovalue")
	contourCmd.Flags().BoolVar(&parallel, "parallel", false, "extract cells in parallel")
	contourCmd.Flags().StringVar(&scalarsArr, "scalars", "scalars", "scalar array name")
	contourCmd.Flags().StringVar(&inputCSV, "input", "", "read the scalar slice from a csv file")
	contourCmd.Flags().Float64SliceVar(&origin, "origin", []float64{0, 0, 0}, "grid origin for --input")
	contourCmd.Flags().Float64SliceVar(&spacing, "spacing", []float64{1, 1, 1}, "grid spacing for --input")

	traceCmd := &cobra.Command{
		Use:   "trace [dataset]",
		Short: "trace a streamline through a vector field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addRunFlags(traceCmd)
	addTraceFlags(traceCmd)
	traceCmd.Flags().Float64SliceVar(&rakeTo, "rake-to", []float64{0.5, 0.5, 0.5}, "far end of a seed rake starting at --seed")
	traceCmd.Flags().IntVar(&rakeN, "rake-n", 1, "number of seeds on the rake")

	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "list built-in datasets",
		RunE:  listDatasets,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [dataset]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "winding and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [path]",
		Short: "write a run as vtp, svg, csv or json",
		Args:  cobra.ExactArgs(2),
		RunE:  exportRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [dataset] [integrators...]",
		Short: "trace the same seed with several integrators",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)
	addTraceFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [dataset]",
		Short: "benchmark extraction or tracing",
		Args:  cobra.ExactArgs(1),
		RunE:  benchDataset,
	}

	rootCmd.AddCommand(contourCmd, traceCmd, datasetsCmd, presetsCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportCmd, compareCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "grid points per axis")
	cmd.Flags().StringToStringVar(&params, "param", nil, "dataset parameter key=value")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the result to this file")
}

func addTraceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&seedFlag, "seed", []float64{0.5, 0.5, 0.5}, "seed point x,y,z")
	cmd.Flags().Float64Var(&stepSize, "step", 0.05, "step size")
	cmd.Flags().IntVar(&maxSteps, "steps", 1000, "steps per direction")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler|rk4|rk45)")
	cmd.Flags().StringVar(&boundary, "boundary", "zero", "out-of-bounds policy (zero|abort|clamp)")
	cmd.Flags().StringVar(&termination, "termination", "fixed", "when to stop (fixed|exit|stagnation)")
	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "trace both directions concurrently")
	cmd.Flags().StringVar(&vectorsArr, "vectors", "vectors", "vector array name")
}

package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldlab/internal/analysis"
	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/datasets"
	"github.com/san-kum/fieldlab/internal/export"
	"github.com/san-kum/fieldlab/internal/report"
	"github.com/san-kum/fieldlab/internal/storage"
	"github.com/san-kum/fieldlab/internal/streamline"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func listDatasets(cmd *cobra.Command, args []string) error {
	registry := datasets.NewRegistry()
	w := newTable()
	fmt.Fprintln(w, "NAME\tARRAYS\tDESCRIPTION")
	for _, name := range registry.List() {
		desc, _ := registry.Describe(name)
		ds, err := registry.Get(name, datasets.Params{"n": 4})
		if err != nil {
			return err
		}
		scalars, vectors := ds.ArrayNames()
		arrays := append(scalars, vectors...)
		fmt.Fprintf(w, "%s\t%v\t%s\n", name, arrays, desc)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.PresetDatasets()
	if len(args) > 0 {
		names = args
	}
	for _, ds := range names {
		presets := config.ListPresets(ds)
		if len(presets) == 0 {
			fmt.Printf("no presets for dataset: %s\n", ds)
			continue
		}
		fmt.Printf("presets for %s:\n", ds)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tKIND\tDATASET\tTIME\tPOINTS\tLINES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Kind,
			run.Dataset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Lines,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func loadRun(runID string) (*storage.RunMetadata, *export.PolyData, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	pd, err := st.LoadPolyData(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(pd.Points) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, pd, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, pd, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("dataset: %s\n", meta.Dataset)
	fmt.Printf("points: %d\n\n", len(pd.Points))

	switch meta.Kind {
	case storage.KindStreamline:
		series := make([][]float64, 3)
		for axis := range series {
			series[axis] = make([]float64, len(pd.Points))
			for i, p := range pd.Points {
				series[axis][i] = p[axis]
			}
		}
		graph := asciigraph.PlotMany(series,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
			asciigraph.SeriesLegends("x", "y", "z"),
			asciigraph.Caption("coordinates along the streamline"),
		)
		fmt.Println(graph)
	default:
		lengths := analysis.SegmentLengths(&contour.PolylineSet{Points: pd.Points, Lines: pd.Lines})
		if len(lengths) > 0 {
			graph := asciigraph.Plot(lengths,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("segment lengths"),
			)
			fmt.Println(graph)
		}
	}

	fmt.Println()
	fmt.Println(report.Subtle.Render("xy projection"))
	fmt.Print(analysis.ProjectionASCII(pd.Points, 0, 1, 60, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, pd, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if meta.Kind != storage.KindStreamline {
		set := &contour.PolylineSet{Points: pd.Points, Lines: pd.Lines}
		st := analysis.ContourStats(set)
		fmt.Println(report.Summary("contour "+meta.ID, []report.Row{
			report.Int("segments", st.Segments),
			report.Float("total length", st.Length),
			report.Int("degenerate", int(meta.Stats["degenerate"])),
		}))
		fmt.Println(report.Sparkline(analysis.SegmentLengths(set), 60))
		return nil
	}

	sl := &streamline.Streamline{Points: pd.Points, SeedIndex: int(meta.Stats["seed_index"])}
	ext := analysis.StreamlineStats(sl, nil).Extent
	center := ext.Min.AddScaled(ext.Size(), 0.5)

	ps := analysis.WindingSpectrum(sl, center)
	if len(ps) == 0 {
		return fmt.Errorf("not enough points")
	}

	fmt.Printf("winding analysis: %s\n", meta.ID)
	fmt.Printf("dataset: %s\n\n", meta.Dataset)

	plotData := ps[:max(len(ps)/4, 1)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x offset)"),
	)
	fmt.Println(graph)
	fmt.Println()

	angles := analysis.WindingAngle(sl, center)
	turns := angles[len(angles)-1] / (2 * math.Pi)
	bin, freq := analysis.DominantFrequency(ps)
	crossings := analysis.PlaneCrossings(sl, 2, center[2])

	rows := []report.Row{
		report.Int("points", sl.Len()),
		report.Float("turns", turns),
		report.Int("dominant bin", bin),
		report.Float("cycles/step", freq),
		report.Int("mid-plane crossings", len(crossings)),
	}
	if freq > 0 {
		rows = append(rows, report.Float("steps/turn", 1/freq))
		if h := meta.Stats["step_size"]; h != 0 {
			rows = append(rows, report.Float("t per turn", math.Abs(h)/freq))
		}
	}
	fmt.Println(report.Summary("streamline", rows))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	_, pd, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := export.WriteFile(args[1], pd); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/fieldlab/internal/export"
	"github.com/san-kum/fieldlab/internal/field"
)

func sampleRun() Run {
	return Run{
		Kind:     KindStreamline,
		Dataset:  "tornado",
		Params:   map[string]float64{"n": 32},
		Settings: map[string]string{"integrator": "rk4"},
		Stats:    map[string]float64{"arc_length": 1.5},
		Data: &export.PolyData{
			Points: []field.Vec3{{0.5, 0.5, 0.5}, {0.55, 0.5, 0.5}, {0.6, 0.51, 0.5}},
			Lines:  [][]int{{0, 1}, {1, 2}},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "streamline_") {
		t.Errorf("expected streamline_ prefix, got '%s'", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Dataset != "tornado" {
		t.Errorf("expected dataset 'tornado', got '%s'", meta.Dataset)
	}

	if meta.Points != 3 || meta.Lines != 2 {
		t.Errorf("expected 3 points and 2 lines, got %d and %d", meta.Points, meta.Lines)
	}

	if meta.Stats["arc_length"] != 1.5 {
		t.Errorf("expected arc_length 1.5, got %f", meta.Stats["arc_length"])
	}

	if meta.Settings["integrator"] != "rk4" {
		t.Errorf("expected integrator rk4, got %s", meta.Settings["integrator"])
	}

	pd, err := st.LoadPolyData(runID)
	if err != nil {
		t.Fatalf("load polydata failed: %v", err)
	}

	want := sampleRun().Data
	if len(pd.Points) != len(want.Points) {
		t.Fatalf("expected %d points, got %d", len(want.Points), len(pd.Points))
	}
	for i := range want.Points {
		if pd.Points[i] != want.Points[i] {
			t.Errorf("point %d: expected %v, got %v", i, want.Points[i], pd.Points[i])
		}
	}
	if len(pd.Lines) != 2 || pd.Lines[1][0] != 1 || pd.Lines[1][1] != 2 {
		t.Errorf("unexpected lines %v", pd.Lines)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	run := sampleRun()
	run.Kind = KindContour
	second, err := st.Save(run)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct run ids, got %s twice", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "points.csv", "lines.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreErrors(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadPolyData("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.Save(Run{Kind: KindContour}); err == nil {
		t.Error("expected error for run without data")
	}

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	bad := filepath.Join(tmpDir, runID, "lines.csv")
	if err := os.WriteFile(bad, []byte("0,7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadPolyData(runID); !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/fieldlab/internal/export"
	"github.com/san-kum/fieldlab/internal/field"
)

const (
	KindContour    = "contour"
	KindStreamline = "streamline"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Dataset   string             `json:"dataset"`
	Timestamp time.Time          `json:"timestamp"`
	Params    map[string]float64 `json:"params,omitempty"`
	Settings  map[string]string  `json:"settings,omitempty"`
	Stats     map[string]float64 `json:"stats,omitempty"`
	Points    int                `json:"points"`
	Lines     int                `json:"lines"`
}

// Run describes what to persist; the store fills in ID, timestamp and counts.
type Run struct {
	Kind     string
	Dataset  string
	Params   map[string]float64
	Settings map[string]string
	Stats    map[string]float64
	Data     *export.PolyData
}

func newRunID(kind string) string {
	return fmt.Sprintf("%s_%s", kind, uuid.NewString()[:8])
}

func (s *Store) Save(run Run) (string, error) {
	if run.Data == nil {
		return "", errors.New("storage: run has no data")
	}
	runID := newRunID(run.Kind)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      run.Kind,
		Dataset:   run.Dataset,
		Timestamp: time.Now(),
		Params:    run.Params,
		Settings:  run.Settings,
		Stats:     run.Stats,
		Points:    len(run.Data.Points),
		Lines:     len(run.Data.Lines),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writePoints(filepath.Join(runDir, "points.csv"), run.Data.Points); err != nil {
		return "", err
	}
	if err := writeLines(filepath.Join(runDir, "lines.csv"), run.Data.Lines); err != nil {
		return "", err
	}

	return runID, nil
}

func writePoints(path string, points []field.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p[0], 'g', -1, 64),
			strconv.FormatFloat(p[1], 'g', -1, 64),
			strconv.FormatFloat(p[2], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeLines stores one polyline per row as its point ids.
func writeLines(path string, lines [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, line := range lines {
		row := make([]string, len(line))
		for i, id := range line {
			row[i] = strconv.Itoa(id)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadPolyData(runID string) (*export.PolyData, error) {
	runDir := filepath.Join(s.baseDir, runID)
	points, err := readPoints(filepath.Join(runDir, "points.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	lines, err := readLines(filepath.Join(runDir, "lines.csv"), len(points))
	if err != nil {
		return nil, err
	}
	return &export.PolyData{Points: points, Lines: lines}, nil
}

func readPoints(path string) ([]field.Vec3, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]field.Vec3, 0, len(records))
	for i := 1; i < len(records); i++ {
		var p field.Vec3
		for j := 0; j < 3; j++ {
			p[j], err = strconv.ParseFloat(records[i][j], 64)
			if err != nil {
				return nil, fmt.Errorf("points.csv row %d: %w", i, err)
			}
		}
		points = append(points, p)
	}
	return points, nil
}

func readLines(path string, numPoints int) ([][]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	lines := make([][]int, 0, len(records))
	for i, record := range records {
		line := make([]int, len(record))
		for j, cell := range record {
			id, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("lines.csv row %d: %w", i+1, err)
			}
			if id < 0 || id >= numPoints {
				return nil, fmt.Errorf("%w: lines.csv row %d references point %d of %d", field.ErrDimensionMismatch, i+1, id, numPoints)
			}
			line[j] = id
		}
		lines = append(lines, line)
	}
	return lines, nil
}

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/streamline"
)

var ErrUnknownFormat = errors.New("export: unknown output format")

// PolyData is a point buffer plus polylines indexing into it.
type PolyData struct {
	Points []field.Vec3 `json:"points"`
	Lines  [][]int      `json:"lines"`
}

func FromPolylines(set *contour.PolylineSet) *PolyData {
	return &PolyData{Points: set.Points, Lines: set.Lines}
}

// FromStreamline emits one two-point line per consecutive pair.
func FromStreamline(sl *streamline.Streamline) *PolyData {
	return &PolyData{Points: sl.Points, Lines: sl.Lines()}
}

// Merge concatenates several point sets, shifting line indices.
func Merge(parts ...*PolyData) *PolyData {
	out := &PolyData{}
	for _, pd := range parts {
		base := len(out.Points)
		out.Points = append(out.Points, pd.Points...)
		for _, line := range pd.Lines {
			shifted := make([]int, len(line))
			for i, id := range line {
				shifted[i] = id + base
			}
			out.Lines = append(out.Lines, shifted)
		}
	}
	return out
}

// WriteFile writes pd in the format named by the extension of path:
// .vtp, .svg, .csv or .json.
func WriteFile(path string, pd *PolyData) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtp", ".svg", ".csv", ".json":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case ".vtp":
		err = WriteVTP(f, pd)
	case ".svg":
		err = WriteSVG(f, pd, 800, 800, "#00ff00")
	case ".csv":
		err = WriteCSV(f, pd)
	case ".json":
		err = WriteJSON(f, pd)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

package datasets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
)

// LoadScalarCSV reads a planar scalar slice. Each record is one grid row
// (y), each column one x sample. Every row must have the same width.
func LoadScalarCSV(r io.Reader, origin, spacing field.Vec3) (*field.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var values []float64
	rows, cols := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: %v", field.ErrDimensionMismatch, err)
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if rows == 0 {
			cols = len(record)
		}
		for c, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", rows+1, c+1, err)
			}
			values = append(values, v)
		}
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: empty csv", field.ErrInvalidGrid)
	}

	spacing[2] = 1
	grid, err := field.NewImageData([3]int{cols, rows, 1}, origin, spacing)
	if err != nil {
		return nil, err
	}
	ds := field.NewDataset(grid)
	if err := ds.AddScalars(Scalars, values); err != nil {
		return nil, err
	}
	return ds, nil
}

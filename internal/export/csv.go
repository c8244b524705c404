package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes one row per line vertex: line, index, x, y, z.
func WriteCSV(w io.Writer, pd *PolyData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"line", "index", "x", "y", "z"}); err != nil {
		return err
	}
	for li, line := range pd.Lines {
		for _, id := range line {
			p := pd.Points[id]
			row := []string{
				strconv.Itoa(li),
				strconv.Itoa(id),
				formatFloat(p[0]),
				formatFloat(p[1]),
				formatFloat(p[2]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

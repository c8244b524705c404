package export

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

type vtkFile struct {
	XMLName   xml.Name `xml:"VTKFile"`
	Type      string   `xml:"type,attr"`
	Version   string   `xml:"version,attr"`
	ByteOrder string   `xml:"byte_order,attr"`
	Piece     vtkPiece `xml:"PolyData>Piece"`
}

type vtkPiece struct {
	NumberOfPoints int            `xml:"NumberOfPoints,attr"`
	NumberOfVerts  int            `xml:"NumberOfVerts,attr"`
	NumberOfLines  int            `xml:"NumberOfLines,attr"`
	NumberOfStrips int            `xml:"NumberOfStrips,attr"`
	NumberOfPolys  int            `xml:"NumberOfPolys,attr"`
	Points         vtkDataArray   `xml:"Points>DataArray"`
	Lines          []vtkDataArray `xml:"Lines>DataArray"`
}

type vtkDataArray struct {
	Type       string `xml:"type,attr"`
	Name       string `xml:"Name,attr,omitempty"`
	Components int    `xml:"NumberOfComponents,attr,omitempty"`
	Format     string `xml:"format,attr"`
	Data       string `xml:",chardata"`
}

// WriteVTP writes pd as an ASCII VTK XML PolyData file.
func WriteVTP(w io.Writer, pd *PolyData) error {
	var coords strings.Builder
	for i, p := range pd.Points {
		if i > 0 {
			coords.WriteByte(' ')
		}
		coords.WriteString(formatFloat(p[0]))
		coords.WriteByte(' ')
		coords.WriteString(formatFloat(p[1]))
		coords.WriteByte(' ')
		coords.WriteString(formatFloat(p[2]))
	}

	var conn, offsets []string
	total := 0
	for _, line := range pd.Lines {
		for _, id := range line {
			conn = append(conn, strconv.Itoa(id))
		}
		total += len(line)
		offsets = append(offsets, strconv.Itoa(total))
	}

	doc := vtkFile{
		Type:      "PolyData",
		Version:   "0.1",
		ByteOrder: "LittleEndian",
		Piece: vtkPiece{
			NumberOfPoints: len(pd.Points),
			NumberOfLines:  len(pd.Lines),
			Points: vtkDataArray{
				Type:       "Float64",
				Name:       "Points",
				Components: 3,
				Format:     "ascii",
				Data:       coords.String(),
			},
			Lines: []vtkDataArray{
				{Type: "Int64", Name: "connectivity", Format: "ascii", Data: strings.Join(conn, " ")},
				{Type: "Int64", Name: "offsets", Format: "ascii", Data: strings.Join(offsets, " ")},
			},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

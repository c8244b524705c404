package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteSVG draws the XY projection of pd, one path per line.
func WriteSVG(w io.Writer, pd *PolyData, width, height int, strokeColor string) error {
	_, err := io.WriteString(w, PolyDataToSVG(pd, width, height, strokeColor))
	return err
}

// PolyDataToSVG renders the XY projection of pd as an SVG document
func PolyDataToSVG(pd *PolyData, width, height int, strokeColor string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="%s" stroke-width="1.5">
`, width, height, width, height, strokeColor))

	if len(pd.Points) > 0 {
		minX, maxX := pd.Points[0][0], pd.Points[0][0]
		minY, maxY := pd.Points[0][1], pd.Points[0][1]
		for _, p := range pd.Points {
			if p[0] < minX {
				minX = p[0]
			}
			if p[0] > maxX {
				maxX = p[0]
			}
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}

		// Add padding
		rangeX := maxX - minX
		rangeY := maxY - minY
		if rangeX == 0 {
			rangeX = 1
		}
		if rangeY == 0 {
			rangeY = 1
		}
		minX -= rangeX * 0.1
		minY -= rangeY * 0.1
		rangeX *= 1.2
		rangeY *= 1.2

		for _, line := range pd.Lines {
			if len(line) < 2 {
				continue
			}
			sb.WriteString(`<path d="`)
			for i, id := range line {
				p := pd.Points[id]
				x := (p[0] - minX) / rangeX * float64(width)
				y := float64(height) - (p[1]-minY)/rangeY*float64(height)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

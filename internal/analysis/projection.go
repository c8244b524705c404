package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/streamline"
)

// ProjectionASCII draws points projected onto axes (ax, ay) as a
// width x height character canvas. The window is the points' extent
// grown by a tenth on each side; coordinate axes are drawn where they
// pass through it.
func ProjectionASCII(points []field.Vec3, ax, ay, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 || ax < 0 || ax > 2 || ay < 0 || ay > 2 {
		return ""
	}

	c := newCanvas(pad(extent(points), 0.1), ax, ay, width, height)
	for _, p := range points {
		c.set(p, '•', true)
	}

	var origin field.Vec3
	if c.win.Min[ax] <= 0 && c.win.Max[ax] >= 0 {
		for row := 0; row < height; row++ {
			c.setCell(row, c.col(origin[ax]), '│', false)
		}
	}
	if c.win.Min[ay] <= 0 && c.win.Max[ay] >= 0 {
		for col := 0; col < width; col++ {
			c.setCell(c.row(origin[ay]), col, '─', false)
		}
	}
	return c.String()
}

// pad grows b by frac of its size on every axis. Flat axes get a unit span.
func pad(b field.Bounds, frac float64) field.Bounds {
	size := b.Size()
	for i := 0; i < 3; i++ {
		if size[i] == 0 {
			size[i] = 1
		}
		b.Min[i] -= size[i] * frac
		b.Max[i] += size[i] * frac
	}
	return b
}

type canvas struct {
	cells  [][]rune
	win    field.Bounds
	ax, ay int
}

func newCanvas(win field.Bounds, ax, ay, width, height int) *canvas {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", width))
	}
	return &canvas{cells: cells, win: win, ax: ax, ay: ay}
}

func (c *canvas) col(x float64) int {
	w := len(c.cells[0])
	return int((x - c.win.Min[c.ax]) / (c.win.Max[c.ax] - c.win.Min[c.ax]) * float64(w-1))
}

// row counts from the top, so larger y lands higher on screen.
func (c *canvas) row(y float64) int {
	h := len(c.cells)
	return h - 1 - int((y-c.win.Min[c.ay])/(c.win.Max[c.ay]-c.win.Min[c.ay])*float64(h-1))
}

func (c *canvas) set(p field.Vec3, r rune, overwrite bool) {
	c.setCell(c.row(p[c.ay]), c.col(p[c.ax]), r, overwrite)
}

func (c *canvas) setCell(row, col int, r rune, overwrite bool) {
	if row < 0 || row >= len(c.cells) || col < 0 || col >= len(c.cells[row]) {
		return
	}
	if overwrite || c.cells[row][col] == ' ' {
		c.cells[row][col] = r
	}
}

func (c *canvas) String() string {
	var sb strings.Builder
	for _, row := range c.cells {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PlaneCrossings returns the points where sl crosses the plane
// p[axis] == value, linearly interpolated between neighbouring points.
func PlaneCrossings(sl *streamline.Streamline, axis int, value float64) []field.Vec3 {
	if axis < 0 || axis > 2 {
		return nil
	}
	var out []field.Vec3
	for i := 1; i < len(sl.Points); i++ {
		a, b := sl.Points[i-1], sl.Points[i]
		da, db := a[axis]-value, b[axis]-value
		if da == 0 && db == 0 {
			continue
		}
		if (da < 0 && db >= 0) || (da > 0 && db <= 0) {
			frac := da / (da - db)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			q := a.AddScaled(b.Sub(a), frac)
			q[axis] = value
			out = append(out, q)
		}
	}
	return out
}

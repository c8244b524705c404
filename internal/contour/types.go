package contour

import (
	"fmt"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
)

// Pairing selects how the four crossings of a saddle cell are joined.
type Pairing int

const (
	// DiscoveryOrder joins crossings (1st,2nd) and (3rd,4th) in edge-walk order.
	DiscoveryOrder Pairing = iota
	// AlternatePairing joins (2nd,3rd) and (4th,1st), the other diagonal resolution.
	AlternatePairing
)

func (p Pairing) String() string {
	switch p {
	case DiscoveryOrder:
		return "discovery"
	case AlternatePairing:
		return "alternate"
	default:
		return fmt.Sprintf("pairing(%d)", int(p))
	}
}

func ParsePairing(s string) (Pairing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "discovery", "discovery_order":
		return DiscoveryOrder, nil
	case "alternate", "alternate_pairing":
		return AlternatePairing, nil
	}
	return 0, fmt.Errorf("unknown saddle pairing: %s", s)
}

// DefaultPlaneZ is the depth of the pressure slice the tool was built for.
const DefaultPlaneZ = 25.0

type Options struct {
	Isovalue float64
	// PlaneZ is the z coordinate assigned to every crossing point.
	PlaneZ   float64
	Pairing  Pairing
	Parallel bool
	// MinChunk is the smallest number of cells handed to one worker.
	MinChunk int
}

func DefaultOptions() Options {
	return Options{
		PlaneZ:   DefaultPlaneZ,
		Pairing:  DiscoveryOrder,
		MinChunk: 1024,
	}
}

// PolylineSet is a point buffer plus lines indexing into it.
type PolylineSet struct {
	Points []field.Vec3
	Lines  [][]int

	// Degenerate counts cells with an odd number of crossings.
	Degenerate int
}

// AddPolyline appends pts to the point buffer and records a line over
// the new indices.
func (ps *PolylineSet) AddPolyline(pts ...field.Vec3) {
	base := len(ps.Points)
	ps.Points = append(ps.Points, pts...)
	line := make([]int, len(pts))
	for i := range line {
		line[i] = base + i
	}
	ps.Lines = append(ps.Lines, line)
}

// Append moves the contents of other to the end of ps, shifting its indices.
func (ps *PolylineSet) Append(other *PolylineSet) {
	base := len(ps.Points)
	ps.Points = append(ps.Points, other.Points...)
	for _, l := range other.Lines {
		shifted := make([]int, len(l))
		for i, id := range l {
			shifted[i] = id + base
		}
		ps.Lines = append(ps.Lines, shifted)
	}
	ps.Degenerate += other.Degenerate
}

// Err reports skipped cells as field.ErrDegenerateCell, or nil.
func (ps *PolylineSet) Err() error {
	if ps.Degenerate == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d cells skipped", field.ErrDegenerateCell, ps.Degenerate)
}

func (ps *PolylineSet) SegmentCount() int {
	n := 0
	for _, l := range ps.Lines {
		if len(l) > 1 {
			n += len(l) - 1
		}
	}
	return n
}

// Validate checks that every line has at least two points and only
// references existing points.
func (ps *PolylineSet) Validate() error {
	for i, l := range ps.Lines {
		if len(l) < 2 {
			return fmt.Errorf("contour: line %d has %d points", i, len(l))
		}
		for _, id := range l {
			if id < 0 || id >= len(ps.Points) {
				return fmt.Errorf("contour: line %d references point %d of %d", i, id, len(ps.Points))
			}
		}
	}
	return nil
}

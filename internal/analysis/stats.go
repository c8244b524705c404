package analysis

import (
	"math"

	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/streamline"
)

// Prober evaluates the vector field along a line.
type Prober interface {
	Vector(p field.Vec3) (field.Vec3, error)
}

type LineStats struct {
	Points    int          `json:"points"`
	ArcLength float64      `json:"arc_length"`
	Extent    field.Bounds `json:"extent"`
	MeanSpeed float64      `json:"mean_speed"`
	MaxSpeed  float64      `json:"max_speed"`
	// Stalled counts zero-length steps.
	Stalled int `json:"stalled"`
	// Outside counts points the prober could not resolve.
	Outside int `json:"outside"`
}

// StreamlineStats measures sl. A nil prober skips the speed columns.
func StreamlineStats(sl *streamline.Streamline, prober Prober) LineStats {
	st := LineStats{Points: sl.Len(), ArcLength: sl.ArcLength(), Extent: extent(sl.Points)}

	for i := 1; i < len(sl.Points); i++ {
		if sl.Points[i] == sl.Points[i-1] {
			st.Stalled++
		}
	}

	if prober == nil {
		return st
	}
	sum, n := 0.0, 0
	for _, p := range sl.Points {
		v, err := prober.Vector(p)
		if err != nil {
			st.Outside++
			continue
		}
		speed := v.Norm()
		sum += speed
		st.MaxSpeed = math.Max(st.MaxSpeed, speed)
		n++
	}
	if n > 0 {
		st.MeanSpeed = sum / float64(n)
	}
	return st
}

type SetStats struct {
	Points     int          `json:"points"`
	Segments   int          `json:"segments"`
	Length     float64      `json:"length"`
	Degenerate int          `json:"degenerate"`
	Extent     field.Bounds `json:"extent"`
}

func ContourStats(set *contour.PolylineSet) SetStats {
	st := SetStats{
		Points:     len(set.Points),
		Segments:   set.SegmentCount(),
		Degenerate: set.Degenerate,
		Extent:     extent(set.Points),
	}
	for _, line := range set.Lines {
		for i := 1; i < len(line); i++ {
			st.Length += set.Points[line[i]].Sub(set.Points[line[i-1]]).Norm()
		}
	}
	return st
}

// SegmentLengths lists the length of every polyline in set.
func SegmentLengths(set *contour.PolylineSet) []float64 {
	out := make([]float64, len(set.Lines))
	for i, line := range set.Lines {
		for j := 1; j < len(line); j++ {
			out[i] += set.Points[line[j]].Sub(set.Points[line[j-1]]).Norm()
		}
	}
	return out
}

func extent(points []field.Vec3) field.Bounds {
	if len(points) == 0 {
		return field.Bounds{}
	}
	b := field.Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = math.Min(b.Min[i], p[i])
			b.Max[i] = math.Max(b.Max[i], p[i])
		}
	}
	return b
}

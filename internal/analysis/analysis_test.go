package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/fieldlab/internal/contour"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/streamline"
)

type constProber struct {
	v      field.Vec3
	bounds field.Bounds
}

func (c constProber) Vector(p field.Vec3) (field.Vec3, error) {
	if !c.bounds.Contains(p) {
		return field.Vec3{}, &field.OutOfBoundsError{Position: p}
	}
	return c.v, nil
}

func line(points ...field.Vec3) *streamline.Streamline {
	return &streamline.Streamline{Points: points}
}

func TestStreamlineStats(t *testing.T) {
	sl := line(
		field.Vec3{0, 0, 0},
		field.Vec3{1, 0, 0},
		field.Vec3{1, 2, 0},
		field.Vec3{1, 2, 0},
		field.Vec3{1, 2, 0},
	)
	prober := constProber{v: field.Vec3{3, 4, 0}, bounds: field.Bounds{Max: field.Vec3{1, 1, 1}}}

	st := StreamlineStats(sl, prober)
	assert.Equal(t, 5, st.Points)
	assert.InDelta(t, 3.0, st.ArcLength, 1e-12)
	assert.Equal(t, 2, st.Stalled)
	assert.Equal(t, 3, st.Outside)
	assert.InDelta(t, 5.0, st.MeanSpeed, 1e-12)
	assert.InDelta(t, 5.0, st.MaxSpeed, 1e-12)
	assert.Equal(t, field.Bounds{Max: field.Vec3{1, 2, 0}}, st.Extent)

	bare := StreamlineStats(sl, nil)
	assert.Zero(t, bare.MeanSpeed)
	assert.Zero(t, bare.Outside)
}

func TestContourStats(t *testing.T) {
	set := &contour.PolylineSet{}
	set.AddPolyline(field.Vec3{0, 0, 25}, field.Vec3{3, 4, 25})
	set.AddPolyline(field.Vec3{1, 1, 25}, field.Vec3{1, 2, 25})
	set.Degenerate = 1

	st := ContourStats(set)
	assert.Equal(t, 4, st.Points)
	assert.Equal(t, 2, st.Segments)
	assert.Equal(t, 1, st.Degenerate)
	assert.InDelta(t, 6.0, st.Length, 1e-12)
	assert.Equal(t, field.Vec3{3, 4, 25}, st.Extent.Max)

	assert.InDeltaSlice(t, []float64{5, 1}, SegmentLengths(set), 1e-12)
}

func TestPowerSpectrum(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		cycles float64
		bins   int
	}{
		{"power of two", 64, 8, 32},
		{"padded", 100, 25, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]float64, tt.n)
			for i := range values {
				values[i] = 2 + math.Sin(2*math.Pi*tt.cycles*float64(i)/float64(tt.n))
			}
			ps := PowerSpectrum(values)
			require.Len(t, ps, tt.bins)
			assert.Less(t, ps[0], 1e-9, "mean is removed")

			bin, freq := DominantFrequency(ps)
			assert.InDelta(t, tt.cycles/float64(tt.n), freq, 1.0/float64(2*tt.bins))
			assert.Greater(t, bin, 0)
		})
	}

	assert.Nil(t, PowerSpectrum([]float64{1}))
	bin, freq := DominantFrequency(nil)
	assert.Zero(t, bin)
	assert.Zero(t, freq)
}

func TestWinding(t *testing.T) {
	const n, turns = 128, 4
	pts := make([]field.Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * turns * float64(i) / n
		pts[i] = field.Vec3{0.5 + 0.2*math.Cos(a), 0.5 + 0.2*math.Sin(a), float64(i) / n}
	}
	sl := line(pts...)
	center := field.Vec3{0.5, 0.5, 0}

	angles := WindingAngle(sl, center)
	require.Len(t, angles, n)
	assert.Equal(t, 0.0, angles[0])
	assert.InDelta(t, 2*math.Pi*turns*float64(n-1)/n, angles[n-1], 1e-9)

	bin, _ := DominantFrequency(WindingSpectrum(sl, center))
	assert.Equal(t, turns, bin)
}

func TestPlaneCrossings(t *testing.T) {
	sl := line(
		field.Vec3{0, 0, 0},
		field.Vec3{2, 2, 0},
		field.Vec3{0, 4, 0},
		field.Vec3{0, 5, 0},
	)
	got := PlaneCrossings(sl, 0, 1)
	require.Len(t, got, 2)
	assert.Equal(t, field.Vec3{1, 1, 0}, got[0])
	assert.Equal(t, field.Vec3{1, 3, 0}, got[1])

	assert.Empty(t, PlaneCrossings(sl, 2, 1))
	assert.Nil(t, PlaneCrossings(sl, 3, 0))
}

func TestProjectionASCII(t *testing.T) {
	pts := []field.Vec3{{-1, -1, 0}, {1, 1, 0}}
	out := ProjectionASCII(pts, 0, 1, 20, 10)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 10)
	for _, r := range rows {
		assert.Equal(t, 20, len([]rune(r)))
	}
	assert.Equal(t, 2, strings.Count(out, "•"))
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "─")

	assert.Empty(t, ProjectionASCII(nil, 0, 1, 20, 10))
	assert.Empty(t, ProjectionASCII(pts, 0, 5, 20, 10))
}

func TestPad(t *testing.T) {
	b := pad(field.Bounds{Min: field.Vec3{0, 2, 5}, Max: field.Vec3{10, 2, 5}}, 0.1)
	want := field.Bounds{Min: field.Vec3{-1, 1.9, 4.9}, Max: field.Vec3{11, 2.1, 5.1}}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want.Min[i], b.Min[i], 1e-12)
		assert.InDelta(t, want.Max[i], b.Max[i], 1e-12)
	}
}

package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/streamline"
)

// PowerSpectrum returns |X_k| for k < N/2, where X is the FFT of values with
// the mean removed and zero-padded to N, the next power of two.
func PowerSpectrum(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}

	n := 1
	for n < len(values) {
		n <<= 1
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	buf := make([]float64, n)
	for i, v := range values {
		buf[i] = v - mean
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC bin of a power spectrum
// and its frequency in cycles per sample.
func DominantFrequency(power []float64) (int, float64) {
	best := 0
	for k := 1; k < len(power); k++ {
		if best == 0 || power[k] > power[best] {
			best = k
		}
	}
	if best == 0 {
		return 0, 0
	}
	return best, float64(best) / float64(2*len(power))
}

// WindingSpectrum is the power spectrum of the x offset of sl from center.
// A line spiralling around a vertical axis shows one peak at its turn rate.
func WindingSpectrum(sl *streamline.Streamline, center field.Vec3) []float64 {
	xs := make([]float64, len(sl.Points))
	for i, p := range sl.Points {
		xs[i] = p[0] - center[0]
	}
	return PowerSpectrum(xs)
}

// WindingAngle returns the unwrapped angle of every point of sl around the
// vertical axis through center, starting at zero.
func WindingAngle(sl *streamline.Streamline, center field.Vec3) []float64 {
	out := make([]float64, len(sl.Points))
	if len(sl.Points) == 0 {
		return out
	}
	prev := math.Atan2(sl.Points[0][1]-center[1], sl.Points[0][0]-center[0])
	total := 0.0
	for i := 1; i < len(sl.Points); i++ {
		p := sl.Points[i]
		a := math.Atan2(p[1]-center[1], p[0]-center[0])
		d := a - prev
		if d > math.Pi {
			d -= 2 * math.Pi
		} else if d < -math.Pi {
			d += 2 * math.Pi
		}
		total += d
		out[i] = total
		prev = a
	}
	return out
}

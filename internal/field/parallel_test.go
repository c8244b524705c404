package field

import (
	"sync/atomic"
	"testing"
)

func TestChunks_CoverRange(t *testing.T) {
	tests := []struct {
		n, minChunk int
	}{
		{1, 1},
		{10, 100},
		{1000, 16},
		{1001, 7},
	}

	for _, tt := range tests {
		chunks := Chunks(tt.n, tt.minChunk)
		next := 0
		for _, c := range chunks {
			if c[0] != next || c[1] <= c[0] {
				t.Fatalf("n=%d: bad chunk %v after %d", tt.n, c, next)
			}
			next = c[1]
		}
		if next != tt.n {
			t.Errorf("n=%d: chunks end at %d", tt.n, next)
		}
	}

	if Chunks(0, 4) != nil {
		t.Error("expected no chunks for empty range")
	}
}

func TestParallelFor_VisitsEachIndexOnce(t *testing.T) {
	const n = 5000
	var hits [n]int32

	ParallelFor(n, 64, func(_, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

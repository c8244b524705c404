package field

import (
	"runtime"
	"sync"
)

// Chunks splits [0, n) into contiguous ranges of at least minChunk
// elements, one per worker.
func Chunks(n, minChunk int) [][2]int {
	if n <= 0 {
		return nil
	}
	if minChunk < 1 {
		minChunk = 1
	}
	workers := runtime.GOMAXPROCS(0)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	chunks := make([][2]int, 0, workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}

// ParallelFor executes fn over Chunks(n, minChunk) concurrently.
func ParallelFor(n, minChunk int, fn func(chunk, start, end int)) {
	RunChunks(Chunks(n, minChunk), fn)
}

// RunChunks executes fn once per range, concurrently when there is more
// than one. The chunk index passed to fn lets callers merge per-chunk
// results in range order.
func RunChunks(chunks [][2]int, fn func(chunk, start, end int)) {
	switch len(chunks) {
	case 0:
		return
	case 1:
		fn(0, chunks[0][0], chunks[0][1])
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for c, r := range chunks {
		go func(c, s, e int) {
			defer wg.Done()
			fn(c, s, e)
		}(c, r[0], r[1])
	}
	wg.Wait()
}

package cluster

import "sync"

// neighborCounts computes |N(i)| for every point. Each count is an
// independent pure query, so the work splits across workers by index
// range; the result is identical to the sequential path.
func neighborCounts(index NeighborIndex, n, workers int) []int {
	counts := make([]int, n)

	if workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			counts[i] = len(index.Neighbors(i))
		}
		return counts
	}

	if workers > n {
		workers = n
	}
	perWorker := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				counts[i] = len(index.Neighbors(i))
			}
		}(start, end)
	}
	wg.Wait()

	return counts
}

package cluster

// unvisited marks points the scan has not reached yet. It never appears in
// the returned labels: every point ends up with a cluster id or Noise.
const unvisited = -2

// Cluster runs DBSCAN over points and returns one label per point, in
// input order: a 0-based cluster id, or Noise. An empty point set yields an
// empty label slice. Invalid parameters are rejected before any clustering
// work happens.
//
// A point is a core point when its eps-neighbourhood, itself included,
// holds at least MinSamples points. Points are scanned in input order;
// each unvisited core point starts a cluster and expands it breadth-first
// through chains of core points. Non-core points reachable from a cluster
// become border points of whichever cluster reaches them first, so labels
// depend on the input order but are fully deterministic for a fixed one.
func Cluster(points []Point, params Params) ([]int, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	labels := make([]int, len(points))
	if len(points) == 0 {
		return labels, nil
	}
	for i := range labels {
		labels[i] = unvisited
	}

	index := NewGridIndex(points, params.Eps)
	counts := neighborCounts(index, len(points), params.Workers)

	nextID := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		if counts[i] < params.MinSamples {
			// Provisionally noise; expansion may still adopt it as a
			// border point, but never promote it to a core point.
			labels[i] = Noise
			continue
		}
		labels[i] = nextID
		expandCluster(index, labels, counts, index.Neighbors(i), nextID, params.MinSamples)
		nextID++
	}

	return labels, nil
}

// expandCluster grows cluster id from a core point's neighbourhood,
// breadth-first. Noise points reached here become border points; points
// already claimed by another cluster keep their label.
func expandCluster(index NeighborIndex, labels, counts []int, frontier []int, id, minSamples int) {
	for j := 0; j < len(frontier); j++ {
		q := frontier[j]

		if labels[q] == Noise {
			labels[q] = id // border point
		}
		if labels[q] != unvisited {
			continue
		}
		labels[q] = id
		if counts[q] >= minSamples {
			frontier = append(frontier, index.Neighbors(q)...)
		}
	}
}

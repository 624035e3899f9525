package cluster

import "sort"

// Summary describes one cluster: its label, its member count, and the
// per-channel mean of its members. Summaries are the unit of cache
// persistence, hence the JSON tags.
type Summary struct {
	Label    int   `json:"label"`
	Count    int   `json:"count"`
	Centroid Point `json:"centroid"`
}

// Aggregate groups labelled points by cluster id, computing each cluster's
// count and centroid. Noise is excluded. Channel values are summed first
// and divided once, so the centroid does not depend on accumulation order.
// points and labels must have equal length; the output is ordered by
// ascending label.
func Aggregate(points []Point, labels []int) []Summary {
	type accum struct {
		count   int
		r, g, b float64
	}

	accums := make(map[int]*accum)
	for i, label := range labels {
		if label == Noise {
			continue
		}
		a := accums[label]
		if a == nil {
			a = &accum{}
			accums[label] = a
		}
		a.count++
		a.r += points[i].R
		a.g += points[i].G
		a.b += points[i].B
	}

	summaries := make([]Summary, 0, len(accums))
	for label, a := range accums {
		n := float64(a.count)
		summaries = append(summaries, Summary{
			Label: label,
			Count: a.count,
			Centroid: Point{
				R: a.r / n,
				G: a.g / n,
				B: a.b / n,
			},
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Label < summaries[j].Label
	})

	return summaries
}

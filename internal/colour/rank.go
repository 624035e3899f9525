package colour

import (
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/dbscanvas/internal/cluster"
)

// DefaultMinPercentage is the minimum share of the sampled points a
// cluster needs to appear in the palette.
const DefaultMinPercentage = 0.5

// Rank orders cluster summaries descending by count and drops those whose
// share of totalPoints falls below minPercentage. Ties on count are broken
// lexicographically on the centroid channels so the output is fully
// deterministic. totalPoints must be the size of the point set that was
// clustered, not the sum of cluster counts, so that noise dilutes the
// percentages.
func Rank(summaries []cluster.Summary, totalPoints int, minPercentage float64) ([]Swatch, error) {
	if totalPoints <= 0 {
		return nil, fmt.Errorf("%w: total points must be > 0, got %d", cluster.ErrInvalidConfig, totalPoints)
	}
	if math.IsNaN(minPercentage) || minPercentage < 0 {
		return nil, fmt.Errorf("%w: min percentage must be >= 0, got %v", cluster.ErrInvalidConfig, minPercentage)
	}

	sorted := make([]cluster.Summary, len(summaries))
	copy(sorted, summaries)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Centroid.R != b.Centroid.R {
			return a.Centroid.R < b.Centroid.R
		}
		if a.Centroid.G != b.Centroid.G {
			return a.Centroid.G < b.Centroid.G
		}
		return a.Centroid.B < b.Centroid.B
	})

	swatches := make([]Swatch, 0, len(sorted))
	for _, s := range sorted {
		percentage := 100 * float64(s.Count) / float64(totalPoints)
		if percentage < minPercentage {
			continue
		}
		swatches = append(swatches, Swatch{
			RGB:        RGBFromPoint(s.Centroid),
			Count:      s.Count,
			Percentage: percentage,
			Centroid:   s.Centroid,
		})
	}

	return swatches, nil
}

package colour

import (
	"github.com/jmylchreest/dbscanvas/internal/cluster"
)

// ExtractPalette runs the full pipeline over a prepared point set:
// cluster, aggregate, rank, filter. It is a pure function; identical
// inputs produce an identical palette. An empty point set yields an
// empty palette, not an error.
func ExtractPalette(points []cluster.Point, eps float64, minSamples int, minPercentage float64) (*Palette, error) {
	params := cluster.Params{Eps: eps, MinSamples: minSamples}
	labels, err := cluster.Cluster(points, params)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return &Palette{}, nil
	}

	summaries := cluster.Aggregate(points, labels)
	return rankPalette(summaries, len(points), minPercentage)
}

// rankPalette is the shared tail of every extractor: rank the summaries
// and record the pre-filter cluster count.
func rankPalette(summaries []cluster.Summary, totalPoints int, minPercentage float64) (*Palette, error) {
	swatches, err := Rank(summaries, totalPoints, minPercentage)
	if err != nil {
		return nil, err
	}
	return &Palette{
		Swatches:      swatches,
		TotalPoints:   totalPoints,
		ClustersFound: len(summaries),
	}, nil
}

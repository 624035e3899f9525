package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/jmylchreest/dbscanvas/internal/cluster"
	imageutil "github.com/jmylchreest/dbscanvas/internal/image"
)

// KMeansExtractor implements palette extraction using k-means clustering
// over the same sampled point set the dbscan extractor uses. Unlike
// dbscan it always produces exactly Colors clusters (before the
// percentage filter) and never reports noise.
type KMeansExtractor struct {
	config        ExtractorConfig
	maxIterations int
	convergence   float64
}

// NewKMeansExtractor creates a KMeansExtractor with default iteration
// settings. The config's Seed fixes the centroid initialisation so
// repeated runs produce identical palettes.
func NewKMeansExtractor(config ExtractorConfig) *KMeansExtractor {
	return &KMeansExtractor{
		config:        config,
		maxIterations: 20,
		convergence:   0.01,
	}
}

// Extract resizes and samples the image, clusters the samples with
// k-means, and ranks the clusters into a palette.
func (e *KMeansExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	resized := imageutil.Resize(img, e.config.SampleDim)
	points := imageutil.Samples(resized)
	if len(points) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	k := e.config.Colors
	if k > len(points) {
		k = len(points)
	}

	assignments := e.kmeans(points, k)

	summaries := make([]cluster.Summary, 0, k)
	for label, agg := range aggregateAssignments(points, assignments, k) {
		if agg.count == 0 {
			continue
		}
		n := float64(agg.count)
		summaries = append(summaries, cluster.Summary{
			Label: label,
			Count: agg.count,
			Centroid: cluster.Point{
				R: agg.r / n,
				G: agg.g / n,
				B: agg.b / n,
			},
		})
	}

	return rankPalette(summaries, len(points), e.config.MinPercentage)
}

type channelSums struct {
	count   int
	r, g, b float64
}

// aggregateAssignments sums member channels per cluster, sum-then-divide
// as everywhere else in the pipeline.
func aggregateAssignments(points []cluster.Point, assignments []int, k int) []channelSums {
	sums := make([]channelSums, k)
	for i, a := range assignments {
		sums[a].count++
		sums[a].r += points[i].R
		sums[a].g += points[i].G
		sums[a].b += points[i].B
	}
	return sums
}

// kmeans assigns every point to one of k clusters and returns the
// assignment slice.
func (e *KMeansExtractor) kmeans(points []cluster.Point, k int) []int {
	rng := rand.New(rand.NewSource(e.config.Seed))
	centroids := initializeCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if float64(changed)/float64(len(points)) < e.convergence {
			break
		}

		sums := aggregateAssignments(points, assignments, k)
		for i := range centroids {
			if sums[i].count == 0 {
				// Empty cluster keeps its centroid rather than being
				// reseeded, so the run stays deterministic.
				continue
			}
			n := float64(sums[i].count)
			centroids[i] = cluster.Point{R: sums[i].r / n, G: sums[i].g / n, B: sums[i].b / n}
		}
	}

	return assignments
}

// initializeCentroids picks initial centroids k-means++ style: the first
// uniformly at random, the rest weighted by squared distance to the
// nearest centroid chosen so far.
func initializeCentroids(rng *rand.Rand, points []cluster.Point, k int) []cluster.Point {
	centroids := make([]cluster.Point, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := squaredDistance(p, c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist
			total += minDist
		}

		if total == 0 {
			// Every point coincides with a centroid already; duplicating
			// one is harmless, the duplicate cluster ends up empty.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// nearestCentroid finds the index of the centroid closest to p. Ties go
// to the lowest index.
func nearestCentroid(p cluster.Point, centroids []cluster.Point) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := squaredDistance(p, c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

func squaredDistance(p, q cluster.Point) float64 {
	dr := p.R - q.R
	dg := p.G - q.G
	db := p.B - q.B
	return dr*dr + dg*dg + db*db
}

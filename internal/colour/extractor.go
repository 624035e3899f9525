package colour

import (
	"fmt"
	"image"
	"math"

	"github.com/jmylchreest/dbscanvas/internal/cache"
	"github.com/jmylchreest/dbscanvas/internal/cluster"
	imageutil "github.com/jmylchreest/dbscanvas/internal/image"
)

// Extractor defines the interface for palette extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	Extract(img image.Image) (*Palette, error)
}

// Algorithm represents the palette extraction algorithm type.
type Algorithm string

const (
	// AlgorithmDBSCAN uses density-based clustering for colour extraction.
	AlgorithmDBSCAN Algorithm = "dbscan"

	// AlgorithmKMeans uses k-means clustering for colour extraction.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmDBSCAN, AlgorithmKMeans}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorConfig holds configuration for palette extraction.
type ExtractorConfig struct {
	Algorithm Algorithm

	// Eps and MinSamples parameterize the dbscan algorithm.
	Eps        float64
	MinSamples int

	// MinPercentage is the smallest share of sampled points a cluster needs
	// to appear in the palette.
	MinPercentage float64

	// SampleDim is the side length of the square grid the image is resized
	// to before sampling.
	SampleDim int

	// Colors is the cluster count for the kmeans algorithm.
	Colors int

	// Workers is the goroutine count for dbscan core point detection.
	Workers int

	// Seed fixes the kmeans initialisation so runs are reproducible.
	Seed int64
}

// DefaultExtractorConfig returns the default extraction configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:     AlgorithmDBSCAN,
		Eps:           cluster.DefaultEps,
		MinSamples:    cluster.DefaultMinSamples,
		MinPercentage: DefaultMinPercentage,
		SampleDim:     imageutil.DefaultSampleDim,
		Colors:        8,
		Workers:       1,
		Seed:          1,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q (valid: %v)", cluster.ErrInvalidConfig, c.Algorithm, ValidAlgorithms())
	}
	if err := (cluster.Params{Eps: c.Eps, MinSamples: c.MinSamples, Workers: c.Workers}).Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.MinPercentage) || c.MinPercentage < 0 {
		return fmt.Errorf("%w: min percentage must be >= 0, got %v", cluster.ErrInvalidConfig, c.MinPercentage)
	}
	if c.SampleDim < 1 {
		return fmt.Errorf("%w: sample dimension must be >= 1, got %d", cluster.ErrInvalidConfig, c.SampleDim)
	}
	if c.Algorithm == AlgorithmKMeans {
		if c.Colors < 1 {
			return fmt.Errorf("%w: colour count must be at least 1, got %d", cluster.ErrInvalidConfig, c.Colors)
		}
		if c.Colors > 256 {
			return fmt.Errorf("%w: colour count too large: %d (maximum: 256)", cluster.ErrInvalidConfig, c.Colors)
		}
	}
	return nil
}

// NewExtractor creates an Extractor for the configured algorithm. The
// store, when non-nil, memoizes the clustering stage of the dbscan
// extractor; kmeans runs are never cached.
func NewExtractor(config ExtractorConfig, store cache.Store) (Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Algorithm {
	case AlgorithmDBSCAN:
		return &DBSCANExtractor{config: config, store: store}, nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(config), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", cluster.ErrInvalidConfig, config.Algorithm)
	}
}

// DBSCANExtractor extracts a palette by density-based clustering of the
// image's sampled pixels.
type DBSCANExtractor struct {
	config ExtractorConfig
	store  cache.Store
}

// Extract resizes and samples the image, clusters the samples, and ranks
// the clusters into a palette. When a cache store is attached, the
// clustering stage is looked up by a content hash of (points, eps,
// min samples); the percentage filter always runs fresh so it can vary
// per call without invalidating the cache.
func (e *DBSCANExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	resized := imageutil.Resize(img, e.config.SampleDim)
	points := imageutil.Samples(resized)
	if len(points) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	entry, err := e.clusterWithCache(points)
	if err != nil {
		return nil, err
	}
	return rankPalette(entry.Summaries, entry.TotalPoints, e.config.MinPercentage)
}

// clusterWithCache returns the aggregation for points, consulting the
// attached store first.
func (e *DBSCANExtractor) clusterWithCache(points []cluster.Point) (cache.Entry, error) {
	var key string
	if e.store != nil {
		key = cache.Key(points, e.config.Eps, e.config.MinSamples)
		if entry, ok, err := e.store.Get(key); err != nil {
			return cache.Entry{}, fmt.Errorf("cache lookup failed: %w", err)
		} else if ok {
			return entry, nil
		}
	}

	params := cluster.Params{
		Eps:        e.config.Eps,
		MinSamples: e.config.MinSamples,
		Workers:    e.config.Workers,
	}
	labels, err := cluster.Cluster(points, params)
	if err != nil {
		return cache.Entry{}, err
	}

	entry := cache.Entry{
		TotalPoints: len(points),
		Summaries:   cluster.Aggregate(points, labels),
	}
	if e.store != nil {
		if err := e.store.Put(key, entry); err != nil {
			return cache.Entry{}, fmt.Errorf("cache store failed: %w", err)
		}
	}
	return entry, nil
}

package cluster

import (
	"errors"
	"fmt"
	"math"
)

// Default clustering parameters. These match the defaults of the
// interactive app the algorithm was tuned in.
const (
	DefaultEps        = 0.08
	DefaultMinSamples = 60
)

// Noise is the label assigned to points that belong to no cluster.
const Noise = -1

// ErrInvalidConfig is wrapped by all parameter validation errors so callers
// can separate bad configuration from other failures with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// Params configures a clustering run.
type Params struct {
	// Eps is the neighbourhood radius. Two points are neighbours when their
	// Euclidean distance is at most Eps.
	Eps float64

	// MinSamples is the minimum neighbourhood size, the point itself
	// included, for a point to count as a core point.
	MinSamples int

	// Workers is the number of goroutines used for core point detection.
	// Values below 2 select the sequential path. The parallel path produces
	// identical labels.
	Workers int
}

// DefaultParams returns clustering parameters suitable for colour
// extraction from a 150x150 sample grid.
func DefaultParams() Params {
	return Params{
		Eps:        DefaultEps,
		MinSamples: DefaultMinSamples,
		Workers:    1,
	}
}

// Validate checks the parameters, returning an error wrapping
// ErrInvalidConfig on the first violation.
func (p Params) Validate() error {
	if math.IsNaN(p.Eps) || p.Eps <= 0 {
		return fmt.Errorf("%w: eps must be > 0, got %v", ErrInvalidConfig, p.Eps)
	}
	if p.MinSamples < 1 {
		return fmt.Errorf("%w: min samples must be >= 1, got %d", ErrInvalidConfig, p.MinSamples)
	}
	return nil
}

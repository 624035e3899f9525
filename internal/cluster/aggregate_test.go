package cluster

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregateExcludesNoise(t *testing.T) {
	points := []Point{grey(0.1), grey(0.2), grey(0.9)}
	labels := []int{0, 0, Noise}

	summaries := Aggregate(points, labels)
	if len(summaries) != 1 {
		t.Fatalf("Aggregate() returned %d summaries, want 1", len(summaries))
	}
	if summaries[0].Label == Noise {
		t.Error("noise appeared as a summary label")
	}
	if summaries[0].Count != 2 {
		t.Errorf("count = %d, want 2", summaries[0].Count)
	}
}

func TestAggregateCentroids(t *testing.T) {
	points := []Point{
		{R: 0.2, G: 0.4, B: 0.6},
		{R: 0.4, G: 0.6, B: 0.8},
		{R: 1.0, G: 0.0, B: 0.5},
	}
	labels := []int{0, 0, 1}

	want := []Summary{
		{Label: 0, Count: 2, Centroid: Point{R: 0.3, G: 0.5, B: 0.7}},
		{Label: 1, Count: 1, Centroid: Point{R: 1.0, G: 0.0, B: 0.5}},
	}

	got := Aggregate(points, labels)
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b Point) bool {
		const tol = 1e-12
		return math.Abs(a.R-b.R) < tol && math.Abs(a.G-b.G) < tol && math.Abs(a.B-b.B) < tol
	})); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil, nil); len(got) != 0 {
		t.Errorf("Aggregate(nil, nil) = %v, want empty", got)
	}

	// All noise also aggregates to nothing.
	points := []Point{grey(0.1), grey(0.9)}
	if got := Aggregate(points, []int{Noise, Noise}); len(got) != 0 {
		t.Errorf("Aggregate() over pure noise = %v, want empty", got)
	}
}

func TestAggregateCountConservation(t *testing.T) {
	// The summed cluster counts never exceed the point count, and match
	// it exactly when nothing is noise.
	r := rand.New(rand.NewSource(9))
	points := append(
		blob(r, Point{R: 0.2, G: 0.2, B: 0.2}, 120, 0.03),
		blob(r, Point{R: 0.7, G: 0.7, B: 0.7}, 80, 0.03)...,
	)
	for i := 0; i < 30; i++ {
		points = append(points, Point{R: r.Float64(), G: r.Float64(), B: r.Float64()})
	}

	labels, err := Cluster(points, Params{Eps: 0.05, MinSamples: 15})
	if err != nil {
		t.Fatalf("Cluster() error = %v", err)
	}

	noise := 0
	for _, label := range labels {
		if label == Noise {
			noise++
		}
	}

	total := 0
	for _, s := range Aggregate(points, labels) {
		if s.Count < 1 {
			t.Errorf("summary %d has count %d, want >= 1", s.Label, s.Count)
		}
		total += s.Count
	}
	if total+noise != len(points) {
		t.Errorf("cluster counts (%d) + noise (%d) != points (%d)", total, noise, len(points))
	}

	// Centroids are convex combinations of inputs in [0,1].
	for _, s := range Aggregate(points, labels) {
		for _, v := range []float64{s.Centroid.R, s.Centroid.G, s.Centroid.B} {
			if v < 0 || v > 1 {
				t.Errorf("centroid channel %v outside [0,1]", v)
			}
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	points := blob(r, Point{R: 0.4, G: 0.5, B: 0.6}, 100, 0.05)
	labels, err := Cluster(points, Params{Eps: 0.06, MinSamples: 8})
	if err != nil {
		t.Fatalf("Cluster() error = %v", err)
	}

	first := Aggregate(points, labels)
	for run := 0; run < 3; run++ {
		if diff := cmp.Diff(first, Aggregate(points, labels)); diff != "" {
			t.Fatalf("run %d: Aggregate() not idempotent (-first +got):\n%s", run, diff)
		}
	}
}

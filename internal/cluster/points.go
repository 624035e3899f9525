// Package cluster implements density-based clustering of colour samples in
// normalized RGB space.
package cluster

// Point is a single colour sample with each channel normalized to [0,1].
// Points are immutable once sampled.
type Point struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// distanceSq returns the squared Euclidean distance between two points.
// Neighbourhood tests compare squared distances to avoid the sqrt.
func (p Point) distanceSq(q Point) float64 {
	dr := p.R - q.R
	dg := p.G - q.G
	db := p.B - q.B
	return dr*dr + dg*dg + db*db
}

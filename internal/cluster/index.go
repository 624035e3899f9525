package cluster

import (
	"math"
	"sort"
)

// NeighborIndex answers radius queries over a fixed point set:
// Neighbors(i) returns the indices of every point within eps of point i,
// point i included. Implementations return indices in ascending order so
// that cluster expansion visits candidates in input order regardless of
// which index backs the query.
type NeighborIndex interface {
	Neighbors(i int) []int
}

// BruteIndex is the O(n^2) reference implementation of NeighborIndex.
type BruteIndex struct {
	points []Point
	eps2   float64
}

// NewBruteIndex creates a brute-force index over points for radius eps.
func NewBruteIndex(points []Point, eps float64) *BruteIndex {
	return &BruteIndex{points: points, eps2: eps * eps}
}

// Neighbors returns all points within eps of points[i], in ascending index
// order.
func (b *BruteIndex) Neighbors(i int) []int {
	p := b.points[i]
	neighbors := make([]int, 0, 8)
	for j, q := range b.points {
		if p.distanceSq(q) <= b.eps2 {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// estimatedPointsPerCell sizes the initial grid capacity.
const estimatedPointsPerCell = 4

// gridCell identifies one cell of the uniform grid. Coordinates stay
// signed: channel values in [0,1] only produce non-negative cells, but the
// query walks into the -1 shell around boundary points.
type gridCell struct {
	x, y, z int64
}

// GridIndex buckets points into a uniform grid with cell size eps, so a
// radius query only has to inspect the 3x3x3 block of cells around the
// query point.
type GridIndex struct {
	points []Point
	eps    float64
	eps2   float64
	grid   map[gridCell][]int
}

// NewGridIndex builds a grid index over points for radius eps.
func NewGridIndex(points []Point, eps float64) *GridIndex {
	g := &GridIndex{
		points: points,
		eps:    eps,
		eps2:   eps * eps,
		grid:   make(map[gridCell][]int, len(points)/estimatedPointsPerCell+1),
	}
	for i, p := range points {
		c := g.cellOf(p)
		g.grid[c] = append(g.grid[c], i)
	}
	return g
}

func (g *GridIndex) cellOf(p Point) gridCell {
	return gridCell{
		x: int64(math.Floor(p.R / g.eps)),
		y: int64(math.Floor(p.G / g.eps)),
		z: int64(math.Floor(p.B / g.eps)),
	}
}

// Neighbors returns all points within eps of points[i], in ascending index
// order.
func (g *GridIndex) Neighbors(i int) []int {
	p := g.points[i]
	c := g.cellOf(p)

	neighbors := make([]int, 0, estimatedPointsPerCell*4)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				bucket := g.grid[gridCell{c.x + dx, c.y + dy, c.z + dz}]
				for _, j := range bucket {
					if p.distanceSq(g.points[j]) <= g.eps2 {
						neighbors = append(neighbors, j)
					}
				}
			}
		}
	}

	// Buckets were visited in cell order; restore input order so the
	// result matches BruteIndex exactly.
	sort.Ints(neighbors)
	return neighbors
}

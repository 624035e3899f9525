// Package cache memoizes the clustering stage of palette extraction.
// Entries are keyed by a content hash of the exact inputs, so a cached
// result is reused only while the point set and parameters are unchanged
// bit for bit.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/jmylchreest/dbscanvas/internal/cluster"
)

// Entry is the cached value: the pre-filter aggregation of one
// clustering run. The percentage filter is cheap and parameterized per
// request, so it stays outside the cache boundary.
type Entry struct {
	TotalPoints int               `json:"total_points"`
	Summaries   []cluster.Summary `json:"summaries"`
}

// Store persists cache entries. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the entry for key, with ok reporting whether it exists.
	Get(key string) (entry Entry, ok bool, err error)

	// Put stores an entry under key, replacing any existing one.
	Put(key string, entry Entry) error

	// Close releases any resources held by the store.
	Close() error
}

// Key derives a deterministic cache key from the clustering inputs: the
// little-endian IEEE 754 bits of every channel in input order, followed
// by the eps bits and min samples. Any single-bit change to any input
// produces a different key.
func Key(points []cluster.Point, eps float64, minSamples int) string {
	h := sha256.New()

	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}

	for _, p := range points {
		writeFloat(p.R)
		writeFloat(p.G)
		writeFloat(p.B)
	}
	writeFloat(eps)
	binary.LittleEndian.PutUint64(buf[:], uint64(minSamples))
	h.Write(buf[:])

	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

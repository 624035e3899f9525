// Package colour turns cluster summaries into presentable colour palettes.
package colour

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/dbscanvas/internal/cluster"
)

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBFromPoint converts a normalized centroid to 8-bit channels. Each
// channel is multiplied by 255 and truncated toward zero.
func RGBFromPoint(p cluster.Point) RGB {
	return RGB{
		R: uint8(p.R * 255),
		G: uint8(p.G * 255),
		B: uint8(p.B * 255),
	}
}

// Swatch is one palette entry: a cluster's representative colour, its
// sample count, and its share of all sampled points.
type Swatch struct {
	RGB        RGB           `json:"rgb"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
	Centroid   cluster.Point `json:"centroid"`
}

// Hex returns the swatch colour as a lowercase hex string.
func (s Swatch) Hex() string {
	return s.RGB.Hex()
}

// Palette is the ranked, filtered result of a palette extraction.
// ClustersFound counts the clusters before the minimum-share filter, so
// callers can tell "no clusters in the image" apart from "clusters exist
// but all fall below the threshold".
type Palette struct {
	Swatches      []Swatch
	TotalPoints   int
	ClustersFound int
}

// Len returns the number of swatches in the palette.
func (p *Palette) Len() int {
	return len(p.Swatches)
}

// Empty reports whether the palette has no visible swatches.
func (p *Palette) Empty() bool {
	return len(p.Swatches) == 0
}

// EmptyReason describes an empty palette for presentation: either the
// clustering found nothing, or everything it found was filtered out.
// Returns "" for a non-empty palette.
func (p *Palette) EmptyReason() string {
	if len(p.Swatches) > 0 {
		return ""
	}
	if p.ClustersFound == 0 {
		return "no colour clusters found"
	}
	return fmt.Sprintf("%d cluster(s) found, all below the minimum share", p.ClustersFound)
}

// SwatchJSON represents one swatch in JSON output format.
type SwatchJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count         int          `json:"count"`
	TotalPoints   int          `json:"total_points"`
	ClustersFound int          `json:"clusters_found"`
	Swatches      []SwatchJSON `json:"swatches"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	swatches := make([]SwatchJSON, len(p.Swatches))
	for i, s := range p.Swatches {
		swatches[i] = SwatchJSON{
			Hex:        s.Hex(),
			RGB:        s.RGB,
			Count:      s.Count,
			Percentage: s.Percentage,
		}
	}

	paletteJSON := PaletteJSON{
		Count:         len(p.Swatches),
		TotalPoints:   p.TotalPoints,
		ClustersFound: p.ClustersFound,
		Swatches:      swatches,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Swatches) == 0 {
		return "Empty palette: " + p.EmptyReason()
	}

	result := fmt.Sprintf("Palette with %d colours (%d points sampled):\n", len(p.Swatches), p.TotalPoints)
	for i, s := range p.Swatches {
		result += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n", i+1, s.Hex(), s.RGB.String(), s.Percentage)
	}
	return result
}

// SortByHue reorders the swatches by HSV hue, ascending. Display-only:
// the canonical order is descending by count, but hue order reads better
// in terminal previews.
func (p *Palette) SortByHue() {
	sort.SliceStable(p.Swatches, func(i, j int) bool {
		hi, _, _ := colorfulFromCentroid(p.Swatches[i].Centroid).Hsv()
		hj, _, _ := colorfulFromCentroid(p.Swatches[j].Centroid).Hsv()
		return hi < hj
	})
}

func colorfulFromCentroid(p cluster.Point) colorful.Color {
	return colorful.Color{R: p.R, G: p.G, B: p.B}
}

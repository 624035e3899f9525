package colour

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jmylchreest/dbscanvas/internal/cluster"
)

func TestRGBFromPointTruncates(t *testing.T) {
	tests := []struct {
		name  string
		point cluster.Point
		want  RGB
	}{
		{"black", cluster.Point{R: 0, G: 0, B: 0}, RGB{0, 0, 0}},
		{"white", cluster.Point{R: 1, G: 1, B: 1}, RGB{255, 255, 255}},
		{"mid grey truncates down", cluster.Point{R: 0.5, G: 0.5, B: 0.5}, RGB{127, 127, 127}},
		{"just below a step", cluster.Point{R: 0.9999, G: 0.1, B: 0.2}, RGB{254, 25, 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBFromPoint(tt.point); got != tt.want {
				t.Errorf("RGBFromPoint(%+v) = %+v, want %+v", tt.point, got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{0, 0, 0}, "#000000"},
		{RGB{255, 255, 255}, "#ffffff"},
		{RGB{26, 43, 60}, "#1a2b3c"},
		{RGB{255, 0, 171}, "#ff00ab"},
	}

	for _, tt := range tests {
		if got := tt.rgb.Hex(); got != tt.want {
			t.Errorf("%+v.Hex() = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{10, 20, 30}).String(); got != "rgb(10, 20, 30)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPaletteEmptyReason(t *testing.T) {
	noClusters := &Palette{TotalPoints: 100}
	if reason := noClusters.EmptyReason(); !strings.Contains(reason, "no colour clusters") {
		t.Errorf("EmptyReason() = %q, want a no-clusters message", reason)
	}

	filtered := &Palette{TotalPoints: 100, ClustersFound: 3}
	if reason := filtered.EmptyReason(); !strings.Contains(reason, "below the minimum share") {
		t.Errorf("EmptyReason() = %q, want a below-threshold message", reason)
	}

	nonEmpty := &Palette{Swatches: []Swatch{{}}, ClustersFound: 1}
	if reason := nonEmpty.EmptyReason(); reason != "" {
		t.Errorf("EmptyReason() = %q, want empty for a non-empty palette", reason)
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := &Palette{
		Swatches: []Swatch{
			{RGB: RGB{255, 0, 0}, Count: 60, Percentage: 60, Centroid: cluster.Point{R: 1}},
			{RGB: RGB{0, 0, 255}, Count: 30, Percentage: 30, Centroid: cluster.Point{B: 1}},
		},
		TotalPoints:   100,
		ClustersFound: 2,
	}

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if decoded.Count != 2 || decoded.TotalPoints != 100 || decoded.ClustersFound != 2 {
		t.Errorf("decoded header = %+v", decoded)
	}
	if decoded.Swatches[0].Hex != "#ff0000" {
		t.Errorf("first swatch hex = %q, want #ff0000", decoded.Swatches[0].Hex)
	}
}

func TestPaletteSortByHue(t *testing.T) {
	red := Swatch{Centroid: cluster.Point{R: 1}, Count: 1}
	green := Swatch{Centroid: cluster.Point{G: 1}, Count: 3}
	blue := Swatch{Centroid: cluster.Point{B: 1}, Count: 2}

	palette := &Palette{Swatches: []Swatch{blue, red, green}}
	palette.SortByHue()

	// HSV hue: red 0, green 120, blue 240.
	wantCounts := []int{1, 3, 2}
	for i, want := range wantCounts {
		if palette.Swatches[i].Count != want {
			t.Errorf("after SortByHue swatch %d has count %d, want %d", i, palette.Swatches[i].Count, want)
		}
	}
}

func TestColourPreviewContainsEscapeCodes(t *testing.T) {
	preview := ColourPreview(RGB{10, 20, 30}, 4)
	if !strings.Contains(preview, "\033[48;2;10;20;30m") {
		t.Errorf("ColourPreview() = %q, missing background escape", preview)
	}
	if !strings.HasSuffix(preview, ansiReset) {
		t.Errorf("ColourPreview() = %q, missing reset", preview)
	}
}

func TestIsLight(t *testing.T) {
	if IsLight(RGB{0, 0, 0}) {
		t.Error("black reported as light")
	}
	if !IsLight(RGB{255, 255, 255}) {
		t.Error("white reported as dark")
	}
}

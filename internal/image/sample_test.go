package image

import (
	"image"
	"image/color"
	"testing"
)

func TestSamplesRowMajorOrder(t *testing.T) {
	// 2x2 image with distinct corners; samples come out top-left to
	// bottom-right, row by row.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	points := Samples(img)
	if len(points) != 4 {
		t.Fatalf("Samples() returned %d points, want 4", len(points))
	}

	if points[0].R != 1 || points[0].G != 0 || points[0].B != 0 {
		t.Errorf("points[0] = %+v, want red", points[0])
	}
	if points[1].G != 1 {
		t.Errorf("points[1] = %+v, want green", points[1])
	}
	if points[2].B != 1 {
		t.Errorf("points[2] = %+v, want blue", points[2])
	}
	if points[3].R != 1 || points[3].G != 1 || points[3].B != 1 {
		t.Errorf("points[3] = %+v, want white", points[3])
	}
}

func TestSamplesNormalized(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(90 * y), B: 200, A: 255})
		}
	}

	for i, p := range Samples(img) {
		for _, v := range []float64{p.R, p.G, p.B} {
			if v < 0 || v > 1 {
				t.Errorf("points[%d] channel %v outside [0,1]", i, v)
			}
		}
	}
}

func TestSamplesNonZeroOrigin(t *testing.T) {
	// Sub-images have non-zero bounds; sampling must still cover every
	// pixel exactly once.
	img := image.NewRGBA(image.Rect(2, 3, 6, 8))
	points := Samples(img)
	if len(points) != 4*5 {
		t.Errorf("Samples() returned %d points, want 20", len(points))
	}
}

func TestResizeDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))

	resized := Resize(img, 150)
	bounds := resized.Bounds()
	if bounds.Dx() != 150 || bounds.Dy() != 150 {
		t.Errorf("Resize() bounds = %v, want 150x150", bounds)
	}
}

func TestResizeNoopForExactFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 150, 150))
	if resized := Resize(img, 150); resized != img {
		t.Error("Resize() copied an image already at the target size")
	}
}

func TestResizePreservesUniformColour(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	fill := color.RGBA{R: 120, G: 80, B: 40, A: 255}
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, fill)
		}
	}

	points := Samples(Resize(img, 50))
	if len(points) != 50*50 {
		t.Fatalf("sampled %d points, want 2500", len(points))
	}
	for i, p := range points {
		if diff := p.R - 120.0/255; diff > 0.01 || diff < -0.01 {
			t.Fatalf("points[%d] = %+v, resampling shifted a uniform colour", i, p)
		}
	}
}

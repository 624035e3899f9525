package image

import (
	"image"

	"github.com/jmylchreest/dbscanvas/internal/cluster"
)

// Samples converts every pixel of an image to a normalized colour point,
// row-major from the top-left corner. The output order is part of the
// contract: the clusterer's border tie-breaking depends on it.
func Samples(img image.Image) []cluster.Point {
	bounds := img.Bounds()
	points := make([]cluster.Point, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels; scale to 8-bit first so the
			// normalized values match the original 0-255 pixel data.
			points = append(points, cluster.Point{
				R: float64(r>>8) / 255,
				G: float64(g>>8) / 255,
				B: float64(b>>8) / 255,
			})
		}
	}
	return points
}

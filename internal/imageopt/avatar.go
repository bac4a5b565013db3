package imageopt

import (
	"bytes"
	"encoding/base64"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Avatar center-crops img to a square, resizes it to size x size, and clears
// every pixel outside the inscribed circle. Edge pixels get partial alpha
// proportional to how far they sit inside the circle.
func Avatar(img image.Image, size int) *image.NRGBA {
	square := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			coverage := r - math.Hypot(dx, dy) + 0.5
			if coverage >= 1 {
				continue
			}
			i := square.PixOffset(x, y)
			if coverage <= 0 {
				square.Pix[i+0], square.Pix[i+1], square.Pix[i+2], square.Pix[i+3] = 0, 0, 0, 0
				continue
			}
			square.Pix[i+3] = uint8(math.Round(float64(square.Pix[i+3]) * coverage))
		}
	}
	return square
}

// Inline resizes img to exactly width x height, ignoring aspect ratio.
func Inline(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// DataURI encodes img as a PNG data URI suitable for an <img src>.
func DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

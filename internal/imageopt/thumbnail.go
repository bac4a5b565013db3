package imageopt

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"folio/internal/fileutil"
)

// Fill is the canvas background behind letterboxed thumbnails.
var Fill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Optimizer renders fixed-canvas PNG thumbnails. It satisfies the batch
// Processor contract.
type Optimizer struct {
	Width  int
	Height int
}

// NewOptimizer returns an Optimizer for a width x height canvas.
func NewOptimizer(width, height int) *Optimizer {
	return &Optimizer{Width: width, Height: height}
}

// Process decodes src and writes the thumbnail PNG to dst. dst is only
// created when the whole pipeline succeeds.
func (o *Optimizer) Process(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := Open(src)
	if err != nil {
		return err
	}
	thumb := Thumbnail(img, o.Width, o.Height)
	return fileutil.WriteAtomic(dst, 0o644, func(w io.Writer) error {
		return EncodePNG(w, thumb)
	})
}

// Open decodes the image at path. Zero-byte files are rejected up front with
// a clearer message than the decoder's.
func Open(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("decode %s: empty file", path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail returns a width x height opaque image holding img scaled to fit
// and centered on a white background.
func Thumbnail(img image.Image, width, height int) *image.NRGBA {
	opaque := Opaque(img)
	b := opaque.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), width, height)

	var scaled image.Image = opaque
	if w != b.Dx() || h != b.Dy() {
		scaled = imaging.Resize(opaque, w, h, imaging.Lanczos)
	}

	canvas := imaging.New(width, height, Fill)
	canvas = imaging.Paste(canvas, scaled, Offset(width, height, w, h))
	return canvas
}

// Opaque converts img to NRGBA with every alpha value set to 255. Colour
// channels are kept as stored, so transparent regions reveal whatever colour
// the source recorded under them rather than being composited.
func Opaque(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	forceOpaque(out)
	return out
}

func forceOpaque(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// FitSize returns the largest size with srcW:srcH aspect that fits inside
// boxW x boxH. Each side is rounded to whichever neighbouring integer keeps
// the aspect closest and is never below 1. Sources already inside the box
// keep their size.
func FitSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	w, h := boxW, boxH
	aspect := float64(srcW) / float64(srcH)
	if float64(boxW)/float64(boxH) >= aspect {
		w = roundAspect(float64(boxH)*aspect, func(n float64) float64 {
			return math.Abs(aspect - n/float64(boxH))
		})
	} else {
		h = roundAspect(float64(boxW)/aspect, func(n float64) float64 {
			if n == 0 {
				return 0
			}
			return math.Abs(aspect - float64(boxW)/n)
		})
	}
	if w >= srcW && h >= srcH {
		return srcW, srcH
	}
	return w, h
}

func roundAspect(value float64, distance func(float64) float64) int {
	lo, hi := math.Floor(value), math.Ceil(value)
	best := lo
	if distance(hi) < distance(lo) {
		best = hi
	}
	if best < 1 {
		return 1
	}
	return int(best)
}

// Offset is the top-left paste position that centers a w x h image on a
// canvasW x canvasH canvas, using floor division on each axis.
func Offset(canvasW, canvasH, w, h int) image.Point {
	return image.Pt((canvasW-w)/2, (canvasH-h)/2)
}

// EncodePNG writes img as a best-compression PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

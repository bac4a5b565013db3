// Package imageopt turns certification images into fixed-canvas web
// thumbnails and builds the avatar and inline variants used on the portfolio.
//
// The thumbnail pipeline is: decode any registered raster format, drop alpha
// or palette transparency to an opaque RGB image, Lanczos-downscale so the
// image fits the target box (never upscaling), paste it centered on a white
// canvas of the exact target size, and encode a best-compression PNG. Every
// step is deterministic, so identical inputs produce byte-identical outputs.
package imageopt

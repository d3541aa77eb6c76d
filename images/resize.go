package images

import (
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Downscale shrinks img to at most maxWidth pixels wide, preserving the
// aspect ratio with Lanczos3 resampling. Images that already fit, and a
// non-positive maxWidth, yield an unscaled copy.
//
// Arguments:
// - img: The source image.
// - maxWidth: The widest acceptable result in pixels.
//
// Returns:
// - *Image: A new image with the same identity as img.
//
// @example
// sample := images.Downscale(photo, 320)
func Downscale(img *Image, maxWidth int) *Image {
	if maxWidth <= 0 || img.Width() <= maxWidth {
		return img.Clone()
	}
	m := resize.Resize(uint(maxWidth), 0, img.Raster, resize.Lanczos3)
	return &Image{Path: img.Path, Format: img.Format, Raster: imaging.Clone(m)}
}

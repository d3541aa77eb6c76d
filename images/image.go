// Package images - decoded image fixtures and the codec used to read and write them.
package images

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Image is a decoded raster whose identity is tied to the file it came from.
// Effects mutate Raster in place; the conformity checker only reads it.
type Image struct {
	// Path is the file the image was loaded from.
	Path string `json:"path" yaml:"path"`
	// Format is the encoding detected from Path.
	Format ImageFormat `json:"format" yaml:"format"`
	// Raster holds the decoded, non-premultiplied pixels.
	Raster *image.NRGBA `json:"-" yaml:"-"`
}

// New wraps src as an Image identified by path. The pixels are copied into a
// fresh NRGBA raster with its origin at (0, 0), so src is never aliased.
//
// Arguments:
// - path: The file path identifying the image (may be empty for synthetic images).
// - src: The decoded pixels.
//
// Returns:
// - *Image: The wrapped image.
//
// @example
// img := images.New("samples/a.png", decoded)
func New(path string, src image.Image) *Image {
	return &Image{
		Path:   path,
		Format: FormatFromPath(path),
		Raster: imaging.Clone(src),
	}
}

// Width returns the raster width in pixels.
func (i *Image) Width() int {
	if i == nil || i.Raster == nil {
		return 0
	}
	return i.Raster.Bounds().Dx()
}

// Height returns the raster height in pixels.
func (i *Image) Height() int {
	if i == nil || i.Raster == nil {
		return 0
	}
	return i.Raster.Bounds().Dy()
}

// Size formats the physical dimensions as WxH.
func (i *Image) Size() string {
	return fmt.Sprintf("%dx%d", i.Width(), i.Height())
}

// SameSize reports whether both images have exactly the same width and height.
func (i *Image) SameSize(o *Image) bool {
	return i.Width() == o.Width() && i.Height() == o.Height()
}

// Clone returns a deep copy that keeps the same identity.
func (i *Image) Clone() *Image {
	return &Image{
		Path:   i.Path,
		Format: i.Format,
		Raster: imaging.Clone(i.Raster),
	}
}

func (i *Image) String() string {
	if i.Path == "" {
		return "<memory> " + i.Size()
	}
	return i.Path + " " + i.Size()
}

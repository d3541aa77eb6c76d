package images

import (
	"image"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Load reads and decodes the image file at path. JPEG files are rotated
// according to their EXIF orientation so that fixtures compare the way they
// are displayed.
//
// Arguments:
// - path: The image file to read.
//
// Returns:
// - *Image: The decoded image identified by path.
// - error: The underlying open or decode error, wrapped with the path.
//
// @example
// sample, err := images.Load("testdata/images/samples/a.png")
func Load(path string) (*Image, error) {
	var (
		src image.Image
		err error
	)
	switch FormatFromPath(path) {
	case FormatWebP:
		src, err = loadWebP(path)
	default:
		src, err = imaging.Open(path, imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load image %q", path)
	}
	return New(path, src), nil
}

func loadWebP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return webp.Decode(f)
}

// Save encodes img into the file at path. The encoding is chosen from the
// extension of path; parent directories must already exist.
//
// Arguments:
// - img: The image to write.
// - path: Destination file.
//
// Returns:
// - error: Encoding or I/O error wrapped with the path.
func Save(img *Image, path string) error {
	if img == nil || img.Raster == nil {
		return errors.Errorf("cannot save empty image to %q", path)
	}

	var err error
	switch FormatFromPath(path) {
	case FormatWebP:
		err = saveWebP(img.Raster, path)
	default:
		err = imaging.Save(img.Raster, path)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to save image %q", path)
	}
	return nil
}

func saveWebP(m image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return webp.Encode(f, m, &webp.Options{Lossless: true})
}

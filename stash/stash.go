// Package stash - holds the images of a failed comparison and dumps them to disk.
package stash

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nvr-ai/go-imagetest/images"
)

// Stash is an ordered set of images kept between a failed assertion and the
// post-failure dump. It is owned by a single test and is not safe for
// concurrent use.
type Stash struct {
	images []*images.Image
}

// Put replaces the stash contents with the non-nil *images.Image values of
// items. Anything else is dropped without error, so callers may pass mixed
// collections such as a result whose difference image is missing.
//
// Arguments:
// - items: Candidate images in dump order.
//
// Returns:
// - None.
//
// @example
// s.Put(actual, expected, diff)
func (s *Stash) Put(items ...any) {
	s.images = lo.FilterMap(items, func(item any, _ int) (*images.Image, bool) {
		img, ok := item.(*images.Image)
		return img, ok && img != nil
	})
}

// PutImages is Put for an image slice.
func (s *Stash) PutImages(imgs []*images.Image) {
	s.Put(lo.ToAnySlice(imgs)...)
}

// Images returns the stashed images in order.
func (s *Stash) Images() []*images.Image {
	return s.images
}

// Len returns the number of stashed images.
func (s *Stash) Len() int {
	return len(s.images)
}

// Empty reports whether nothing is stashed.
func (s *Stash) Empty() bool {
	return len(s.images) == 0
}

// Clear drops all stashed images.
func (s *Stash) Clear() {
	s.images = nil
}

// PadWidth returns the number of digits used to name count dumped files,
// ceil(log10(count + 1)), which is the digit count of count.
func PadWidth(count int) int {
	if count <= 0 {
		return 0
	}
	return len(strconv.Itoa(count))
}

// FileName returns the dump file name of the 1-based index out of count
// images, for example 01.png for the first of ten.
func FileName(index, count int) string {
	return fmt.Sprintf("%0*d.png", PadWidth(count), index)
}

// Dump writes imgs as PNG files named by FileName into dir, creating dir and
// its parents first.
//
// Arguments:
// - dir: The output directory.
// - imgs: Images in dump order.
//
// Returns:
// - []string: The written file paths.
// - error: Directory creation or encoding failure; files written before it remain.
//
// @example
// paths, err := stash.Dump("_output/effects/TestGradient", s.Images())
func Dump(dir string, imgs []*images.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create dump directory %q", dir)
	}

	paths := make([]string, 0, len(imgs))
	for i, img := range imgs {
		path := filepath.Join(dir, FileName(i+1, len(imgs)))
		if err := images.Save(img, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

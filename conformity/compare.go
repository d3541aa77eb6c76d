// Package conformity - fuzzy comparison of rendered images against golden images.
package conformity

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Metric selects the pixel metric used by Compare.
type Metric int

const (
	// MeanSquaredError averages the squared per-channel differences, with
	// channel values scaled to [0, 1]. The raw error is therefore in [0, 1].
	MeanSquaredError Metric = iota
)

func (m Metric) String() string {
	switch m {
	case MeanSquaredError:
		return "mse"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Highlight paints differing pixels in the difference image.
var Highlight = color.NRGBA{R: 0xF1, G: 0x00, B: 0x1E, A: 0xCC}

// lowlight is the white wash applied to the reference in the difference image.
const lowlight = 0.8

// Comparison is the raw output of a comparator.
type Comparison struct {
	// Identical is set when no measurable difference exists. Raw and Diff are
	// zero values in that case.
	Identical bool
	// Raw is the metric value in [0, 1].
	Raw float64
	// Diff visualizes where the images differ.
	Diff *image.NRGBA
}

// Comparator computes the raw difference between two images of equal size.
type Comparator interface {
	Compare(a, b image.Image) (Comparison, error)
}

// ComparatorFunc adapts a function to the Comparator interface.
type ComparatorFunc func(a, b image.Image) (Comparison, error)

// Compare calls f(a, b).
func (f ComparatorFunc) Compare(a, b image.Image) (Comparison, error) {
	return f(a, b)
}

// NewComparator returns the comparator for metric.
func NewComparator(metric Metric) (Comparator, error) {
	switch metric {
	case MeanSquaredError:
		return ComparatorFunc(compareMSE), nil
	default:
		return nil, errors.Errorf("unsupported metric: %s", metric)
	}
}

// Compare measures how much a and b differ using metric.
//
// Arguments:
// - a: The first image, usually the rendered one.
// - b: The second image, usually the golden one. The difference image is drawn on top of it.
// - metric: The pixel metric.
//
// Returns:
// - Comparison: Identical, or the raw error and a difference image.
// - error: Unsupported metric or mismatched dimensions.
//
// @example
// cmp, err := conformity.Compare(actual.Raster, expected.Raster, conformity.MeanSquaredError)
func Compare(a, b image.Image, metric Metric) (Comparison, error) {
	c, err := NewComparator(metric)
	if err != nil {
		return Comparison{}, err
	}
	return c.Compare(a, b)
}

func compareMSE(a, b image.Image) (Comparison, error) {
	na, nb := imaging.Clone(a), imaging.Clone(b)
	size := na.Bounds().Size()
	if size != nb.Bounds().Size() {
		return Comparison{}, errors.Errorf("cannot compare %v image with %v image", size, nb.Bounds().Size())
	}

	// Alpha only takes part when it carries information.
	channels := 3
	if !na.Opaque() || !nb.Opaque() {
		channels = 4
	}

	n := size.X * size.Y * channels
	va := make([]float64, 0, n)
	vb := make([]float64, 0, n)
	differs := make([]bool, size.X*size.Y)
	anyDiff := false

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pa := na.Pix[na.PixOffset(x, y):]
			pb := nb.Pix[nb.PixOffset(x, y):]
			for c := 0; c < channels; c++ {
				va = append(va, float64(pa[c])/255)
				vb = append(vb, float64(pb[c])/255)
				if pa[c] != pb[c] {
					differs[y*size.X+x] = true
					anyDiff = true
				}
			}
		}
	}

	if !anyDiff {
		return Comparison{Identical: true}, nil
	}

	d := floats.Distance(va, vb, 2)
	return Comparison{
		Raw:  d * d / float64(n),
		Diff: differenceImage(nb, differs),
	}, nil
}

// differenceImage washes ref out toward white and paints every differing
// pixel with Highlight.
func differenceImage(ref *image.NRGBA, differs []bool) *image.NRGBA {
	b := ref.Bounds()
	white := imaging.New(b.Dx(), b.Dy(), color.White)
	dst := imaging.Overlay(ref, white, image.Pt(0, 0), lowlight)

	alpha := float64(Highlight.A) / 255
	for i, d := range differs {
		if !d {
			continue
		}
		x, y := i%b.Dx(), i/b.Dx()
		p := dst.Pix[dst.PixOffset(x, y):]
		p[0] = blend(p[0], Highlight.R, alpha)
		p[1] = blend(p[1], Highlight.G, alpha)
		p[2] = blend(p[2], Highlight.B, alpha)
		p[3] = 0xFF
	}
	return dst
}

func blend(under, over uint8, alpha float64) uint8 {
	return uint8(float64(under)*(1-alpha) + float64(over)*alpha + 0.5)
}

package effects

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imagetest/images"
)

// GradientName is the registry key and fixture directory of the gradient effect.
const GradientName = "gradient"

// Gradient fades a solid color in over the bottom part of an image. The
// overlay is fully transparent at the top edge of the covered band and
// reaches Opacity on the bottom row. Colors are mixed in linear RGB, the
// alpha channel of the image is left as is.
type Gradient struct {
	// CoverPercent is the share of the image height covered, 0..100.
	CoverPercent float64 `json:"cover_percent"`
	// Color is the overlay color. Nil means black.
	Color color.Color `json:"-"`
	// Opacity of the overlay on the bottom row, 0..1.
	Opacity float64 `json:"opacity"`
}

// NewGradient returns a black gradient covering the whole image at full
// opacity. These are the settings the golden results are rendered with.
//
// Arguments:
// - None.
//
// Returns:
// - *Gradient: The gradient with default settings.
//
// @example
//
//	g := effects.NewGradient()
//	g.CoverPercent = 50
//	err := g.Apply(img)
func NewGradient() *Gradient {
	return &Gradient{
		CoverPercent: 100,
		Color:        color.Black,
		Opacity:      1,
	}
}

// Name implements Effect.
func (g *Gradient) Name() string {
	return GradientName
}

// Apply implements Effect.
func (g *Gradient) Apply(img *images.Image) error {
	if img == nil || img.Raster == nil {
		return errors.New("gradient: image has no raster")
	}
	if g.CoverPercent < 0 || g.CoverPercent > 100 || math.IsNaN(g.CoverPercent) {
		return errors.Errorf("gradient: cover percent %v out of range [0, 100]", g.CoverPercent)
	}
	if g.Opacity < 0 || g.Opacity > 1 || math.IsNaN(g.Opacity) {
		return errors.Errorf("gradient: opacity %v out of range [0, 1]", g.Opacity)
	}

	var c color.Color = color.Black
	if g.Color != nil {
		c = g.Color
	}
	overlay, ok := colorful.MakeColor(c)
	if !ok {
		return errors.New("gradient: overlay color is fully transparent")
	}

	bounds := img.Raster.Bounds()
	band := int(math.Round(float64(bounds.Dy()) * g.CoverPercent / 100))
	if band == 0 {
		return nil
	}
	top := bounds.Max.Y - band
	cr, cg, cb := overlay.LinearRgb()

	for y := top; y < bounds.Max.Y; y++ {
		t := g.Opacity
		if band > 1 {
			t = g.Opacity * float64(y-top) / float64(band-1)
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.Raster.PixOffset(x, y)
			px := img.Raster.Pix[i : i+3 : i+3]
			lr, lg, lb := colorful.Color{
				R: float64(px[0]) / 255,
				G: float64(px[1]) / 255,
				B: float64(px[2]) / 255,
			}.LinearRgb()
			mixed := colorful.LinearRgb(lr+t*(cr-lr), lg+t*(cg-lg), lb+t*(cb-lb))
			px[0], px[1], px[2] = mixed.Clamped().RGB255()
		}
	}
	return nil
}

package conformity

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagetest/images"
	"github.com/nvr-ai/go-imagetest/logging"
)

// Exponent is the curve that maps the raw error onto the 0..100 scale.
// Most real differences produce small raw values; the fourth root spreads them out.
const Exponent = 0.25

// Normalize converts a raw error in [0, 1] into a conformity score in [0, 100].
func Normalize(raw float64) float64 {
	return math.Pow(raw, Exponent) * 100
}

// Result is the outcome of a single conformity check.
type Result struct {
	// Passed is false when the images differ in size or exceed the threshold.
	Passed bool `json:"passed"`
	// Raw is the comparator output; zero for identical or mismatched images.
	Raw float64 `json:"raw"`
	// Conformity is the normalized score; zero for identical or mismatched images.
	Conformity float64 `json:"conformity"`
	// Message describes the failure. A threshold failure leaves it empty: the
	// dumped images and the logged score carry the detail.
	Message string `json:"message,omitempty"`
	// Images are the images to stash on failure, in dump order.
	Images []*images.Image `json:"-"`
}

// Checker runs conformity checks with a fixed comparator.
type Checker struct {
	comparator Comparator
	logger     *zap.Logger
}

// NewCheckerArgs configures a Checker.
type NewCheckerArgs struct {
	// Comparator defaults to the mean squared error comparator.
	Comparator Comparator
	// Logger receives the raw and normalized scores at debug level. Nil uses
	// the process logger.
	Logger *zap.Logger
}

// NewChecker creates a Checker.
//
// Arguments:
// - args: Optional comparator and logger.
//
// Returns:
// - *Checker: The configured checker.
//
// @example
// checker := conformity.NewChecker(conformity.NewCheckerArgs{})
// res := checker.Check(actual, expected, 20)
func NewChecker(args NewCheckerArgs) *Checker {
	c := args.Comparator
	if c == nil {
		c = ComparatorFunc(compareMSE)
	}
	return &Checker{comparator: c, logger: args.Logger}
}

// Check asserts that actual differs from expected by no more than
// maxConformity on the 0..100 conformity scale.
//
// The check runs in two steps:
//  1. Width and height must be exactly equal. A mismatch fails with a message
//     naming both sizes and stashes actual and expected.
//  2. The comparator measures the raw error e. Identical images pass without
//     further work. Otherwise the score Normalize(e) is compared with
//     maxConformity: equal passes, greater fails and stashes actual, expected
//     and the difference image.
//
// Arguments:
// - actual: The rendered image.
// - expected: The golden image.
// - maxConformity: Highest acceptable score, inclusive.
//
// Returns:
// - Result: The outcome; Images is set only on failure.
//
// @example
// res := checker.Check(rendered, golden, 20)
//
//	if !res.Passed {
//	    t.Errorf("conformity %.2f > 20", res.Conformity)
//	}
func (c *Checker) Check(actual, expected *images.Image, maxConformity float64) Result {
	logger := logging.Or(c.logger)

	if !hasRaster(actual) || !hasRaster(expected) {
		return Result{
			Message: fmt.Sprintf("Cannot compare images without pixels: image A is %s, image B is %s",
				describe(actual), describe(expected)),
			Images: lo.Filter([]*images.Image{actual, expected}, func(img *images.Image, _ int) bool {
				return hasRaster(img)
			}),
		}
	}

	if !actual.SameSize(expected) {
		return Result{
			Message: fmt.Sprintf(
				"Provided images differ in physical size: image A is `%dx%d`, image B is `%dx%d`",
				actual.Width(), actual.Height(), expected.Width(), expected.Height(),
			),
			Images: []*images.Image{actual, expected},
		}
	}

	cmp, err := c.comparator.Compare(actual.Raster, expected.Raster)
	if err != nil {
		return Result{
			Message: err.Error(),
			Images:  []*images.Image{actual, expected},
		}
	}
	if cmp.Identical {
		return Result{Passed: true}
	}

	score := Normalize(cmp.Raw)
	logger.Debug("conformity",
		zap.String("actual", actual.Path),
		zap.String("expected", expected.Path),
		zap.Float64("initial", cmp.Raw),
		zap.Float64("normalized", score),
	)

	res := Result{
		Passed:     score <= maxConformity,
		Raw:        cmp.Raw,
		Conformity: score,
	}
	if !res.Passed {
		res.Images = []*images.Image{actual, expected, diffImage(cmp)}
	}
	return res
}

// CheckEquality is Check with a zero tolerance.
func (c *Checker) CheckEquality(actual, expected *images.Image) Result {
	return c.Check(actual, expected, 0)
}

// diffImage wraps the difference raster; nil when the comparator produced none.
func diffImage(cmp Comparison) *images.Image {
	if cmp.Diff == nil {
		return nil
	}
	return &images.Image{Format: images.FormatPNG, Raster: cmp.Diff}
}

func hasRaster(img *images.Image) bool {
	return img != nil && img.Raster != nil
}

func describe(img *images.Image) string {
	switch {
	case img == nil:
		return "missing"
	case img.Raster == nil:
		return "empty"
	default:
		return "`" + img.Size() + "`"
	}
}

package conformity

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var gray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

func TestCompareIdentical(t *testing.T) {
	cmp, err := Compare(solid(3, 3, gray), solid(3, 3, gray), MeanSquaredError)
	require.NoError(t, err)
	assert.True(t, cmp.Identical)
	assert.Zero(t, cmp.Raw)
	assert.Nil(t, cmp.Diff)
}

func TestCompareEmptyImages(t *testing.T) {
	cmp, err := Compare(image.NewNRGBA(image.Rect(0, 0, 0, 0)), image.NewNRGBA(image.Rect(0, 0, 0, 0)), MeanSquaredError)
	require.NoError(t, err)
	assert.True(t, cmp.Identical)
}

func TestCompareOpaqueUsesColorChannels(t *testing.T) {
	a := solid(2, 2, color.NRGBA{A: 255})
	b := solid(2, 2, color.NRGBA{A: 255})
	b.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})

	cmp, err := Compare(a, b, MeanSquaredError)
	require.NoError(t, err)
	assert.False(t, cmp.Identical)
	// One channel out of 2*2*3 differs by the full range.
	assert.InDelta(t, 1.0/12, cmp.Raw, 1e-12)
	require.NotNil(t, cmp.Diff)
	assert.Equal(t, a.Bounds(), cmp.Diff.Bounds())
}

func TestCompareTranslucentIncludesAlpha(t *testing.T) {
	a := solid(1, 1, color.NRGBA{})
	b := solid(1, 1, color.NRGBA{A: 255})

	cmp, err := Compare(a, b, MeanSquaredError)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cmp.Raw, 1e-12)
}

func TestCompareHandlesOffsetBounds(t *testing.T) {
	a := image.NewNRGBA(image.Rect(5, 5, 7, 7))
	b := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	cmp, err := Compare(a, b, MeanSquaredError)
	require.NoError(t, err)
	assert.True(t, cmp.Identical)
}

func TestCompareDifferenceImage(t *testing.T) {
	a := solid(2, 1, gray)
	b := solid(2, 1, gray)
	a.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 200, B: 30, A: 255})

	cmp, err := Compare(a, b, MeanSquaredError)
	require.NoError(t, err)
	require.NotNil(t, cmp.Diff)

	hit := cmp.Diff.NRGBAAt(0, 0)
	miss := cmp.Diff.NRGBAAt(1, 0)

	assert.Greater(t, hit.R, hit.G, "differing pixel is highlighted")
	assert.Greater(t, hit.R, hit.B)
	assert.Equal(t, uint8(255), hit.A)

	assert.Greater(t, miss.R, uint8(200), "unchanged pixel is washed out")
	assert.Equal(t, miss.R, miss.G)
	assert.Equal(t, miss.G, miss.B)
}

func TestCompareSizeMismatch(t *testing.T) {
	_, err := Compare(solid(2, 2, gray), solid(2, 3, gray), MeanSquaredError)
	assert.Error(t, err)
}

func TestCompareUnsupportedMetric(t *testing.T) {
	_, err := Compare(solid(1, 1, gray), solid(1, 1, gray), Metric(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Metric(7)")
	assert.Equal(t, "mse", MeanSquaredError.String())
}

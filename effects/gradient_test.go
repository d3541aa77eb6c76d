package effects

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-imagetest/conformity"
	"github.com/nvr-ai/go-imagetest/imagetest"
	"github.com/nvr-ai/go-imagetest/images"
)

// TestGradient renders every sample fixture with the registered gradient
// and compares it to the golden result of the same position.
//
// The fixtures in testdata were rendered outside this module: a.png with the
// exact sRGB transfer curve, b.png with a plain 2.2 gamma and truncation, so
// b.png only passes through the tolerance.
func TestGradient(t *testing.T) {
	h := imagetest.New(t, imagetest.NewHelperArgs{})
	h.SkipWithoutFixtures(GradientName)

	for _, pair := range h.Pairs(GradientName) {
		t.Run(filepath.Base(pair.SamplePath), func(t *testing.T) {
			h := imagetest.New(t, imagetest.NewHelperArgs{})
			t.Logf("sample path: %s", pair.SamplePath)
			t.Logf("expected result path: %s", pair.ExpectedPath)

			expected := h.LoadImage(pair.ExpectedPath)
			img := h.LoadImage(pair.SamplePath)

			effect, err := Lookup(GradientName)
			require.NoError(t, err)
			require.NoError(t, effect.Apply(img))

			h.AssertConformity(img, expected, 20)
		})
	}
}

func TestGradientGeneratedGoldens(t *testing.T) {
	root := t.TempDir()
	cfg := &imagetest.Config{
		DataRoot:   filepath.Join(root, "data"),
		OutputRoot: filepath.Join(root, "out"),
	}
	h := imagetest.New(t, imagetest.NewHelperArgs{Config: cfg})
	loc := h.Locator()

	gen := imagetest.NewGenerator(24, 16)
	samples := map[string]*images.Image{
		"a.png": gen.Ramp(),
		"b.png": gen.Checkerboard(4),
		"c.png": gen.Noise(),
	}
	goldens := map[string]*images.Image{}
	for name, img := range samples {
		golden := img.Clone()
		require.NoError(t, NewGradient().Apply(golden))
		goldens[name] = golden
	}
	require.NoError(t, imagetest.WriteImages(loc.SamplesDir(), samples))
	require.NoError(t, imagetest.WriteImages(loc.ResultsDir(GradientName), goldens))

	pairs := h.Pairs(GradientName)
	require.Len(t, pairs, 3)
	for _, pair := range pairs {
		img := h.LoadImage(pair.SamplePath)
		require.NoError(t, NewGradient().Apply(img))
		h.AssertEquality(img, h.LoadImage(pair.ExpectedPath))
	}

	// A gradient of another color is caught.
	img := h.LoadImage(pairs[0].SamplePath)
	g := NewGradient()
	g.Color = color.White
	require.NoError(t, g.Apply(img))
	res := conformity.NewChecker(conformity.NewCheckerArgs{}).Check(img, h.LoadImage(pairs[0].ExpectedPath), 20)
	assert.False(t, res.Passed)
	assert.Len(t, res.Images, 3)
}

func TestGradientApply(t *testing.T) {
	gen := imagetest.NewGenerator(10, 10)

	t.Run("half cover leaves the top untouched", func(t *testing.T) {
		orig := gen.Ramp()
		img := orig.Clone()
		g := NewGradient()
		g.CoverPercent = 50
		require.NoError(t, g.Apply(img))

		for y := 0; y < 5; y++ {
			for x := 0; x < 10; x++ {
				assert.Equal(t, orig.Raster.NRGBAAt(x, y), img.Raster.NRGBAAt(x, y), "pixel %d,%d", x, y)
			}
		}
		// Zero opacity on the first covered row.
		assert.Equal(t, orig.Raster.NRGBAAt(3, 5), img.Raster.NRGBAAt(3, 5))
		for x := 0; x < 10; x++ {
			assert.Equal(t, color.NRGBA{A: 255}, img.Raster.NRGBAAt(x, 9))
		}
	})

	t.Run("darkens monotonically", func(t *testing.T) {
		img := gen.Solid(color.White)
		require.NoError(t, NewGradient().Apply(img))

		prev := uint8(255)
		for y := 0; y < 10; y++ {
			c := img.Raster.NRGBAAt(0, y)
			assert.LessOrEqual(t, c.R, prev)
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, uint8(255), c.A)
			prev = c.R
		}
		assert.Equal(t, uint8(0), prev)
	})

	t.Run("mixes in linear rgb", func(t *testing.T) {
		img := imagetest.NewGenerator(1, 3).Solid(color.White)
		require.NoError(t, NewGradient().Apply(img))

		// Half way between white and black in linear light, back in sRGB.
		assert.Equal(t, color.NRGBA{R: 188, G: 188, B: 188, A: 255}, img.Raster.NRGBAAt(0, 1))
	})

	t.Run("colored partial opacity", func(t *testing.T) {
		img := gen.Solid(color.Black)
		g := &Gradient{CoverPercent: 10, Color: color.NRGBA{R: 255, A: 255}, Opacity: 1}
		require.NoError(t, g.Apply(img))
		assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.Raster.NRGBAAt(0, 9))
		assert.Equal(t, color.NRGBA{A: 255}, img.Raster.NRGBAAt(0, 8))
	})

	t.Run("zero cover is a no-op", func(t *testing.T) {
		orig := gen.Noise()
		img := orig.Clone()
		require.NoError(t, (&Gradient{}).Apply(img))
		assert.Equal(t, orig.Raster.Pix, img.Raster.Pix)
	})
}

func TestGradientApplyErrors(t *testing.T) {
	img := imagetest.NewGenerator(4, 4).Ramp()

	tests := []struct {
		name string
		g    *Gradient
	}{
		{"negative cover", &Gradient{CoverPercent: -1, Opacity: 1}},
		{"cover above 100", &Gradient{CoverPercent: 101, Opacity: 1}},
		{"opacity above 1", &Gradient{CoverPercent: 50, Opacity: 2}},
		{"transparent color", &Gradient{CoverPercent: 50, Opacity: 1, Color: color.Transparent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.g.Apply(img))
		})
	}

	assert.Error(t, NewGradient().Apply(nil))
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, Names(), GradientName)

	effect, err := Lookup(GradientName)
	require.NoError(t, err)
	assert.Equal(t, GradientName, effect.Name())
	assert.Equal(t, NewGradient(), effect)

	_, err = Lookup("nope")
	assert.Error(t, err)

	assert.Error(t, Register(GradientName, func() Effect { return NewGradient() }))
	assert.Error(t, Register("", func() Effect { return NewGradient() }))
	assert.Error(t, Register("nil-factory", nil))
}

func TestGradientFixturesUseTolerance(t *testing.T) {
	h := imagetest.New(t, imagetest.NewHelperArgs{})
	h.SkipWithoutFixtures(GradientName)

	checker := conformity.NewChecker(conformity.NewCheckerArgs{Logger: h.Logger()})
	scores := map[string]float64{}
	for _, pair := range h.Pairs(GradientName) {
		img := h.LoadImage(pair.SamplePath)
		require.NoError(t, NewGradient().Apply(img))

		res := checker.Check(img, h.LoadImage(pair.ExpectedPath), 20)
		assert.True(t, res.Passed, "%s: conformity %.4f", pair.ExpectedPath, res.Conformity)
		scores[filepath.Base(pair.ExpectedPath)] = res.Conformity
	}

	require.Contains(t, scores, "b.png")
	assert.Greater(t, scores["b.png"], 0.0)
}

func TestGradientDefaults(t *testing.T) {
	g := NewGradient()
	assert.Equal(t, 100.0, g.CoverPercent)
	assert.Equal(t, 1.0, g.Opacity)
	assert.Equal(t, color.Black, g.Color)
}

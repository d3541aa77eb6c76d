package fixtures

import (
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagetest/logging"
)

const (
	imagesDirName  = "images"
	samplesDirName = "samples"
	resultsDirName = "results"
)

// Pair couples a sample input with the golden image expected after processing it.
type Pair struct {
	// SamplePath is the input fixture.
	SamplePath string `json:"sample_path"`
	// ExpectedPath is the golden result for SamplePath.
	ExpectedPath string `json:"expected_path"`
}

// Locator resolves fixture directories below a data root.
type Locator struct {
	dataRoot string
	logger   *zap.Logger
}

// NewLocatorArgs configures a Locator.
type NewLocatorArgs struct {
	// DataRoot is the directory containing the images/ tree.
	DataRoot string
	// Logger receives fixture warnings. Nil uses the process logger.
	Logger *zap.Logger
}

// NewLocator creates a Locator rooted at args.DataRoot.
//
// Arguments:
// - args: The data root and optional logger.
//
// Returns:
// - *Locator: The configured locator.
//
// @example
// loc := fixtures.NewLocator(fixtures.NewLocatorArgs{DataRoot: "testdata"})
// pairs, err := loc.Pairs("gradient")
func NewLocator(args NewLocatorArgs) *Locator {
	return &Locator{
		dataRoot: args.DataRoot,
		logger:   args.Logger,
	}
}

// DataRoot returns the configured data root.
func (l *Locator) DataRoot() string {
	return l.dataRoot
}

// ImagesDir returns <dataRoot>/images.
func (l *Locator) ImagesDir() string {
	return filepath.Join(l.dataRoot, imagesDirName)
}

// SamplesDir returns <dataRoot>/images/samples.
func (l *Locator) SamplesDir() string {
	return filepath.Join(l.ImagesDir(), samplesDirName)
}

// ResultsDir returns <dataRoot>/images/results/<effectName>.
func (l *Locator) ResultsDir(effectName string) string {
	return filepath.Join(l.ImagesDir(), resultsDirName, effectName)
}

// SampleImages lists the sample inputs in sort order.
func (l *Locator) SampleImages() ([]string, error) {
	return ListImages(l.SamplesDir(), logging.Or(l.logger))
}

// ExpectedResults lists the golden results of effectName in sort order.
func (l *Locator) ExpectedResults(effectName string) ([]string, error) {
	return ListImages(l.ResultsDir(effectName), logging.Or(l.logger))
}

// Pairs couples samples with the golden results of effectName by position:
// the Nth sample in sort order goes with the Nth result in sort order. File
// names are not compared, so both directories must hold correspondingly
// ordered files.
//
// Arguments:
// - effectName: Name of the results subdirectory.
//
// Returns:
// - []Pair: One pair per sample.
// - error: Listing errors, or a missing result for some sample.
//
// @example
// pairs, err := loc.Pairs("gradient")
//
//	for _, p := range pairs {
//	    fmt.Println(p.SamplePath, "->", p.ExpectedPath)
//	}
func (l *Locator) Pairs(effectName string) ([]Pair, error) {
	samples, err := l.SampleImages()
	if err != nil {
		return nil, err
	}
	results, err := l.ExpectedResults(effectName)
	if err != nil {
		return nil, err
	}

	// Surplus results are ignored; a missing one is an error instead of a
	// pair with an empty path.
	if len(results) < len(samples) {
		return nil, errors.Errorf(
			"effect %q has %d expected results for %d samples",
			effectName, len(results), len(samples),
		)
	}

	pairs := make([]Pair, len(samples))
	for i, sample := range samples {
		pairs[i] = Pair{SamplePath: sample, ExpectedPath: results[i]}
	}
	return pairs, nil
}

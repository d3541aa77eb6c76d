package imagetest

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/nvr-ai/go-imagetest/conformity"
	"github.com/nvr-ai/go-imagetest/fixtures"
	"github.com/nvr-ai/go-imagetest/images"
	"github.com/nvr-ai/go-imagetest/stash"
)

// Helper binds fixtures, the conformity checker and a Lifecycle to one test.
type Helper struct {
	tb        testing.TB
	id        Identity
	cfg       Config
	lifecycle *Lifecycle
	locator   *fixtures.Locator
	checker   *conformity.Checker
	logger    *zap.Logger
	failures  []string
}

// NewHelperArgs configures a Helper. Every field is optional.
type NewHelperArgs struct {
	// Config defaults to ConfigFromEnv.
	Config *Config
	// Checker defaults to the mean squared error checker.
	Checker *conformity.Checker
	// Logger defaults to a logger writing to the test log, at debug level when
	// Config.Debug is set and at warn level otherwise.
	Logger *zap.Logger
}

// New creates the Helper of tb. It runs the start hook right away and
// registers the failure hook with tb.Cleanup, so the stash is dumped once tb
// and its subtests are done. Create one Helper per subtest that compares
// images.
//
// Arguments:
// - tb: The running test.
// - args: Optional configuration.
//
// Returns:
// - *Helper: The helper for tb.
//
// @example
// h := imagetest.New(t, imagetest.NewHelperArgs{})
// h.AssertEquality(rendered, h.LoadImage("testdata/golden.png"))
func New(tb testing.TB, args NewHelperArgs) *Helper {
	tb.Helper()

	cfg := ConfigFromEnv()
	if args.Config != nil {
		cfg = *args.Config
	}

	logger := args.Logger
	if logger == nil {
		level := zapcore.WarnLevel
		if cfg.Debug {
			level = zapcore.DebugLevel
		}
		logger = zaptest.NewLogger(tb, zaptest.Level(level))
	}

	checker := args.Checker
	if checker == nil {
		checker = conformity.NewChecker(conformity.NewCheckerArgs{Logger: logger})
	}

	id, err := IdentityFromName(tb.Name())
	if err != nil {
		tb.Fatalf("imagetest: %v", err)
	}

	h := &Helper{
		tb:        tb,
		id:        id,
		cfg:       cfg,
		lifecycle: NewLifecycle(NewLifecycleArgs{OutputRoot: cfg.OutputRoot, Logger: logger}),
		locator:   fixtures.NewLocator(fixtures.NewLocatorArgs{DataRoot: cfg.DataRoot, Logger: logger}),
		checker:   checker,
		logger:    logger,
	}

	if err := h.lifecycle.OnTestStart(id); err != nil {
		tb.Fatalf("imagetest: %v", err)
	}
	tb.Cleanup(h.finish)
	return h
}

func (h *Helper) finish() {
	if !h.tb.Failed() {
		h.lifecycle.OnTestEnd(h.id)
		return
	}

	paths, err := h.lifecycle.OnTestFailure(h.id, Failure{Message: strings.Join(h.failures, "\n")})
	if err != nil {
		h.tb.Errorf("imagetest: failed to dump stashed images: %v", err)
		return
	}
	if len(paths) > 0 {
		h.tb.Logf("imagetest: stashed images dumped to %s", h.OutputDir())
	}
}

// Identity returns the identity used for the output directory.
func (h *Helper) Identity() Identity {
	return h.id
}

// Config returns the effective configuration.
func (h *Helper) Config() Config {
	return h.cfg
}

// OutputDir returns the directory the stash is dumped into on failure.
func (h *Helper) OutputDir() string {
	return h.lifecycle.OutputDir(h.id)
}

// Stash returns the images that will be dumped if the test fails.
func (h *Helper) Stash() *stash.Stash {
	return h.lifecycle.Stash()
}

// Locator returns the fixture locator rooted at Config.DataRoot.
func (h *Helper) Locator() *fixtures.Locator {
	return h.locator
}

// Logger returns the helper's logger.
func (h *Helper) Logger() *zap.Logger {
	return h.logger
}

// SampleImages lists the sample fixtures, failing the test on I/O errors.
func (h *Helper) SampleImages() []string {
	h.tb.Helper()
	paths, err := h.locator.SampleImages()
	if err != nil {
		h.tb.Fatalf("imagetest: %v", err)
	}
	return paths
}

// ExpectedResults lists the golden results of effectName, failing the test on I/O errors.
func (h *Helper) ExpectedResults(effectName string) []string {
	h.tb.Helper()
	paths, err := h.locator.ExpectedResults(effectName)
	if err != nil {
		h.tb.Fatalf("imagetest: %v", err)
	}
	return paths
}

// Pairs returns the positional sample/result pairs of effectName, failing
// the test on I/O errors or when results are missing.
func (h *Helper) Pairs(effectName string) []fixtures.Pair {
	h.tb.Helper()
	pairs, err := h.locator.Pairs(effectName)
	if err != nil {
		h.tb.Fatalf("imagetest: %v", err)
	}
	return pairs
}

// SkipWithoutFixtures skips the test unless both the samples directory and
// the results directory of effectName exist.
func (h *Helper) SkipWithoutFixtures(effectName string) {
	h.tb.Helper()
	for _, dir := range []string{h.locator.SamplesDir(), h.locator.ResultsDir(effectName)} {
		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			h.tb.Skipf("imagetest: no fixtures in %s", dir)
		}
	}
}

// LoadImage decodes the image at path, failing the test on error.
func (h *Helper) LoadImage(path string) *images.Image {
	h.tb.Helper()
	img, err := images.Load(path)
	if err != nil {
		h.tb.Fatalf("imagetest: %v", err)
	}
	return img
}

// Check runs the conformity check and stashes the images of a failure
// without reporting it to the test.
func (h *Helper) Check(actual, expected *images.Image, maxConformity float64) conformity.Result {
	res := h.checker.Check(actual, expected, maxConformity)
	if !res.Passed {
		h.Stash().PutImages(res.Images)
	}
	return res
}

// AssertConformity marks the test failed when actual differs from expected by
// more than maxConformity (0..100, inclusive). The images of the failure are
// stashed and dumped into OutputDir once the test ends.
//
// Arguments:
// - actual: The rendered image.
// - expected: The golden image.
// - maxConformity: Highest acceptable conformity score.
//
// Returns:
// - bool: Whether the check passed.
//
// @example
// h.AssertConformity(rendered, golden, 20)
func (h *Helper) AssertConformity(actual, expected *images.Image, maxConformity float64) bool {
	h.tb.Helper()
	res := h.Check(actual, expected, maxConformity)
	if res.Passed {
		return true
	}
	msg := failureMessage(res, actual, expected, maxConformity)
	h.failures = append(h.failures, msg)
	h.tb.Errorf("%s", msg)
	return false
}

// RequireConformity is AssertConformity followed by FailNow on failure.
func (h *Helper) RequireConformity(actual, expected *images.Image, maxConformity float64) {
	h.tb.Helper()
	if !h.AssertConformity(actual, expected, maxConformity) {
		h.tb.FailNow()
	}
}

// AssertEquality asserts that the images are identical.
func (h *Helper) AssertEquality(actual, expected *images.Image) bool {
	h.tb.Helper()
	return h.AssertConformity(actual, expected, 0)
}

// failureMessage prefers the checker's message; threshold failures carry
// none, so the scores are reported instead.
func failureMessage(res conformity.Result, actual, expected *images.Image, maxConformity float64) string {
	if res.Message != "" {
		return res.Message
	}
	return fmt.Sprintf(
		"images %s and %s differ: conformity %.4f exceeds %.4f (raw %.6f)",
		actual, expected, res.Conformity, maxConformity, res.Raw,
	)
}

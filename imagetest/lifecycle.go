package imagetest

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagetest/logging"
	"github.com/nvr-ai/go-imagetest/stash"
)

// Failure describes why a test failed. It is informational only.
type Failure struct {
	Message string `json:"message"`
}

// Lifecycle implements the hooks a test runner calls around one test: the
// output directory is cleared on start and the stash is dumped on failure.
//
// A Lifecycle owns its stash. Runners that execute tests in parallel need one
// Lifecycle per test.
type Lifecycle struct {
	outputRoot string
	stash      stash.Stash
	logger     *zap.Logger
}

// NewLifecycleArgs configures a Lifecycle.
type NewLifecycleArgs struct {
	// OutputRoot is the directory below which each test gets <suite>/<name>.
	OutputRoot string
	// Logger receives dump diagnostics. Nil uses the process logger.
	Logger *zap.Logger
}

// NewLifecycle creates a Lifecycle with an empty stash.
func NewLifecycle(args NewLifecycleArgs) *Lifecycle {
	return &Lifecycle{
		outputRoot: args.OutputRoot,
		logger:     args.Logger,
	}
}

// OutputDir returns <outputRoot>/<suite>/<test name segments>.
func (l *Lifecycle) OutputDir(id Identity) string {
	return filepath.Join(l.outputRoot, id.Path())
}

// Stash returns the stash dumped by OnTestFailure.
func (l *Lifecycle) Stash() *stash.Stash {
	return &l.stash
}

// OnTestStart removes whatever a previous run left in the test's output
// directory. A missing directory is not an error.
func (l *Lifecycle) OnTestStart(id Identity) error {
	dir := l.OutputDir(id)
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "failed to remove output directory %q", dir)
	}
	return nil
}

// OnTestFailure dumps the stash, when it holds anything, into the test's
// output directory. The stash is cleared whether or not the dump succeeds.
//
// Arguments:
// - id: The failed test.
// - failure: What the runner knows about the failure.
//
// Returns:
// - []string: Paths of the dumped files.
// - error: Directory creation or encoding error.
//
// @example
// paths, err := lc.OnTestFailure(id, imagetest.Failure{Message: "conformity exceeded"})
func (l *Lifecycle) OnTestFailure(id Identity, failure Failure) ([]string, error) {
	defer l.stash.Clear()

	if l.stash.Empty() {
		return nil, nil
	}

	dir := l.OutputDir(id)
	paths, err := stash.Dump(dir, l.stash.Images())
	logging.Or(l.logger).Debug("dumped stashed images",
		zap.Stringer("test", id),
		zap.String("failure", failure.Message),
		zap.Strings("files", paths),
		zap.Error(err),
	)
	return paths, err
}

// OnTestEnd clears the stash after a test that did not fail.
func (l *Lifecycle) OnTestEnd(Identity) {
	l.stash.Clear()
}

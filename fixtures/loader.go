// Package fixtures - locates sample and golden result images on disk.
//
// Fixtures follow a fixed layout below a data root:
//
//	<dataRoot>/images/samples/               sample inputs
//	<dataRoot>/images/results/<effectName>/  golden outputs per effect
package fixtures

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagetest/images"
	"github.com/nvr-ai/go-imagetest/logging"
)

// Extensions lists the fixture file extensions that are accepted silently.
var Extensions = []string{"jpg", "jpeg", "png"}

// IsKnownExtension reports whether path carries one of Extensions, ignoring case.
func IsKnownExtension(path string) bool {
	ext := images.Extension(path)
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

// ListImages returns every regular file in dir, sorted lexicographically.
//
// The scan is not recursive. Files whose extension is not one of Extensions are
// still returned; each one is reported as a warning on logger so that stray
// files in a fixture directory are noticed without breaking the test run.
//
// Arguments:
// - dir: Directory path containing image files.
// - logger: Receives unknown-extension warnings; nil uses the process logger.
//
// Returns:
// - []string: Paths of the files, each joined with dir.
// - error: Error if the directory cannot be read.
//
// @example
// paths, err := fixtures.ListImages("testdata/images/samples", nil)
func ListImages(dir string, logger *zap.Logger) ([]string, error) {
	logger = logging.Or(logger)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture directory %q", dir)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isFile(entry, path) {
			continue
		}

		if !IsKnownExtension(path) {
			logger.Warn("found file of unknown extension in fixture directory", zap.String("path", path))
		}
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths, nil
}

// isFile follows symlinks; dangling links and directories are not files.
func isFile(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

package imagetest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Identity names a test for the purpose of its output directory.
type Identity struct {
	// Suite groups tests; the package directory of the test binary by default.
	Suite string `json:"suite"`
	// Name is the full test name as reported by testing, subtests included.
	Name string `json:"name"`
}

// IdentityFromName builds an Identity for a test name in the package whose
// tests run in the current working directory.
//
// Arguments:
// - name: The value of t.Name().
//
// Returns:
// - Identity: Suite set to the base name of the working directory.
// - error: Error if the working directory cannot be determined.
func IdentityFromName(name string) (Identity, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Identity{}, errors.Wrap(err, "failed to resolve test suite")
	}
	return Identity{Suite: filepath.Base(wd), Name: name}, nil
}

// Path returns the identity as a relative path: the suite followed by one
// directory per test name segment.
//
// @example
// Identity{Suite: "effects", Name: "TestGradient/a.png"}.Path() // effects/TestGradient/a.png
func (id Identity) Path() string {
	parts := []string{sanitize(id.Suite)}
	for _, seg := range strings.Split(id.Name, "/") {
		parts = append(parts, sanitize(seg))
	}
	return filepath.Join(parts...)
}

func (id Identity) String() string {
	return id.Suite + "." + id.Name
}

// sanitize keeps a name segment inside its parent directory.
func sanitize(seg string) string {
	seg = strings.ReplaceAll(seg, string(filepath.Separator), "_")
	switch seg {
	case "", ".", "..":
		return "_" + seg
	}
	return seg
}

// Package imagetest - golden image assertions bound to the testing package.
//
// A Helper is created per test (or subtest). It clears the test's output
// directory when the test starts, checks rendered images against golden
// fixtures, stashes the images of a failed check and dumps them as numbered
// PNG files when the test is reported failed:
//
//	func TestGradient(t *testing.T) {
//	    h := imagetest.New(t, imagetest.NewHelperArgs{})
//	    for _, pair := range h.Pairs("gradient") {
//	        ...
//	        h.AssertConformity(rendered, h.LoadImage(pair.ExpectedPath), 20)
//	    }
//	}
package imagetest

import (
	"os"
	"strconv"
)

// Environment variables read by ConfigFromEnv.
const (
	// EnvDataDir overrides the fixture data root.
	EnvDataDir = "IMAGETEST_DATA_DIR"
	// EnvOutputDir overrides the root of the failure dumps.
	EnvOutputDir = "IMAGETEST_OUTPUT_DIR"
	// EnvDebug enables debug logging of conformity scores.
	EnvDebug = "IMAGETEST_DEBUG"
)

const (
	// DefaultDataRoot is relative to the package under test.
	DefaultDataRoot = "testdata"
	// DefaultOutputRoot is relative to the package under test and ignored by the go tool.
	DefaultOutputRoot = "_output"
)

// Config holds the directories used by the helpers.
type Config struct {
	// DataRoot contains the images/samples and images/results trees.
	DataRoot string `json:"data_root"`
	// OutputRoot receives one directory per failed test.
	OutputRoot string `json:"output_root"`
	// Debug logs every conformity score.
	Debug bool `json:"debug"`
}

// DefaultConfig returns the built-in directories with debug logging off.
func DefaultConfig() Config {
	return Config{
		DataRoot:   DefaultDataRoot,
		OutputRoot: DefaultOutputRoot,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies the IMAGETEST_*
// environment variables. Unparsable booleans count as false.
//
// Arguments:
// - None.
//
// Returns:
// - Config: The resolved configuration.
//
// @example
// // IMAGETEST_OUTPUT_DIR=/tmp/dumps IMAGETEST_DEBUG=1 go test ./...
// cfg := imagetest.ConfigFromEnv()
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataRoot = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputRoot = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	return cfg
}

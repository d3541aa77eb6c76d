// Package cli - the imgcheck command line, built on cobra.
package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nvr-ai/go-imagetest/fixtures"
	"github.com/nvr-ai/go-imagetest/imagetest"
	"github.com/nvr-ai/go-imagetest/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	dataDir   string
	outputDir string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "imgcheck",
	Short: "Inspect and maintain golden image fixtures",
	Long: `imgcheck compares rendered images with golden images using the same
conformity score as the test helpers, lists fixture pairs, imports sample
images and regenerates the golden results of registered effects.

Directory defaults come from IMAGETEST_DATA_DIR, IMAGETEST_OUTPUT_DIR and
IMAGETEST_DEBUG.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	cfg := imagetest.ConfigFromEnv()
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", cfg.DataRoot, "Fixture data root containing images/samples and images/results")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", cfg.OutputRoot, "Directory receiving dumped images")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", cfg.Debug, "Log conformity scores and dumps")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("imgcheck version {{.Version}}\n")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logger, err := logging.NewDevelopment(debug)
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	logging.SetLogger(logger)
	return nil
}

func locator() *fixtures.Locator {
	return fixtures.NewLocator(fixtures.NewLocatorArgs{DataRoot: dataDir})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

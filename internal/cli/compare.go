package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nvr-ai/go-imagetest/conformity"
	"github.com/nvr-ai/go-imagetest/images"
	"github.com/nvr-ai/go-imagetest/logging"
	"github.com/nvr-ai/go-imagetest/stash"
)

var (
	compareMax  float64
	compareDump bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <actual> <expected>",
	Short: "Compare an image with a golden image",
	Long: `Loads both images and prints the raw mean squared error and the normalized
conformity score (0 means identical, 100 means maximally different).

Exits non-zero when the conformity exceeds --max. With --dump, the images of a
failed comparison (actual, expected and the difference visualization) are written
to <output-dir>/compare/<actual name>/ as numbered PNG files.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Float64Var(&compareMax, "max", 0, "Highest acceptable conformity score (0-100)")
	compareCmd.Flags().BoolVar(&compareDump, "dump", false, "Dump the images of a failed comparison")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareMax < 0 || compareMax > 100 {
		return errors.Errorf("--max must be within [0, 100], got %v", compareMax)
	}

	actual, err := images.Load(args[0])
	if err != nil {
		return err
	}
	expected, err := images.Load(args[1])
	if err != nil {
		return err
	}

	checker := conformity.NewChecker(conformity.NewCheckerArgs{Logger: logging.Logger()})
	res := checker.Check(actual, expected, compareMax)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "actual:     %s\n", actual)
	fmt.Fprintf(out, "expected:   %s\n", expected)
	fmt.Fprintf(out, "raw:        %.6f\n", res.Raw)
	fmt.Fprintf(out, "conformity: %.4f (max %.4f)\n", res.Conformity, compareMax)

	if res.Passed {
		fmt.Fprintln(out, "PASS")
		return nil
	}
	fmt.Fprintln(out, "FAIL")
	if res.Message != "" {
		fmt.Fprintln(out, res.Message)
	}

	if compareDump {
		var s stash.Stash
		s.PutImages(res.Images)
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		paths, err := stash.Dump(filepath.Join(outputDir, "compare", name), s.Images())
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(out, "dumped %s\n", p)
		}
	}

	return errors.Errorf("conformity check failed for %s", args[0])
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagetest/effects"
	"github.com/nvr-ai/go-imagetest/images"
	"github.com/nvr-ai/go-imagetest/logging"
)

var (
	goldensEffect string
	goldensClean  bool
)

var goldensCmd = &cobra.Command{
	Use:   "goldens",
	Short: "Regenerate the golden results of an effect",
	Long: `Applies the effect, with its default settings, to every sample image and
writes the result as PNG into images/results/<effect>/ under the sample's name.

Review the regenerated images before committing them: the golden tests pass
against whatever this command writes.`,
	Args: cobra.NoArgs,
	RunE: runGoldens,
}

func init() {
	goldensCmd.Flags().StringVar(&goldensEffect, "effect", effects.GradientName, "Registered effect to render")
	goldensCmd.Flags().BoolVar(&goldensClean, "clean", false, "Remove existing results of the effect first")
	rootCmd.AddCommand(goldensCmd)
}

func runGoldens(cmd *cobra.Command, args []string) error {
	effect, err := effects.Lookup(goldensEffect)
	if err != nil {
		return errors.Errorf("unknown effect %q, registered effects: %s", goldensEffect, strings.Join(effects.Names(), ", "))
	}

	loc := locator()
	samples, err := loc.SampleImages()
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return errors.Errorf("no sample images in %s", loc.SamplesDir())
	}

	dir := loc.ResultsDir(effect.Name())
	if goldensClean {
		if err := os.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, "failed to remove %q", dir)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %q", dir)
	}

	written := make(map[string]string, len(samples))
	for _, sample := range samples {
		name := pngName(sample)
		if prev, ok := written[name]; ok {
			return errors.Errorf("samples %q and %q both map to result %q", prev, sample, name)
		}
		written[name] = sample

		img, err := images.Load(sample)
		if err != nil {
			return err
		}
		if err := effect.Apply(img); err != nil {
			return errors.Wrapf(err, "failed to apply %s to %q", effect.Name(), sample)
		}

		path := filepath.Join(dir, name)
		if err := images.Save(img, path); err != nil {
			return err
		}
		logging.Logger().Debug("wrote golden", zap.String("sample", sample), zap.String("result", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// pngName replaces the extension of path's base name with .png.
func pngName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

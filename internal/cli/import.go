package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-imagetest/images"
	"github.com/nvr-ai/go-imagetest/logging"
)

var importWidth int

var importCmd = &cobra.Command{
	Use:   "import <image>...",
	Short: "Add images to the sample fixtures",
	Long: `Decodes each image (JPEG, PNG, WebP, GIF, BMP or TIFF), downsizes it to at
most --width pixels wide keeping the aspect ratio, and saves it as PNG into
images/samples/ under its original name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&importWidth, "width", 320, "Maximum sample width in pixels, 0 keeps the size")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importWidth < 0 {
		return errors.Errorf("--width cannot be negative, got %d", importWidth)
	}

	dir := locator().SamplesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %q", dir)
	}

	for _, src := range args {
		img, err := images.Load(src)
		if err != nil {
			return err
		}
		sample := images.Downscale(img, importWidth)

		path := filepath.Join(dir, pngName(src))
		if err := images.Save(sample, path); err != nil {
			return err
		}
		logging.Logger().Debug("imported sample",
			zap.String("source", src),
			zap.String("sample", path),
			zap.String("size", sample.Size()),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, sample.Size())
	}
	return nil
}

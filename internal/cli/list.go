package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listEffect string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sample fixtures or fixture pairs",
	Long: `Without --effect, lists the sample images in sort order.

With --effect, lists the (sample, expected result) pairs of that effect. Pairs
are positional: the Nth sample goes with the Nth expected result.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listEffect, "effect", "", "Effect whose pairs are listed")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	loc := locator()

	if listEffect == "" {
		samples, err := loc.SampleImages()
		if err != nil {
			return err
		}
		for _, s := range samples {
			fmt.Fprintln(out, s)
		}
		return nil
	}

	pairs, err := loc.Pairs(listEffect)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		fmt.Fprintf(out, "%s\t%s\n", p.SamplePath, p.ExpectedPath)
	}
	return nil
}

// Command imgcheck inspects and maintains golden image fixtures.
//
// Usage:
//
//	imgcheck compare rendered.png golden.png --max 20 --dump
//	imgcheck list --effect gradient
//	imgcheck import --width 320 photos/*.jpg
//	imgcheck goldens --effect gradient --clean
package main

import (
	"fmt"
	"os"

	"github.com/nvr-ai/go-imagetest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"blobsieve/internal/blob"
	"blobsieve/internal/imgio"
)

func main() {
	minWidth := flag.Int("min-width", 1, "Minimum blob width in pixels")
	minHeight := flag.Int("min-height", 1, "Minimum blob height in pixels")
	maxWidth := flag.Int("max-width", 0, "Maximum blob width in pixels (0 = unbounded)")
	maxHeight := flag.Int("max-height", 0, "Maximum blob height in pixels (0 = unbounded)")
	coupled := flag.Bool("coupled", false, "Couple the size bounds")
	threshold := flag.Int("threshold", 0, "Background threshold 0-255")
	applyFilter := flag.Bool("filter", false, "Apply the size filter before listing")
	top := flag.Int("top", 20, "List at most N blobs")

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: blobinfo [flags] image...")
		os.Exit(1)
	}

	cfg := blob.DefaultConfig()
	cfg.MinWidth = *minWidth
	cfg.MinHeight = *minHeight
	if *maxWidth > 0 {
		cfg.MaxWidth = *maxWidth
	}
	if *maxHeight > 0 {
		cfg.MaxHeight = *maxHeight
	}
	cfg.Coupled = *coupled
	cfg.FilterBySize = *applyFilter

	th := *threshold
	if th < 0 {
		th = 0
	}
	if th > 255 {
		th = 255
	}
	cfg.Threshold = uint8(th)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	exit := 0
	for _, arg := range flag.Args() {
		if err := inspect(arg, cfg, *top); err != nil {
			fmt.Fprintf(os.Stderr, "Error %s: %v\n", arg, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func inspect(path string, cfg blob.Config, top int) error {
	img, err := imgio.Load(path)
	if err != nil {
		return err
	}

	res, err := blob.Label(img, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== %s (%dx%d %s) ===\n", path, img.Width, img.Height, img.Format)
	fmt.Printf("Blobs: %d", len(res.Blobs))
	if res.Removed > 0 {
		fmt.Printf(" (%d removed by size filter)", res.Removed)
	}
	fmt.Println()

	blobs := make([]blob.Blob, len(res.Blobs))
	copy(blobs, res.Blobs)
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].Area > blobs[j].Area })

	shown := topBlobs(blobs, top)
	for _, b := range shown {
		fmt.Printf("  Blob[%d]: %dx%d at (%d,%d) area=%d\n",
			b.ID, b.Bounds.Dx(), b.Bounds.Dy(), b.Bounds.Min.X, b.Bounds.Min.Y, b.Area)
	}
	if rest := len(blobs) - len(shown); rest > 0 {
		fmt.Printf("  ... %d more\n", rest)
	}
	return nil
}

// topBlobs caps the listing at top entries. Negative values list nothing.
func topBlobs(blobs []blob.Blob, top int) []blob.Blob {
	if top < 0 {
		top = 0
	}
	if top > len(blobs) {
		top = len(blobs)
	}
	return blobs[:top]
}

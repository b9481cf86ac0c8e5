package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"blobsieve/internal/batch"
	"blobsieve/internal/config"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tga":  true,
	".webp": true,
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	minWidth := flag.Int("min-width", 0, "Minimum blob width in pixels (default: 1)")
	minHeight := flag.Int("min-height", 0, "Minimum blob height in pixels (default: 1)")
	maxWidth := flag.Int("max-width", 0, "Maximum blob width in pixels (default: unbounded)")
	maxHeight := flag.Int("max-height", 0, "Maximum blob height in pixels (default: unbounded)")
	coupled := flag.Bool("coupled", false, "Remove a blob only when both dimensions break the bounds")
	threshold := flag.Int("threshold", 0, "Background threshold 0-255 (default: 0)")
	outputDir := flag.String("output", "", "Output directory (default: filtered)")
	format := flag.String("format", "", "Output format: webp, png, bmp, tga, jpg (default: webp)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	report := flag.String("report", "", "Write a JSON run report to this path")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		MinWidth:  *minWidth,
		MinHeight: *minHeight,
		MaxWidth:  *maxWidth,
		MaxHeight: *maxHeight,
		Coupled:   *coupled,
		Threshold: *threshold,
		OutputDir: *outputDir,
		Format:    *format,
		Quality:   *quality,
		Workers:   *workers,
		Report:    *report,
	})

	filter := cfg.FilterConfig()
	if err := filter.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := collectFiles(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No image files to process.")
		os.Exit(0)
	}

	// Print summary
	maxW, maxH := "unbounded", "unbounded"
	if cfg.MaxWidth > 0 {
		maxW = strconv.Itoa(cfg.MaxWidth)
	}
	if cfg.MaxHeight > 0 {
		maxH = strconv.Itoa(cfg.MaxHeight)
	}

	fmt.Printf("Blob size filter → %s\n", cfg.Format)
	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Min: %dx%d, Max: %sx%s, Coupled: %v\n", cfg.MinWidth, cfg.MinHeight, maxW, maxH, cfg.Coupled)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Filtering"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Quality:   cfg.Quality,
		Filter:    filter,
		Workers:   cfg.Workers,
		Progress:  func(done, total int) { bar.Add(1) },
	}

	results := batch.Run(batchCfg, files)
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	kept, removed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			kept += r.Kept
			removed += r.Removed
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Filtered: %d/%d\n", success, len(files))
	fmt.Printf("Blobs kept: %d, removed: %d\n", kept, removed)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	// Write report
	if cfg.Report != "" {
		if err := batch.WriteReport(cfg.Report, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
		} else {
			fmt.Printf("Report: %s\n", cfg.Report)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// collectFiles expands positional arguments into image paths. Directories
// are read one level deep and filtered by extension; explicit files are
// taken as given.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
	}
	return files, nil
}

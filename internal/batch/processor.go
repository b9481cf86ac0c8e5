package batch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"blobsieve/internal/blob"
	"blobsieve/internal/imgio"
	"blobsieve/internal/mask"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Format    string // output extension without the dot; "" keeps the input's
	Quality   int
	Filter    blob.Config
	Workers   int
	Progress  func(done, total int) // optional, called after each file
}

// Result holds the outcome of processing one file.
type Result struct {
	File    string
	Output  string
	Format  string
	Width   int
	Height  int
	Kept    int
	Removed int
	Success bool
	Error   string
}

// Run processes all files using a worker pool. Per-file image state stays
// confined to one worker; cfg is shared read-only between them.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				done := processed.Add(1)
				if cfg.Progress != nil {
					cfg.Progress(int(done), total)
				}
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	return results
}

func processFile(cfg Config, path string) Result {
	res := Result{File: path}

	img, err := imgio.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Width, res.Height = img.Width, img.Height
	res.Format = img.Format.String()

	labeled, err := blob.Label(img, cfg.Filter)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if err := mask.Apply(img, labeled.Labels); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Kept = len(labeled.Blobs)
	res.Removed = labeled.Removed

	outPath := outputPath(cfg, path)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := imgio.Save(outPath, img, cfg.Quality); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = outPath
	res.Success = true
	return res
}

// outputPath keeps the source base name, swapping in the configured
// output format.
func outputPath(cfg Config, src string) string {
	base := filepath.Base(src)
	if cfg.Format != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + cfg.Format
	}
	return filepath.Join(cfg.OutputDir, base)
}

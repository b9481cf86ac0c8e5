package batch

import (
	"encoding/json"
	"os"
	"time"
)

// Report is the JSON run summary written alongside the filtered images.
type Report struct {
	GeneratedAt  time.Time     `json:"generated_at"`
	Processed    int           `json:"processed"`
	Failed       int           `json:"failed"`
	BlobsKept    int           `json:"blobs_kept"`
	BlobsRemoved int           `json:"blobs_removed"`
	Files        []ReportEntry `json:"files"`
}

// ReportEntry describes one input file in the report.
type ReportEntry struct {
	File    string `json:"file"`
	Output  string `json:"output,omitempty"`
	Format  string `json:"format,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Kept    int    `json:"blobs_kept"`
	Removed int    `json:"blobs_removed"`
	Error   string `json:"error,omitempty"`
}

// WriteReport writes the run report as indented JSON.
func WriteReport(path string, results []Result) error {
	rep := Report{
		GeneratedAt: time.Now().UTC(),
		Files:       make([]ReportEntry, len(results)),
	}
	for i, r := range results {
		rep.Files[i] = ReportEntry{
			File:    r.File,
			Output:  r.Output,
			Format:  r.Format,
			Width:   r.Width,
			Height:  r.Height,
			Kept:    r.Kept,
			Removed: r.Removed,
			Error:   r.Error,
		}
		if r.Success {
			rep.Processed++
			rep.BlobsKept += r.Kept
			rep.BlobsRemoved += r.Removed
		} else {
			rep.Failed++
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

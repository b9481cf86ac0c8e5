package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blobsieve/internal/blob"
	"blobsieve/internal/imgio"
	"blobsieve/internal/pixel"
)

// writeTestImage saves a grayscale PNG with one 1x1 speck and one 2x2 box.
func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img, err := pixel.New(5, 4, pixel.FormatIndexed8)
	require.NoError(t, err)
	rows := [][]byte{
		{200, 0, 0, 0, 0},
		{0, 0, 200, 200, 0},
		{0, 0, 200, 200, 0},
		{0, 0, 0, 0, 0},
	}
	for y, row := range rows {
		copy(img.Row(y), row)
	}
	require.NoError(t, imgio.Save(path, img, 90))
}

func TestRunFiltersFiles(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	good1 := filepath.Join(inDir, "a.png")
	good2 := filepath.Join(inDir, "b.png")
	bad := filepath.Join(inDir, "c.png")
	writeTestImage(t, good1)
	writeTestImage(t, good2)
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	filter := blob.DefaultConfig()
	filter.MinWidth, filter.MinHeight = 2, 2
	filter.FilterBySize = true

	var calls atomic.Int64
	cfg := Config{
		OutputDir: outDir,
		Format:    "png",
		Quality:   90,
		Filter:    filter,
		Workers:   2,
		Progress:  func(done, total int) { calls.Add(1) },
	}

	results := Run(cfg, []string{good1, good2, bad})
	require.Len(t, results, 3)
	assert.EqualValues(t, 3, calls.Load())

	// Results keep input order even with concurrent workers.
	assert.Equal(t, good1, results[0].File)
	assert.Equal(t, bad, results[2].File)

	for _, r := range results[:2] {
		assert.True(t, r.Success, r.Error)
		assert.Equal(t, 1, r.Kept)
		assert.Equal(t, 1, r.Removed)
		assert.Equal(t, "indexed8", r.Format)
	}
	assert.False(t, results[2].Success)
	assert.NotEmpty(t, results[2].Error)
	assert.Empty(t, results[2].Output)

	// The speck is erased in the written output, the box survives.
	out, err := imgio.Load(filepath.Join(outDir, "a.png"))
	require.NoError(t, err)
	want := []byte{
		0, 0, 0, 0, 0,
		0, 0, 200, 200, 0,
		0, 0, 200, 200, 0,
		0, 0, 0, 0, 0,
	}
	assert.Equal(t, want, out.Pix)
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	results := []Result{
		{File: "a.png", Output: "out/a.webp", Format: "rgb24", Width: 5, Height: 4, Kept: 2, Removed: 3, Success: true},
		{File: "c.png", Error: "decode failed"},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rep Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, 1, rep.Processed)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 2, rep.BlobsKept)
	assert.Equal(t, 3, rep.BlobsRemoved)
	require.Len(t, rep.Files, 2)
	assert.Equal(t, "out/a.webp", rep.Files[0].Output)
	assert.Equal(t, "decode failed", rep.Files[1].Error)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	cfg := Config{OutputDir: "out"}
	assert.Equal(t, filepath.Join("out", "cat.bmp"), outputPath(cfg, filepath.Join("in", "cat.bmp")))

	cfg.Format = "webp"
	assert.Equal(t, filepath.Join("out", "cat.webp"), outputPath(cfg, filepath.Join("in", "cat.bmp")))
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"blobsieve/internal/blob"
)

// Config holds all configurable filter and output settings.
type Config struct {
	// Blob size bounds. Zero maximums mean unbounded.
	MinWidth  int  `json:"min_width"`
	MinHeight int  `json:"min_height"`
	MaxWidth  int  `json:"max_width"`
	MaxHeight int  `json:"max_height"`
	Coupled   bool `json:"coupled"`
	Threshold int  `json:"threshold"`

	// Output settings
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Workers   int    `json:"workers"`
	Report    string `json:"report"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	Coupled   bool
	Threshold int
	OutputDir string
	Format    string
	Quality   int
	Workers   int
	Report    string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.MinWidth > 0 {
		c.MinWidth = flags.MinWidth
	}
	if flags.MinHeight > 0 {
		c.MinHeight = flags.MinHeight
	}
	if flags.MaxWidth > 0 {
		c.MaxWidth = flags.MaxWidth
	}
	if flags.MaxHeight > 0 {
		c.MaxHeight = flags.MaxHeight
	}
	if flags.Coupled {
		c.Coupled = true
	}
	if flags.Threshold > 0 {
		c.Threshold = flags.Threshold
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Quality > 0 {
		c.Quality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Report != "" {
		c.Report = flags.Report
	}

	// Defaults
	if c.MinWidth <= 0 {
		c.MinWidth = 1
	}
	if c.MinHeight <= 0 {
		c.MinHeight = 1
	}
	if c.OutputDir == "" {
		c.OutputDir = "filtered"
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Quality <= 0 {
		c.Quality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// FilterConfig converts the resolved settings into the labeler's config.
// Zero maximums stay unbounded; the threshold is clamped to a byte.
func (c Config) FilterConfig() blob.Config {
	f := blob.DefaultConfig()
	f.MinWidth = c.MinWidth
	f.MinHeight = c.MinHeight
	if c.MaxWidth > 0 {
		f.MaxWidth = c.MaxWidth
	}
	if c.MaxHeight > 0 {
		f.MaxHeight = c.MaxHeight
	}
	f.Coupled = c.Coupled
	f.FilterBySize = true

	th := c.Threshold
	if th < 0 {
		th = 0
	}
	if th > 255 {
		th = 255
	}
	f.Threshold = uint8(th)
	return f
}

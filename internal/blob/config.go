package blob

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig reports filter bounds that can never be satisfied.
var ErrConfig = errors.New("invalid filter configuration")

// Unbounded is the default upper size limit: no blob is too large.
const Unbounded = math.MaxInt32

// Config controls blob size filtering. It is a plain value: copy it
// freely, pass it into Label, and treat shared copies as read-only while
// a call is in flight.
type Config struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	// Coupled evaluates the width and height bounds jointly: a blob is
	// rejected only when both dimensions fall below the minimums
	// together, or both exceed the maximums together. When false each
	// dimension is tested independently against its own bounds.
	Coupled bool

	// FilterBySize enables removal. When false, Label only enumerates
	// blobs and every region keeps its label.
	FilterBySize bool

	// Threshold is the background level: a pixel counts as foreground
	// when any color channel (or the index byte) exceeds it.
	Threshold uint8
}

// DefaultConfig returns the permissive configuration: minimum 1x1, no
// upper bound, uncoupled, filtering disabled.
func DefaultConfig() Config {
	return Config{MinWidth: 1, MinHeight: 1, MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Validate rejects bounds no blob could ever satisfy. Inverted bounds
// (min above max) are an explicit error rather than a silently
// always-empty filter.
func (c Config) Validate() error {
	if c.MinWidth < 1 || c.MinHeight < 1 {
		return fmt.Errorf("blob: min size %dx%d below 1x1: %w", c.MinWidth, c.MinHeight, ErrConfig)
	}
	if c.MaxWidth < 1 || c.MaxHeight < 1 {
		return fmt.Errorf("blob: max size %dx%d below 1x1: %w", c.MaxWidth, c.MaxHeight, ErrConfig)
	}
	if c.MinWidth > c.MaxWidth {
		return fmt.Errorf("blob: min width %d above max width %d: %w", c.MinWidth, c.MaxWidth, ErrConfig)
	}
	if c.MinHeight > c.MaxHeight {
		return fmt.Errorf("blob: min height %d above max height %d: %w", c.MinHeight, c.MaxHeight, ErrConfig)
	}
	return nil
}

// Accepts reports whether a blob with the given bounding-box size
// survives the size policy.
func (c Config) Accepts(w, h int) bool {
	if c.Coupled {
		if w < c.MinWidth && h < c.MinHeight {
			return false
		}
		if w > c.MaxWidth && h > c.MaxHeight {
			return false
		}
		return true
	}
	return w >= c.MinWidth && h >= c.MinHeight && w <= c.MaxWidth && h <= c.MaxHeight
}

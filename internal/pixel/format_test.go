package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		bpp    int
		alpha  bool
		name   string
	}{
		{FormatIndexed8, 1, false, "indexed8"},
		{FormatRGB24, 3, false, "rgb24"},
		{FormatARGB32, 4, true, "argb32"},
		{FormatPremulARGB32, 4, true, "pargb32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bpp, tt.format.BytesPerPixel())
			assert.Equal(t, tt.alpha, tt.format.HasAlpha())
			assert.True(t, tt.format.Valid())
			assert.Equal(t, tt.name, tt.format.String())
		})
	}
}

func TestFormatInvalid(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatInvalid, Format(99), Format(-1)} {
		assert.False(t, f.Valid())
		assert.Equal(t, 0, f.BytesPerPixel())
		assert.False(t, f.HasAlpha())
		assert.Equal(t, "invalid", f.String())
	}
}

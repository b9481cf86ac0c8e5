package pixel

// Format identifies the packed byte layout of an Image buffer.
//
// The supported set is fixed: callers probe it with Valid rather than
// consulting a translation table. Channel order for the multi-byte
// formats is R, G, B with alpha last when present.
type Format int

const (
	// FormatInvalid is the zero value and never validates.
	FormatInvalid Format = iota
	// FormatIndexed8 is 8-bit indexed grayscale, one byte per pixel.
	FormatIndexed8
	// FormatRGB24 is 24-bit color, three bytes per pixel, no padding channel.
	FormatRGB24
	// FormatARGB32 is 32-bit color with alpha, four bytes per pixel.
	FormatARGB32
	// FormatPremulARGB32 is FormatARGB32 with color channels premultiplied by alpha.
	FormatPremulARGB32
)

// BytesPerPixel returns the width of one pixel in bytes, or 0 when the
// format is not supported.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatIndexed8:
		return 1
	case FormatRGB24:
		return 3
	case FormatARGB32, FormatPremulARGB32:
		return 4
	}
	return 0
}

// HasAlpha reports whether the format carries an alpha channel.
func (f Format) HasAlpha() bool {
	return f == FormatARGB32 || f == FormatPremulARGB32
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	return f.BytesPerPixel() != 0
}

func (f Format) String() string {
	switch f {
	case FormatIndexed8:
		return "indexed8"
	case FormatRGB24:
		return "rgb24"
	case FormatARGB32:
		return "argb32"
	case FormatPremulARGB32:
		return "pargb32"
	}
	return "invalid"
}

package pixel

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrFormat reports a pixel format outside the supported set.
	ErrFormat = errors.New("unsupported pixel format")
	// ErrGeometry reports buffer dimensions that do not add up: stride
	// shorter than a row, a short buffer, or a mismatched label map.
	ErrGeometry = errors.New("invalid buffer geometry")
)

// Image is a raster held in a flat packed byte buffer. Rows run top to
// bottom; Stride is the byte distance between row starts and may exceed
// Width×BytesPerPixel when rows are padded.
type Image struct {
	Width  int
	Height int
	Stride int
	Format Format
	Pix    []byte
}

// New allocates a tightly packed image (stride equal to the row width).
func New(w, h int, f Format) (*Image, error) {
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("pixel: format %d: %w", int(f), ErrFormat)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pixel: dimensions %dx%d: %w", w, h, ErrGeometry)
	}
	if int64(w)*int64(h)*int64(bpp) > math.MaxInt32 {
		return nil, fmt.Errorf("pixel: %dx%d too large: %w", w, h, ErrGeometry)
	}
	stride := w * bpp
	return &Image{
		Width:  w,
		Height: h,
		Stride: stride,
		Format: f,
		Pix:    make([]byte, stride*h),
	}, nil
}

// FromBuffer wraps a caller-owned buffer without copying. The buffer must
// hold at least stride×h bytes; ownership stays with the caller.
func FromBuffer(w, h, stride int, f Format, pix []byte) (*Image, error) {
	img := &Image{Width: w, Height: h, Stride: stride, Format: f, Pix: pix}
	if err := img.CheckGeometry(); err != nil {
		return nil, err
	}
	return img, nil
}

// CheckGeometry verifies that the image's fields describe a traversable
// buffer. Consumers call it before any pass so that a violation surfaces
// prior to the first byte written.
func (img *Image) CheckGeometry() error {
	if img == nil {
		return fmt.Errorf("pixel: nil image: %w", ErrGeometry)
	}
	bpp := img.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("pixel: format %d: %w", int(img.Format), ErrFormat)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("pixel: dimensions %dx%d: %w", img.Width, img.Height, ErrGeometry)
	}
	if img.Stride < img.Width*bpp {
		return fmt.Errorf("pixel: stride %d below row width %d: %w", img.Stride, img.Width*bpp, ErrGeometry)
	}
	if len(img.Pix) < img.Stride*img.Height {
		return fmt.Errorf("pixel: buffer %d bytes, need %d: %w", len(img.Pix), img.Stride*img.Height, ErrGeometry)
	}
	return nil
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (img *Image) PixOffset(x, y int) int {
	return y*img.Stride + x*img.Format.BytesPerPixel()
}

// Row returns the y-th scanline including any stride padding.
func (img *Image) Row(y int) []byte {
	start := y * img.Stride
	return img.Pix[start : start+img.Stride]
}

// Clone returns a deep copy sharing no memory with the receiver.
func (img *Image) Clone() *Image {
	out := *img
	out.Pix = make([]byte, len(img.Pix))
	copy(out.Pix, img.Pix)
	return &out
}

package imgio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"blobsieve/internal/pixel"
)

// Save encodes img to path, picking the codec from the file extension.
func Save(path string, img *pixel.Image, quality int) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgio: create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, img, format, quality); err != nil {
		return fmt.Errorf("imgio: encode %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w as "webp", "png", "bmp", "tga" or "jpg"/"jpeg".
// Quality applies to JPEG output only. BMP output does not round-trip
// alpha: the writer emits a plain BITMAPINFOHEADER, which readers treat
// as opaque.
func Encode(w io.Writer, img *pixel.Image, format string, quality int) error {
	std, err := ToImage(img)
	if err != nil {
		return err
	}

	switch format {
	case "webp":
		return nativewebp.Encode(w, std, nil)
	case "png":
		return png.Encode(w, std)
	case "bmp":
		return bmp.Encode(w, std)
	case "tga":
		return tga.Encode(w, std)
	case "jpg", "jpeg":
		return jpeg.Encode(w, std, &jpeg.Options{Quality: quality})
	}
	return fmt.Errorf("imgio: unsupported output format %q", format)
}

// ToImage converts a packed buffer back to a standard library image for
// encoding. Indexed data comes back as grayscale.
func ToImage(img *pixel.Image) (image.Image, error) {
	if err := img.CheckGeometry(); err != nil {
		return nil, err
	}
	w, h := img.Width, img.Height

	switch img.Format {
	case pixel.FormatIndexed8:
		dst := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(dst.Pix[y*dst.Stride:], img.Row(y)[:w])
		}
		return dst, nil

	case pixel.FormatRGB24:
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			row := img.Row(y)
			for x := 0; x < w; x++ {
				i := y*dst.Stride + x*4
				dst.Pix[i+0] = row[x*3+0]
				dst.Pix[i+1] = row[x*3+1]
				dst.Pix[i+2] = row[x*3+2]
				dst.Pix[i+3] = 255
			}
		}
		return dst, nil

	case pixel.FormatARGB32:
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(dst.Pix[y*dst.Stride:], img.Row(y)[:w*4])
		}
		return dst, nil

	case pixel.FormatPremulARGB32:
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(dst.Pix[y*dst.Stride:], img.Row(y)[:w*4])
		}
		return dst, nil
	}
	return nil, fmt.Errorf("imgio: convert %s: %w", img.Format, pixel.ErrFormat)
}

package imgio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"blobsieve/internal/pixel"
)

// Load reads an image file into a packed buffer. The codec is picked from
// the file extension; unknown extensions fall back to magic-byte sniffing.
// TGA carries no magic bytes, so .tga input is reachable only through its
// extension.
func Load(path string) (*pixel.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: read %s: %w", path, err)
	}

	var src image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		src, err = tga.Decode(bytes.NewReader(raw))
	case ".bmp":
		src, err = bmp.Decode(bytes.NewReader(raw))
	case ".webp":
		src, err = webp.Decode(bytes.NewReader(raw))
	case ".png":
		src, err = png.Decode(bytes.NewReader(raw))
	case ".jpg", ".jpeg":
		src, err = jpeg.Decode(bytes.NewReader(raw))
	default:
		src, err = sniffDecode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("imgio: decode %s: %w", path, err)
	}
	return FromImage(src)
}

// Decode decodes one PNG, JPEG, BMP or WebP image from r, sniffing the
// format from the leading bytes.
func Decode(r io.Reader) (*pixel.Image, error) {
	src, err := sniffDecode(r)
	if err != nil {
		return nil, fmt.Errorf("imgio: decode: %w", err)
	}
	return FromImage(src)
}

// sniffDecode routes by leading magic bytes. image.Decode cannot be used
// here: the tga package registers its decoder with an empty magic string,
// which captures every sniffed stream.
func sniffDecode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(12)
	if err != nil && len(magic) == 0 {
		return nil, fmt.Errorf("sniff: %w", err)
	}

	switch {
	case bytes.HasPrefix(magic, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode(br)
	case bytes.HasPrefix(magic, []byte{0xFF, 0xD8}):
		return jpeg.Decode(br)
	case bytes.HasPrefix(magic, []byte("BM")):
		return bmp.Decode(br)
	case len(magic) == 12 && bytes.Equal(magic[:4], []byte("RIFF")) && bytes.Equal(magic[8:], []byte("WEBP")):
		return webp.Decode(br)
	}
	return nil, errors.New("unrecognized image data")
}

// FromImage repacks a decoded image. Grayscale and paletted images keep
// their single byte per pixel, NRGBA keeps straight alpha, RGBA keeps
// premultiplied alpha. Everything else is flattened to 24-bit RGB.
func FromImage(src image.Image) (*pixel.Image, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch s := src.(type) {
	case *image.Gray:
		img, err := pixel.New(w, h, pixel.FormatIndexed8)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			i := s.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(img.Row(y), s.Pix[i:i+w])
		}
		return img, nil

	case *image.Paletted:
		img, err := pixel.New(w, h, pixel.FormatIndexed8)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			i := s.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(img.Row(y), s.Pix[i:i+w])
		}
		return img, nil

	case *image.NRGBA:
		img, err := pixel.New(w, h, pixel.FormatARGB32)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			i := s.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(img.Row(y), s.Pix[i:i+w*4])
		}
		return img, nil

	case *image.RGBA:
		img, err := pixel.New(w, h, pixel.FormatPremulARGB32)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			i := s.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(img.Row(y), s.Pix[i:i+w*4])
		}
		return img, nil
	}

	// YCbCr and friends go through the color model.
	img, err := pixel.New(w, h, pixel.FormatRGB24)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			row[x*3+0] = uint8(r >> 8)
			row[x*3+1] = uint8(g >> 8)
			row[x*3+2] = uint8(b >> 8)
		}
	}
	return img, nil
}

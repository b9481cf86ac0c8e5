package mask

import (
	"fmt"

	"blobsieve/internal/blob"
	"blobsieve/internal/pixel"
)

// Apply zeroes the color channels of every pixel whose label is 0,
// walking rows in buffer order and skipping stride padding between them.
// The alpha byte of the 32-bit formats is never touched. The buffer is
// rewritten in place and every precondition is checked before the first
// write, so a failed call leaves it untouched. Applying the same map
// twice yields the same bytes as applying it once.
func Apply(img *pixel.Image, labels blob.Map) error {
	if err := img.CheckGeometry(); err != nil {
		return err
	}
	if want := img.Width * img.Height; len(labels) != want {
		return fmt.Errorf("mask: label map holds %d entries, image %dx%d needs %d: %w",
			len(labels), img.Width, img.Height, want, pixel.ErrGeometry)
	}

	bpp := img.Format.BytesPerPixel()
	offset := img.Stride - img.Width*bpp
	pix := img.Pix

	p := 0   // label index, one step per pixel
	cur := 0 // byte cursor into pix

	if bpp == 1 {
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				if labels[p] == 0 {
					pix[cur] = 0
				}
				p++
				cur++
			}
			cur += offset
		}
		return nil
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if labels[p] == 0 {
				pix[cur] = 0
				pix[cur+1] = 0
				pix[cur+2] = 0
			}
			p++
			cur += bpp
		}
		cur += offset
	}
	return nil
}

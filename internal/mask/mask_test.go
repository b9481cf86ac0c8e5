package mask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blobsieve/internal/blob"
	"blobsieve/internal/pixel"
)

func TestApplyIndexed(t *testing.T) {
	t.Parallel()

	img, err := pixel.New(4, 2, pixel.FormatIndexed8)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = 200
	}

	labels := blob.Map{1, 1, 0, 0, 0, 0, 1, 1}
	require.NoError(t, Apply(img, labels))

	want := []byte{200, 200, 0, 0, 0, 0, 200, 200}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("masked buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyRGB(t *testing.T) {
	t.Parallel()

	img, err := pixel.New(2, 1, pixel.FormatRGB24)
	require.NoError(t, err)
	copy(img.Pix, []byte{10, 20, 30, 40, 50, 60})

	require.NoError(t, Apply(img, blob.Map{0, 5}))

	want := []byte{0, 0, 0, 40, 50, 60}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("masked buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyPreservesAlpha(t *testing.T) {
	t.Parallel()

	for _, f := range []pixel.Format{pixel.FormatARGB32, pixel.FormatPremulARGB32} {
		t.Run(f.String(), func(t *testing.T) {
			img, err := pixel.New(3, 1, f)
			require.NoError(t, err)
			// Pixels (R,G,B,A): masked, kept, masked.
			copy(img.Pix, []byte{
				9, 8, 7, 100,
				1, 2, 3, 200,
				6, 5, 4, 50,
			})

			require.NoError(t, Apply(img, blob.Map{0, 7, 0}))

			want := []byte{
				0, 0, 0, 100,
				1, 2, 3, 200,
				0, 0, 0, 50,
			}
			if diff := cmp.Diff(want, img.Pix); diff != "" {
				t.Errorf("masked buffer mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	img, err := pixel.New(4, 3, pixel.FormatRGB24)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = byte(i*7 + 1)
	}
	labels := blob.Map{
		1, 0, 0, 2,
		0, 1, 2, 0,
		0, 0, 0, 3,
	}

	require.NoError(t, Apply(img, labels))
	once := append([]byte(nil), img.Pix...)

	require.NoError(t, Apply(img, labels))
	if diff := cmp.Diff(once, img.Pix); diff != "" {
		t.Errorf("second apply changed the buffer (-once +twice):\n%s", diff)
	}
}

// The same label map must pick out the same pixels in every format; only
// the bytes per pixel and the alpha handling differ.
func TestApplyFormatAgreement(t *testing.T) {
	t.Parallel()

	labels := blob.Map{
		0, 1, 1, 0,
		1, 0, 0, 1,
	}

	for _, f := range []pixel.Format{
		pixel.FormatIndexed8,
		pixel.FormatRGB24,
		pixel.FormatARGB32,
		pixel.FormatPremulARGB32,
	} {
		t.Run(f.String(), func(t *testing.T) {
			img, err := pixel.New(4, 2, f)
			require.NoError(t, err)
			for i := range img.Pix {
				img.Pix[i] = 0xEE
			}

			require.NoError(t, Apply(img, labels))

			bpp := f.BytesPerPixel()
			for p := 0; p < 8; p++ {
				off := p * bpp
				masked := labels[p] == 0
				for c := 0; c < bpp; c++ {
					got := img.Pix[off+c]
					isAlpha := f.HasAlpha() && c == 3
					switch {
					case isAlpha || !masked:
						assert.Equal(t, byte(0xEE), got, "pixel %d byte %d", p, c)
					default:
						assert.Equal(t, byte(0), got, "pixel %d byte %d", p, c)
					}
				}
			}
		})
	}
}

func TestApplyRejectsBadGeometry(t *testing.T) {
	t.Parallel()

	img, err := pixel.New(3, 2, pixel.FormatIndexed8)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = 123
	}
	before := append([]byte(nil), img.Pix...)

	// Label map one entry short: error and no mutation.
	err = Apply(img, make(blob.Map, 5))
	require.ErrorIs(t, err, pixel.ErrGeometry)
	if diff := cmp.Diff(before, img.Pix); diff != "" {
		t.Errorf("buffer mutated despite geometry error (-want +got):\n%s", diff)
	}

	err = Apply(img, make(blob.Map, 7))
	require.ErrorIs(t, err, pixel.ErrGeometry)

	// Broken image geometry is also refused up front.
	img.Stride = 2
	err = Apply(img, make(blob.Map, 6))
	require.ErrorIs(t, err, pixel.ErrGeometry)
}

func TestApplyRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	img := &pixel.Image{Width: 2, Height: 2, Stride: 2, Format: pixel.Format(42), Pix: make([]byte, 4)}
	err := Apply(img, make(blob.Map, 4))
	require.ErrorIs(t, err, pixel.ErrFormat)
}

func TestApplySkipsStridePadding(t *testing.T) {
	t.Parallel()

	// Two 3-pixel RGB rows padded from 9 to 12 bytes; padding carries a
	// sentinel that must survive the pass.
	const pad = 3
	buf := make([]byte, 12*2)
	for i := range buf {
		buf[i] = 0x55
	}
	for y := 0; y < 2; y++ {
		for i := 0; i < pad; i++ {
			buf[y*12+9+i] = 0xAB
		}
	}
	img, err := pixel.FromBuffer(3, 2, 12, pixel.FormatRGB24, buf)
	require.NoError(t, err)

	// Mask the middle pixel of each row.
	require.NoError(t, Apply(img, blob.Map{1, 0, 1, 2, 0, 2}))

	want := []byte{
		0x55, 0x55, 0x55, 0, 0, 0, 0x55, 0x55, 0x55, 0xAB, 0xAB, 0xAB,
		0x55, 0x55, 0x55, 0, 0, 0, 0x55, 0x55, 0x55, 0xAB, 0xAB, 0xAB,
	}
	if diff := cmp.Diff(want, buf); diff != "" {
		t.Errorf("padded buffer mismatch (-want +got):\n%s", diff)
	}
}

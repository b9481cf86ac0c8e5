package blob

import (
	"image"

	"blobsieve/internal/pixel"
)

// Map is a per-pixel label array, row-major, one entry per pixel
// regardless of pixel byte width.
type Map []int32

// Blob describes one connected region found by Label.
type Blob struct {
	ID     int32
	Bounds image.Rectangle
	Area   int
}

// Result carries the labeler output for one image. Labels and Blobs are
// owned by the caller; Label retains nothing between calls.
type Result struct {
	Labels  Map
	Blobs   []Blob
	Removed int // regions erased by the size filter
}

// Label scans img for 8-connected foreground regions and returns a label
// map plus per-blob geometry. With cfg.FilterBySize set, blobs outside
// the size bounds are erased from the map and omitted from Blobs;
// surviving blobs keep their scan-order ids. The image is never written.
func Label(img *pixel.Image, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := img.CheckGeometry(); err != nil {
		return Result{}, err
	}

	w, h := img.Width, img.Height
	labels := make(Map, w*h)
	fg := foregroundMask(img, cfg.Threshold)

	var blobs []Blob
	next := int32(1)

	// 8-connected BFS flood fill, tracking the bounding box per region.
	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !fg[idx] || labels[idx] != 0 {
				continue
			}

			queue = queue[:0]
			queue = append(queue, idx)
			labels[idx] = next
			minX, maxX := x, x
			minY, maxY := y, y
			area := 0

			for len(queue) > 0 {
				curr := queue[0]
				queue = queue[1:]
				area++

				cy := curr / w
				cx := curr % w
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}

				for d := 0; d < 8; d++ {
					nx := cx + dx[d]
					ny := cy + dy[d]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if fg[ni] && labels[ni] == 0 {
						labels[ni] = next
						queue = append(queue, ni)
					}
				}
			}

			blobs = append(blobs, Blob{
				ID:     next,
				Bounds: image.Rect(minX, minY, maxX+1, maxY+1),
				Area:   area,
			})
			next++
		}
	}

	res := Result{Labels: labels, Blobs: blobs}
	if cfg.FilterBySize {
		res.Blobs, res.Removed = applySizeFilter(labels, blobs, cfg)
	}
	return res, nil
}

// applySizeFilter erases rejected blobs from the map and drops them from
// the slice. Ids are assigned sequentially from 1, so a slice indexed by
// id serves as the reject set.
func applySizeFilter(labels Map, blobs []Blob, cfg Config) ([]Blob, int) {
	removed := make([]bool, len(blobs)+1)
	count := 0
	kept := blobs[:0]
	for _, b := range blobs {
		if cfg.Accepts(b.Bounds.Dx(), b.Bounds.Dy()) {
			kept = append(kept, b)
			continue
		}
		removed[b.ID] = true
		count++
	}
	if count == 0 {
		return kept, 0
	}
	for i, id := range labels {
		if id != 0 && removed[id] {
			labels[i] = 0
		}
	}
	return kept, count
}

// foregroundMask flags pixels whose color content exceeds the background
// threshold. Alpha is ignored for the 32-bit formats; the filter
// operates on color, not coverage.
func foregroundMask(img *pixel.Image, threshold uint8) []bool {
	w, h := img.Width, img.Height
	fg := make([]bool, w*h)
	bpp := img.Format.BytesPerPixel()

	if bpp == 1 {
		for y := 0; y < h; y++ {
			row := img.Row(y)
			for x := 0; x < w; x++ {
				fg[y*w+x] = row[x] > threshold
			}
		}
		return fg
	}

	for y := 0; y < h; y++ {
		row := img.Row(y)
		for x := 0; x < w; x++ {
			off := x * bpp
			if row[off] > threshold || row[off+1] > threshold || row[off+2] > threshold {
				fg[y*w+x] = true
			}
		}
	}
	return fg
}

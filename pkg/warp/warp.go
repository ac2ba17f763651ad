// Package warp resamples a source raster through a projective mapping.
package warp

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/Faultbox/cubyot/pkg/homography"
)

// EdgeMode selects what a destination pixel receives when its mapped source
// position falls outside the source raster.
type EdgeMode int

const (
	// EdgeClamp reads the nearest source pixel on the border.
	EdgeClamp EdgeMode = iota
	// EdgeTransparent writes (0, 0, 0, 0).
	EdgeTransparent
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "clamp"
	case EdgeTransparent:
		return "transparent"
	}
	return fmt.Sprintf("EdgeMode(%d)", int(m))
}

// ParseEdgeMode parses "clamp" or "transparent" (case-insensitive).
// An empty string selects EdgeClamp.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return EdgeClamp, nil
	case "transparent":
		return EdgeTransparent, nil
	}
	return EdgeClamp, fmt.Errorf("unknown edge mode %q", s)
}

// Resample produces a raster the size of src where each pixel (x, y) copies
// the source sample at round(c(x, y)). In-range samples are written fully
// opaque.
func Resample(c homography.Coefficients, src *image.RGBA, mode EdgeMode) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	for y := 0; y < h; y++ {
		fy := float64(y)
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			d := row[x*4 : x*4+4 : x*4+4]
			sx, sy, ok := sourceIndex(c, float64(x), fy, w, h, mode)
			if !ok {
				d[0], d[1], d[2], d[3] = 0, 0, 0, 0
				continue
			}
			i := src.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			d[0] = src.Pix[i]
			d[1] = src.Pix[i+1]
			d[2] = src.Pix[i+2]
			d[3] = 0xff
		}
	}
	return dst
}

// sourceIndex maps a destination pixel to a source pixel index relative to
// the source bounds. ok is false when the sample must be left transparent.
func sourceIndex(c homography.Coefficients, x, y float64, w, h int, mode EdgeMode) (int, int, bool) {
	ox, oy, ok := c.Apply(x, y)
	if !ok || math.IsNaN(ox) || math.IsNaN(oy) {
		if mode == EdgeTransparent {
			return 0, 0, false
		}
		// No meaningful direction to clamp along; use the origin pixel.
		return 0, 0, true
	}
	sx := roundIndex(ox)
	sy := roundIndex(oy)
	inside := sx >= 0 && sx < w && sy >= 0 && sy < h
	if inside {
		return sx, sy, true
	}
	if mode == EdgeTransparent {
		return 0, 0, false
	}
	return clampInt(sx, 0, w-1), clampInt(sy, 0, h-1), true
}

// roundIndex rounds half up and saturates to the int32 range.
func roundIndex(v float64) int {
	r := math.Floor(v + 0.5)
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	if r < math.MinInt32 {
		return math.MinInt32
	}
	return int(r)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

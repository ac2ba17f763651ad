// Package texture decodes uploaded photographs into RGBA rasters ready for
// face texture warping.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	"github.com/anthonynsimon/bild/clone"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// ErrUnsupportedFileType is returned when uploaded bytes cannot be decoded as
// an image.
var ErrUnsupportedFileType = errors.New("texture: unsupported file type")

// Decode decodes data into an RGBA raster whose bounds start at (0, 0).
// It returns the detected format name.
func Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty upload: %w", ErrUnsupportedFileType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		tga, tgaErr := DecodeTGA(data)
		if tgaErr != nil {
			return nil, "", fmt.Errorf("%v: %w", err, ErrUnsupportedFileType)
		}
		img, format = tga, "tga"
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, format, fmt.Errorf("%s image has no pixels: %w", format, ErrUnsupportedFileType)
	}
	rgba := clone.AsRGBA(img)
	rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	return rgba, format, nil
}

// Fit returns img scaled down so its longest side is at most maxSide,
// preserving aspect. img is returned unchanged when it already fits or when
// maxSide is not positive.
func Fit(img *image.RGBA, maxSide int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = max(1, h*maxSide/w)
	} else {
		nw = max(1, w*maxSide/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

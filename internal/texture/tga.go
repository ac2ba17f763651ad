package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTypeTrueColor    = 2
	tgaTypeTrueColorRLE = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes uncompressed or RLE true-color TGA data with 24 or 32
// bits per pixel. TGA carries no magic number, so the header is validated
// strictly before any pixel is read.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaTypeTrueColor && imageType != tgaTypeTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.New("tga: empty image")
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	payload := data[offset:]
	bytesPerPix := bpp / 8
	if width*height > maxTGAPixels(imageType, len(payload), bytesPerPix) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        payload,
		bytesPerPix: bytesPerPix,
		topToBottom: topToBottom,
	}
	var err error
	if imageType == tgaTypeTrueColor {
		err = r.readRaw(width * height)
	} else {
		err = r.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

// tgaRunLength is the longest run a single RLE packet can encode.
const tgaRunLength = 128

// maxTGAPixels returns how many pixels payloadLen bytes can describe at most.
// The header is checked against it before the raster is allocated.
func maxTGAPixels(imageType byte, payloadLen, bytesPerPix int) int {
	if imageType == tgaTypeTrueColor {
		return payloadLen / bytesPerPix
	}
	packets := (payloadLen + bytesPerPix) / (1 + bytesPerPix)
	return packets * tgaRunLength
}

type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	pixel       int
	bytesPerPix int
	topToBottom bool
}

// next reads one BGR(A) pixel.
func (r *tgaReader) next() (color.RGBA, error) {
	if r.pos+r.bytesPerPix > len(r.data) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.data[r.pos : r.pos+r.bytesPerPix]
	r.pos += r.bytesPerPix
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	if r.bytesPerPix == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the current pixel in file order and advances.
func (r *tgaReader) put(c color.RGBA) {
	w := r.img.Rect.Dx()
	h := r.img.Rect.Dy()
	x, y := r.pixel%w, r.pixel/w
	if !r.topToBottom {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}

func (r *tgaReader) total() int {
	return r.img.Rect.Dx() * r.img.Rect.Dy()
}

func (r *tgaReader) readRaw(count int) error {
	for i := 0; i < count && r.pixel < r.total(); i++ {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) readRLE() error {
	for r.pixel < r.total() {
		if r.pos >= len(r.data) {
			return errTGATruncated
		}
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 == 0 {
			if err := r.readRaw(count); err != nil {
				return err
			}
			continue
		}
		c, err := r.next()
		if err != nil {
			return err
		}
		for i := 0; i < count && r.pixel < r.total(); i++ {
			r.put(c)
		}
	}
	return nil
}

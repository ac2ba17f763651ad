package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 200, G: 20, B: 20, A: 255}
			if (x+y)%2 == 1 {
				c = color.RGBA{R: 20, G: 20, B: 200, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodePNG(t *testing.T) {
	src := checker(5, 3)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Error("decoded pixels differ from source")
	}
}

func TestDecodeBMP(t *testing.T) {
	src := checker(4, 4)
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "bmp" {
		t.Errorf("format = %q, want bmp", format)
	}
	if got, want := img.RGBAAt(1, 0), src.RGBAAt(1, 0); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, top-to-bottom, 24 bpp: red then green (stored BGR).
	data := append(tgaHeader(tgaTypeTrueColor, 2, 1, 24, 0x20), 0, 0, 255, 0, 255, 0)
	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel 1 = %v, want green", got)
	}
}

func TestDecodeTGARLEBottomUp(t *testing.T) {
	// 1x2, bottom-to-top, 32 bpp. One run of two blue pixels.
	data := append(tgaHeader(tgaTypeTrueColorRLE, 1, 2, 32, 0), 0x81, 255, 0, 0, 128)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA() error = %v", err)
	}
	want := color.RGBA{B: 255, A: 128}
	for y := 0; y < 2; y++ {
		if got := img.RGBAAt(0, y); got != want {
			t.Errorf("pixel (0,%d) = %v, want %v", y, got, want)
		}
	}
}

func TestDecodeTGATruncated(t *testing.T) {
	data := append(tgaHeader(tgaTypeTrueColor, 2, 2, 24, 0), 1, 2, 3)
	if _, err := DecodeTGA(data); err == nil {
		t.Error("expected truncation error")
	}
}

func TestDecodeUnsupported(t *testing.T) {
	tests := map[string][]byte{
		"empty":   nil,
		"text":    []byte("this is definitely not an image file"),
		"partial": {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode(data)
			if !errors.Is(err, ErrUnsupportedFileType) {
				t.Errorf("Decode() error = %v, want ErrUnsupportedFileType", err)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"already fits", 100, 50, 200, 100, 50},
		{"disabled", 4000, 3000, 0, 4000, 3000},
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 300, 900, 300, 100, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(checker(tt.w, tt.h), tt.max)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("Fit() = %v, want %dx%d", got.Bounds(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDecodeTGARejectsOversizedHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"raw", append(tgaHeader(tgaTypeTrueColor, 65535, 65535, 24, 0), 1, 2, 3)},
		{"rle", append(tgaHeader(tgaTypeTrueColorRLE, 65535, 65535, 32, 0), 0xff, 1, 2, 3, 4)},
		{"raw short by one pixel", append(tgaHeader(tgaTypeTrueColor, 2, 1, 24, 0), 1, 2, 3, 4, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); !errors.Is(err, errTGATruncated) {
				t.Errorf("DecodeTGA() error = %v, want truncation", err)
			}
			if _, _, err := Decode(tt.data); !errors.Is(err, ErrUnsupportedFileType) {
				t.Errorf("Decode() error = %v, want ErrUnsupportedFileType", err)
			}
		})
	}
}

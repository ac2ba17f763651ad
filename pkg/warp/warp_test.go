package warp

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/Faultbox/cubyot/pkg/homography"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func mustSolve(t *testing.T, from, to homography.Quad) homography.Coefficients {
	t.Helper()
	c, err := homography.Solve(from, to)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	return c
}

func TestResampleRedSquareScenario(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := solid(4, 4, red)
	quad := homography.Quad{0, 4, 4, 4, 4, 0, 0, 0}
	dst := Resample(mustSolve(t, quad, quad), src, EdgeClamp)

	if dst.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", dst.Bounds(), src.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := dst.RGBAAt(x, y); got != red {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

func TestResampleIdentityIsPixelExact(t *testing.T) {
	src := gradient(13, 9)
	q := homography.Rect(13, 9)
	for _, mode := range []EdgeMode{EdgeClamp, EdgeTransparent} {
		dst := Resample(mustSolve(t, q, q), src, mode)
		if string(dst.Pix) != string(src.Pix) {
			t.Errorf("%v: identity resample changed pixels", mode)
		}
	}
}

func TestResampleUniformStaysUniform(t *testing.T) {
	c := color.RGBA{R: 10, G: 200, B: 30, A: 255}
	src := solid(32, 24, c)
	mappings := []homography.Quad{
		{3, 20, 30, 23, 28, 1, 0, 4},
		{32, 24, 32, 0, 0, 0, 0, 24},
		{-10, 40, 50, 30, 40, -5, -3, -8},
	}
	for i, to := range mappings {
		dst := Resample(mustSolve(t, homography.Rect(32, 24), to), src, EdgeClamp)
		for y := 0; y < 24; y++ {
			for x := 0; x < 32; x++ {
				if got := dst.RGBAAt(x, y); got != c {
					t.Fatalf("mapping %d: pixel (%d,%d) = %v, want %v", i, x, y, got, c)
				}
			}
		}
	}
}

func TestResampleForcesOpaque(t *testing.T) {
	src := solid(4, 4, color.RGBA{R: 40, G: 50, B: 60, A: 10})
	q := homography.Rect(4, 4)
	dst := Resample(mustSolve(t, q, q), src, EdgeClamp)
	if got := dst.RGBAAt(2, 2); got.A != 255 || got.R != 40 {
		t.Errorf("pixel = %v, want rgb kept with alpha 255", got)
	}
}

func TestResampleOutOfRange(t *testing.T) {
	src := gradient(8, 8)
	// Destination (x, y) samples source (x+6, y): columns 2.. fall off the right edge.
	shift := homography.Coefficients{1, 0, 6, 0, 1, 0, 0, 0}

	clamped := Resample(shift, src, EdgeClamp)
	if got, want := clamped.RGBAAt(5, 3), src.RGBAAt(7, 3); got != want {
		t.Errorf("clamp: pixel = %v, want edge pixel %v", got, want)
	}
	if got, want := clamped.RGBAAt(1, 3), src.RGBAAt(7, 3); got != want {
		t.Errorf("clamp: in-range pixel = %v, want %v", got, want)
	}

	transparent := Resample(shift, src, EdgeTransparent)
	if got := transparent.RGBAAt(5, 3); got != (color.RGBA{}) {
		t.Errorf("transparent: pixel = %v, want zero", got)
	}
	if got, want := transparent.RGBAAt(0, 3), src.RGBAAt(6, 3); got != want {
		t.Errorf("transparent: in-range pixel = %v, want %v", got, want)
	}
}

func TestResampleNegativeIndices(t *testing.T) {
	src := gradient(4, 4)
	shift := homography.Coefficients{1, 0, -3, 0, 1, -3, 0, 0}
	dst := Resample(shift, src, EdgeClamp)
	if got, want := dst.RGBAAt(0, 0), src.RGBAAt(0, 0); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if got, want := dst.RGBAAt(3, 3), src.RGBAAt(0, 0); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestResampleSubImageBounds(t *testing.T) {
	full := gradient(10, 10)
	sub := full.SubImage(image.Rect(2, 3, 6, 7)).(*image.RGBA)
	q := homography.Rect(4, 4)
	dst := Resample(mustSolve(t, q, q), sub, EdgeClamp)
	if got, want := dst.RGBAAt(0, 0), full.RGBAAt(2, 3); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestParseEdgeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    EdgeMode
		wantErr bool
	}{
		{"", EdgeClamp, false},
		{"clamp", EdgeClamp, false},
		{"Transparent", EdgeTransparent, false},
		{"wrap", EdgeClamp, true},
	}
	for _, tt := range tests {
		got, err := ParseEdgeMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseEdgeMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

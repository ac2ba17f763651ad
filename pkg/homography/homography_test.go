package homography

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-6

func checkMapping(t *testing.T, c Coefficients, from, to Quad) {
	t.Helper()
	for i := 0; i < 4; i++ {
		x, y := from.Point(i)
		wantX, wantY := to.Point(i)
		gotX, gotY, ok := c.Apply(x, y)
		if !ok {
			t.Fatalf("corner %d: denominator vanished", i)
		}
		if math.Abs(gotX-wantX) > tolerance || math.Abs(gotY-wantY) > tolerance {
			t.Errorf("corner %d: (%v,%v) -> (%v,%v), want (%v,%v)", i, x, y, gotX, gotY, wantX, wantY)
		}
	}
}

func TestSolveSatisfiesCorrespondences(t *testing.T) {
	tests := []struct {
		name     string
		from, to Quad
	}{
		{"identity square", Rect(4, 4), Rect(4, 4)},
		{"scale", Rect(4, 4), Rect(640, 480)},
		{"rotated order", Rect(100, 50), Quad{100, 50, 100, 0, 0, 0, 0, 50}},
		{"perspective", Rect(512, 512), Quad{30, 480, 500, 510, 420, 40, 70, 10}},
		{"skewed both", Quad{10, 20, 300, 5, 280, 260, 0, 240}, Quad{-5, 3, 7, 2, 9, 11, -4, 8}},
		{"tiny image", Rect(1, 1), Quad{0.1, 0.9, 0.95, 0.8, 0.9, 0.05, 0.05, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Solve(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			checkMapping(t, c, tt.from, tt.to)
		})
	}
}

func TestSolveIdentityCoefficients(t *testing.T) {
	c, err := Solve(Rect(4, 4), Rect(4, 4))
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	want := Identity()
	for i := range c {
		if math.Abs(c[i]-want[i]) > 1e-12 {
			t.Errorf("coefficient %d = %v, want %v", i, c[i], want[i])
		}
	}
}

func TestSolveDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		from, to Quad
	}{
		{"collinear source", Quad{0, 0, 1, 1, 2, 2, 0, 5}, Rect(4, 4)},
		{"collinear destination", Rect(4, 4), Quad{0, 0, 4, 0, 8, 0, 2, 3}},
		{"all points equal", Quad{1, 1, 1, 1, 1, 1, 1, 1}, Rect(4, 4)},
		{"duplicate corner", Quad{0, 0, 0, 0, 4, 4, 0, 4}, Rect(4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.from, tt.to)
			if !errors.Is(err, ErrDegenerateCorrespondence) {
				t.Errorf("Solve() error = %v, want ErrDegenerateCorrespondence", err)
			}
		})
	}
}

func TestApplyZeroDenominator(t *testing.T) {
	c := Coefficients{1, 0, 0, 0, 1, 0, -1, 0}
	if _, _, ok := c.Apply(1, 0); ok {
		t.Error("expected ok=false when g*x + h*y + 1 == 0")
	}
}

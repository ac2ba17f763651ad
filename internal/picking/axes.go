package picking

import "github.com/Faultbox/cubyot/pkg/math"

// faceKey identifies an axis-aligned face normal.
type faceKey struct {
	axis math.Axis
	sign int
}

// axisMapping says which world axes drive the image's pixel X and pixel Y
// on a face. A flipped axis puts pixel 0 at the box maximum.
type axisMapping struct {
	u, v         math.Axis
	uFlip, vFlip bool
}

var axisMappings = map[faceKey]axisMapping{
	{math.AxisX, 1}:  {u: math.AxisZ, uFlip: true, v: math.AxisY, vFlip: true},
	{math.AxisX, -1}: {u: math.AxisZ, uFlip: false, v: math.AxisY, vFlip: true},
	{math.AxisY, 1}:  {u: math.AxisZ, uFlip: true, v: math.AxisX, vFlip: false},
	{math.AxisY, -1}: {u: math.AxisZ, uFlip: true, v: math.AxisX, vFlip: true},
	{math.AxisZ, 1}:  {u: math.AxisX, uFlip: false, v: math.AxisY, vFlip: true},
	{math.AxisZ, -1}: {u: math.AxisX, uFlip: true, v: math.AxisY, vFlip: true},
}

func mappingFor(normal math.Vec3) (faceKey, axisMapping) {
	axis, sign := normal.DominantAxis()
	key := faceKey{axis, sign}
	return key, axisMappings[key]
}

// toPixel rescales coordinate p within [lo, hi] onto [0, size].
func toPixel(p, lo, hi float32, size int, flip bool) float64 {
	frac := float64((p - lo) / (hi - lo))
	if flip {
		frac = 1 - frac
	}
	return frac * float64(size)
}

// fromPixel is the inverse of toPixel.
func fromPixel(px float64, lo, hi float32, size int, flip bool) float32 {
	frac := px / float64(size)
	if flip {
		frac = 1 - frac
	}
	return float32(1-frac)*lo + float32(frac)*hi
}

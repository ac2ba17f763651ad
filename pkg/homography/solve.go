package homography

import "math"

// solveAugmented solves the 8x8 system stored as an augmented matrix using
// Gauss-Jordan elimination with scaled partial pivoting. It reports false
// when the system is singular or too close to singular to trust.
func solveAugmented(m [8][9]float64) ([8]float64, bool) {
	var scale [8]float64
	for r := range m {
		for c := 0; c < 8; c++ {
			scale[r] = math.Max(scale[r], math.Abs(m[r][c]))
		}
		if scale[r] == 0 {
			return [8]float64{}, false
		}
	}

	for col := 0; col < 8; col++ {
		pivot := -1
		best := 0.0
		for r := col; r < 8; r++ {
			if v := math.Abs(m[r][col]) / scale[r]; v > best {
				best, pivot = v, r
			}
		}
		if pivot < 0 || best < pivotTolerance {
			return [8]float64{}, false
		}
		if pivot != col {
			m[col], m[pivot] = m[pivot], m[col]
			scale[col], scale[pivot] = scale[pivot], scale[col]
		}

		div := m[col][col]
		for c := col; c < 9; c++ {
			m[col][c] /= div
		}
		for r := 0; r < 8; r++ {
			if r == col || m[r][col] == 0 {
				continue
			}
			factor := m[r][col]
			for c := col; c < 9; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	var x [8]float64
	for r := range x {
		x[r] = m[r][8]
	}
	return x, true
}

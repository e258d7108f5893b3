// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp returns the point at fraction x (0 <= x <= 1) of the way from a to b.
func Lerp(a, b, x float32) float32 {
	return a + (b-a)*x
}

// CubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1), y0 and y3 are
// the neighbours used to shape the tangents.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// Package utils provides shared utility functions.
package utils

import (
	"math"
)

// Normalize360 normalizes an angle in degrees to [0, 360).
func Normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Separation returns the shorter-arc angular distance between two
// longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize360(a) - Normalize360(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

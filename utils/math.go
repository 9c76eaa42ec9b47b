// Package utils contains small numeric and concurrency helpers shared by the skeleton packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// utils/math.go
package utils

import "math"

const Epsilon = 1e-9

// FloatEquals compares two floating-point numbers for near-equality.
func FloatEquals(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// RoundToPrecision rounds a float64 to a specified number of decimal places.
func RoundToPrecision(value float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(value*pow) / pow
}

// TruncateContracts converts a fractional contract count into whole contracts,
// truncating toward zero. Hedge sizing must never round up.
func TruncateContracts(qty float64) int {
	return int(math.Trunc(qty))
}

// WithinBand reports whether value lies within band (a fraction, e.g. 0.05)
// of target. A zero or negative target never matches.
func WithinBand(value, target, band float64) bool {
	if target <= 0 {
		return false
	}
	return math.Abs(value-target) <= target*band
}

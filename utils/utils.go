package utils

import (
	"math"
	"strconv"
)

// Round rounds to the nearest integer with half-way cases going towards positive infinity,
// so -2.5 becomes -2 and 2.5 becomes 3.
func Round(f float64) float64 {
	return math.Floor(f + 0.5)
}

// FormatNumber renders f without a trailing ".0" for whole numbers.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Percent returns part as a percentage of whole, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part * 100 / whole
}

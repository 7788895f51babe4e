// Package helpers provides clamped integer conversions.
//
// Wire fields are fixed-width (uint8, uint16) while lengths, counts and
// database columns are int. These helpers convert between them without
// silent wraparound: out-of-range values pin to the nearest bound.
package helpers

import (
	"cmp"
	"math"
)

// Clamp restricts v to the range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	return Clamp(v, lowerLimit, upperLimit)
}

// ClampIntToUint16 converts v to uint16.
// Values below 0 become 0; values above math.MaxUint16 become math.MaxUint16.
func ClampIntToUint16(v int) uint16 {
	return uint16(Clamp(v, 0, math.MaxUint16)) //nolint:gosec // clamped to valid range
}

// ClampUint32ToUint8 converts v to uint8.
// Values above math.MaxUint8 become math.MaxUint8.
func ClampUint32ToUint8(v uint32) uint8 {
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

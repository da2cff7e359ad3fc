// Package safe converts signed wire integers into the unsigned domain types
// with explicit range checks, so malformed explorer payloads surface as
// errors instead of wrapping around.
package safe

import (
	"fmt"
	"math"
)

// Uint64 rejects negative values before widening to uint64.
func Uint64[T ~int | ~int32 | ~int64](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Uint32 rejects values outside the uint32 range.
func Uint32[T ~int | ~int32 | ~int64](v T) (uint32, error) {
	if v < 0 || int64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

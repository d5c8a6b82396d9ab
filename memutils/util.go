package memutils

import (
	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Number is any integer type that offsets, sizes and alignments are expressed in
type Number interface {
	constraints.Integer
}

func CheckPow2[T Number](number T, name string) error {
	if number <= 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment, which must be a power of two
func AlignUp[T Number](value T, alignment T) T {
	return (value + alignment - 1) &^ (alignment - 1)
}

// AlignDown rounds value down to the previous multiple of alignment, which must be a power of two
func AlignDown[T Number](value T, alignment T) T {
	return value &^ (alignment - 1)
}

// RangesOverlap returns true if the half-open byte ranges [offsetA, offsetA+sizeA) and
// [offsetB, offsetB+sizeB) share at least one byte
func RangesOverlap[T Number](offsetA, sizeA, offsetB, sizeB T) bool {
	return offsetA < offsetB+sizeB && offsetB < offsetA+sizeA
}

// Package utils implements generic helper functions shared across the library.
package utils

import (
	"golang.org/x/exp/constraints"
)

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64(index uint64, bitLen int) uint64 {
	var result uint64
	for i := 0; i < bitLen; i++ {
		result <<= 1
		result |= index & 1
		index >>= 1
	}
	return result
}

// EqualSlice checks the equality between two slices of comparable scalars.
func EqualSlice[T constraints.Integer](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsPowerOfTwo returns true if x is a power of two, else false.
func IsPowerOfTwo[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

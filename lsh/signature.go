package lsh

import (
	"errors"
	"fmt"
)

var (
	// ErrSignatureLengthMismatch is returned when comparing signatures of different length
	ErrSignatureLengthMismatch = errors.New("signatures have different length")
)

func newSignature(bits []bool) Signature {
	b := make([]byte, len(bits))
	for i, bit := range bits {
		b[i] = '0'
		if bit {
			b[i] = '1'
		}
	}
	return Signature(b)
}

// Len returns number of bits in signature
func (s Signature) Len() int {
	return len(s)
}

// Prefix returns first n bits of the signature
func (s Signature) Prefix(n int) string {
	if n >= len(s) {
		return string(s)
	}
	if n < 0 {
		n = 0
	}
	return string(s[:n])
}

// Hamming counts the number of differing bits
func (s Signature) Hamming(other Signature) (int, error) {
	if len(s) != len(other) {
		return -1, fmt.Errorf("%w: %d and %d", ErrSignatureLengthMismatch, len(s), len(other))
	}
	dist := 0
	for i := 0; i < len(s); i++ {
		if s[i] != other[i] {
			dist++
		}
	}
	return dist, nil
}

package ecc

import (
	"fmt"
	"math/big"
)

// Mod returns a mod m as a new non-negative integer in [0, m-1].
func Mod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}

// ModInverse returns the multiplicative inverse of a modulo m.
//
// Args:
//   - a: Value to invert (any sign, reduced modulo m first)
//   - m: Positive modulus
//
// Returns:
//   - a^-1 mod m, or an ErrInvalidOperand error when a is 0 mod m or shares a
//     factor with m
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, makeError(ErrInvalidOperand, "modulus must be positive")
	}
	reduced := new(big.Int).Mod(a, m)
	if reduced.Sign() == 0 {
		str := fmt.Sprintf("cannot invert 0 modulo %s", m.Text(10))
		return nil, makeError(ErrInvalidOperand, str)
	}
	inv := new(big.Int).ModInverse(reduced, m)
	if inv == nil {
		str := fmt.Sprintf("%s has no inverse modulo %s", reduced.Text(10), m.Text(10))
		return nil, makeError(ErrInvalidOperand, str)
	}
	return inv, nil
}

// byteLen returns the number of bytes needed to hold an integer of the same
// bit length as n.
func byteLen(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

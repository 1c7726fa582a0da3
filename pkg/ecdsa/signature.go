package ecdsa

import (
	"fmt"
	"math/big"
)

// Signature is an ECDSA signature (r, s) with both components in [1, n-1].
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignature returns a signature holding copies of r and s.
func NewSignature(r, s *big.Int) *Signature {
	return &Signature{R: new(big.Int).Set(r), S: new(big.Int).Set(s)}
}

// Malleate returns the second valid signature for the same message,
// (r, (n - s) mod n).  ECDSA accepts both.
func (sig *Signature) Malleate(n *big.Int) *Signature {
	s := new(big.Int).Sub(n, sig.S)
	s.Mod(s, n)
	return &Signature{R: new(big.Int).Set(sig.R), S: s}
}

// IsEqual reports whether two signatures have the same components.
func (sig *Signature) IsEqual(other *Signature) bool {
	return sig.R.Cmp(other.R) == 0 && sig.S.Cmp(other.S) == 0
}

// String returns the signature as "(r, s)" in decimal.
func (sig *Signature) String() string {
	return fmt.Sprintf("(%s, %s)", sig.R.Text(10), sig.S.Text(10))
}

package ecdsa

import (
	"math/big"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// Verify reports whether sig is a valid signature of the digest z under the
// public point q.  It never fails: malformed signatures and keys, and any
// arithmetic failure, simply yield false.
//
// Both (r, s) and (r, n-s) verify for the same message.
func Verify(curve *ecc.Curve, z *big.Int, sig *Signature, q ecc.Point) bool {
	if sig == nil || sig.R == nil || sig.S == nil || z == nil {
		return false
	}
	if q.IsInfinity() || !curve.IsOnCurve(q) {
		return false
	}

	n := curve.N()
	if !inRange(sig.R, n) || !inRange(sig.S, n) {
		return false
	}

	// w = s⁻¹ mod n
	w, err := ecc.ModInverse(sig.S, n)
	if err != nil {
		return false
	}

	// u1 = zw mod n, u2 = rw mod n
	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, n)

	// X = u1G + u2Q
	p1, err := curve.ScalarBaseMult(u1)
	if err != nil {
		return false
	}
	p2, err := curve.ScalarMult(u2, q)
	if err != nil {
		return false
	}
	x, err := curve.Add(p1, p2)
	if err != nil {
		return false
	}

	xx, _, ok := x.Coordinates()
	if !ok {
		return false
	}
	return xx.Mod(xx, n).Cmp(sig.R) == 0
}

// inRange reports whether 1 <= v < n.
func inRange(v, n *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(n) < 0
}

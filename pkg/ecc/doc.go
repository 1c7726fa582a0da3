// Package ecc implements affine elliptic curve arithmetic over prime fields
// with math/big: modular inverse, point addition and doubling, double-and-add
// scalar multiplication, key pair generation and SHA-256 message digests.
//
// It is a teaching and analysis library.  Arithmetic is not constant time and
// curve parameters are trusted as given.
//
// # Curves and Points
//
// A Curve holds the parameters p, a, b, G and n and is never mutated after
// construction.  A Point is a plain value: either the point at infinity or an
// affine (x, y) pair.  Points do not remember their curve, so every operation
// is a method on the Curve:
//
//	curve, err := ecc.NewCurve("toy", big.NewInt(23), big.NewInt(1), big.NewInt(1),
//	    big.NewInt(17), big.NewInt(3), big.NewInt(7))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p2, err := curve.Double(curve.G())
//	q, err := curve.ScalarMult(big.NewInt(7), curve.G()) // Infinity
//
// Named presets are available through Secp256k1, P256 and FromName.
//
// # Keys
//
//	kp, err := ecc.GenerateKey(ecc.Secp256k1(), nil) // crypto/rand
//	z := ecc.HashMessage(ecc.Secp256k1(), []byte("hello"))
//
// # Errors
//
// Errors are of type Error wrapping an ErrorKind, so callers can test them
// with errors.Is(err, ecc.ErrInvalidOperand).
package ecc

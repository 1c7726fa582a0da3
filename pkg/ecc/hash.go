package ecc

import (
	"crypto/sha256"
	"math/big"
)

// HashMessage hashes a message using SHA-256 and returns it as an integer mod n.
func HashMessage(c *Curve, message []byte) *big.Int {
	h := sha256.Sum256(message)
	return HashToInt(c, h[:])
}

// HashToInt interprets a digest as a big-endian integer reduced modulo n.
func HashToInt(c *Curve, hash []byte) *big.Int {
	z := new(big.Int).SetBytes(hash)
	return z.Mod(z, c.n)
}

// ScalarBytes returns v as a big-endian byte string padded to the byte
// length of the group order.
func ScalarBytes(c *Curve, v *big.Int) []byte {
	return v.FillBytes(make([]byte, byteLen(c.n)))
}

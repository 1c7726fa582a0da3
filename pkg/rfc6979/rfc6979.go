// Package rfc6979 derives deterministic ECDSA nonces from a private scalar and
// a message digest using the HMAC-SHA256 DRBG of RFC 6979 section 3.2.
//
// The generator never consults an external randomness source: the same
// (digest, d, n) always yields the same sequence of nonces.
//
// Usage:
//
//	hash := sha256.Sum256(msg)
//	k := rfc6979.Nonce(hash[:], d, curve.N())
//
// Callers that need further candidates, for example when a nonce leads to a
// degenerate signature, keep the Generator and call Next again.
package rfc6979

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

var (
	// singleZero is used during the RFC6979 nonce generation.  It is provided
	// here to avoid the need to create it multiple times.
	singleZero = []byte{0x00}

	// singleOne is used during the RFC6979 nonce generation.  It is provided
	// here to avoid the need to create it multiple times.
	singleOne = []byte{0x01}
)

// Generator is the HMAC_DRBG state of a single nonce derivation.  It is not
// safe for concurrent use.
type Generator struct {
	n     *big.Int
	rlen  int
	k     []byte
	v     []byte
	fresh bool
}

// Nonce returns the first RFC 6979 nonce for the private scalar d and the
// message digest hash under the group order n.
func Nonce(hash []byte, d, n *big.Int) *big.Int {
	return NewGenerator(d, hash, n).Next()
}

// NewGenerator seeds a generator with the private scalar d and the raw
// message digest.  A digest longer than the bit length of n is truncated to
// its leftmost bits before being reduced modulo n.
//
// Args:
//   - d: Private scalar in [1, n-1]
//   - hash: Message digest bytes (typically SHA-256)
//   - n: Group order
//
// Returns:
//   - A generator whose first Next call runs the RFC 6979 output loop
func NewGenerator(d *big.Int, hash []byte, n *big.Int) *Generator {
	return newGenerator(d, bits2octets(hash, n), n)
}

// NewGeneratorFromDigest seeds a generator from a digest that has already
// been converted to an integer.  z is reduced modulo n and encoded to the
// byte length of n.  For 256-bit orders this matches NewGenerator on the
// SHA-256 digest z was taken from.
func NewGeneratorFromDigest(d, z *big.Int, n *big.Int) *Generator {
	zr := new(big.Int).Mod(z, n)
	return newGenerator(d, int2octets(zr, byteLen(n)), n)
}

func newGenerator(d *big.Int, digest []byte, n *big.Int) *Generator {
	rlen := byteLen(n)
	privKey := int2octets(d, rlen)

	// Step B: V = 0x01 0x01 0x01 ... 0x01 such that the length of V, in bits,
	// is equal to 8*ceil(hlen/8).
	v := bytes.Repeat(singleOne, sha256.Size)

	// Step C: K = 0x00 0x00 0x00 ... 0x00 such that the length of K, in bits,
	// is equal to 8*ceil(hlen/8).
	k := make([]byte, sha256.Size)

	g := &Generator{
		n:     new(big.Int).Set(n),
		rlen:  rlen,
		k:     k,
		v:     v,
		fresh: true,
	}

	// Step D: K = HMAC_K(V || 0x00 || int2octets(x) || bits2octets(h1))
	// Step E: V = HMAC_K(V)
	g.k = hmacSum(g.k, g.v, singleZero, privKey, digest)
	g.v = hmacSum(g.k, g.v)

	// Step F: K = HMAC_K(V || 0x01 || int2octets(x) || bits2octets(h1))
	// Step G: V = HMAC_K(V)
	g.k = hmacSum(g.k, g.v, singleOne, privKey, digest)
	g.v = hmacSum(g.k, g.v)

	return g
}

// Next returns the next nonce candidate in [1, n-1].  The first call returns
// the RFC 6979 nonce.  Every later call first advances the state with
// K = HMAC_K(V || 0x00), V = HMAC_K(V) so the candidates never repeat.
func (g *Generator) Next() *big.Int {
	if !g.fresh {
		g.reseed()
	}
	g.fresh = false

	// Step H: repeat until a value in [1, n-1] is found.
	for {
		// Step H1: T = empty
		// Step H2: while tlen < qlen, V = HMAC_K(V) and T = T || V
		t := make([]byte, 0, g.rlen+sha256.Size)
		for len(t) < g.rlen {
			g.v = hmacSum(g.k, g.v)
			t = append(t, g.v...)
		}

		// Step H3: k = bits2int(T), accepted when 1 <= k < n.
		secret := new(big.Int).SetBytes(t[:g.rlen])
		if secret.Sign() > 0 && secret.Cmp(g.n) < 0 {
			return secret
		}

		g.reseed()
	}
}

// reseed performs K = HMAC_K(V || 0x00), V = HMAC_K(V).
func (g *Generator) reseed() {
	g.k = hmacSum(g.k, g.v, singleZero)
	g.v = hmacSum(g.k, g.v)
}

// hmacSum returns HMAC-SHA256 keyed with key over the concatenation of data.
func hmacSum(key []byte, data ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}

// int2octets encodes v as a big-endian string of exactly rlen bytes.
func int2octets(v *big.Int, rlen int) []byte {
	return v.FillBytes(make([]byte, rlen))
}

// bits2octets converts a digest to an integer of at most bitlen(n) bits, reduces
// it modulo n and encodes it to the byte length of n.
func bits2octets(hash []byte, n *big.Int) []byte {
	z := new(big.Int).SetBytes(hash)
	if blen, qlen := len(hash)*8, n.BitLen(); blen > qlen {
		z.Rsh(z, uint(blen-qlen))
	}
	z.Mod(z, n)
	return int2octets(z, byteLen(n))
}

func byteLen(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

package noncereuse

import (
	"math/big"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecdsa"
)

// SignedDigest is an ECDSA signature together with the digest it signs.
// This is the unit the scanner, detector and parsers work with.
type SignedDigest struct {
	Z *big.Int // Message digest (SHA-256 of message, mod n)
	R *big.Int // r component of the signature
	S *big.Int // s component of the signature
}

// NewSignedDigest pairs a signature with its digest.
func NewSignedDigest(z *big.Int, sig *ecdsa.Signature) *SignedDigest {
	return &SignedDigest{
		Z: new(big.Int).Set(z),
		R: new(big.Int).Set(sig.R),
		S: new(big.Int).Set(sig.S),
	}
}

// Signature returns the (r, s) part.
func (sd *SignedDigest) Signature() *ecdsa.Signature {
	return ecdsa.NewSignature(sd.R, sd.S)
}

// RecoveredSecret is the output of nonce reuse recovery: the shared nonce K
// and the private scalar D.
type RecoveredSecret struct {
	K *big.Int
	D *big.Int
}

// AffineRelationship represents the relationship between two nonces.
// k2 = a*k1 + b
type AffineRelationship struct {
	A *big.Int // Affine coefficient
	B *big.Int // Affine offset
}

// SameNonce is the relationship of a reused nonce, k2 = k1.
func SameNonce() AffineRelationship {
	return AffineRelationship{A: big.NewInt(1), B: big.NewInt(0)}
}

// RecoveryResult contains the result of a key recovery search.
type RecoveryResult struct {
	PrivateKey    *big.Int           // Recovered private key
	Relationship  AffineRelationship // The affine relationship found (k2 = a*k1 + b)
	SignaturePair [2]int             // Indices of the signature pair used
	Verified      bool               // Whether the key was checked against a public key
	Pattern       string             // Human-readable pattern description
}

package noncereuse

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecdsa"
)

// Recover computes the shared nonce and the private scalar from two
// signatures that reused a nonce.
//
// With s1 = k⁻¹(z1 + rd) and s2 = k⁻¹(z2 + rd) over the same k:
//
//	k = (z1 - z2) / (s1 - s2) mod n
//	d = (s1*k - z1) / r       mod n
//
// Args:
//   - sig1, sig2: Two signatures with the same r
//   - z1, z2: The digests they sign
//   - n: Group order
//
// Returns:
//   - The recovered nonce and key, ErrNonceMismatch when the r values differ
//     or ErrDegenerateRecovery when s1 ≡ s2 (mod n)
func Recover(sig1, sig2 *ecdsa.Signature, z1, z2, n *big.Int) (*RecoveredSecret, error) {
	if sig1.R.Cmp(sig2.R) != 0 {
		str := fmt.Sprintf("signatures have different r values (%s, %s)",
			sig1.R.Text(16), sig2.R.Text(16))
		return nil, makeError(ErrNonceMismatch, str)
	}

	// k = (z1 - z2) / (s1 - s2)
	ds := new(big.Int).Sub(sig1.S, sig2.S)
	dsInv, err := ecc.ModInverse(ds, n)
	if err != nil {
		return nil, makeError(ErrDegenerateRecovery, "s1 - s2 is not invertible mod n")
	}
	k := new(big.Int).Sub(z1, z2)
	k.Mul(k, dsInv)
	k.Mod(k, n)

	d, err := keyFromNonce(sig1, z1, k, n)
	if err != nil {
		return nil, err
	}

	return &RecoveredSecret{K: k, D: d}, nil
}

// RecoverFromNonceReuse is Recover with the group order taken from curve.
func RecoverFromNonceReuse(curve *ecc.Curve, sig1, sig2 *ecdsa.Signature, z1, z2 *big.Int) (*RecoveredSecret, error) {
	return Recover(sig1, sig2, z1, z2, curve.N())
}

// RecoverWithKnownNonce computes the private scalar from a single signature
// whose nonce k has leaked: d = (s*k - z) / r mod n.
func RecoverWithKnownNonce(sig *ecdsa.Signature, z, k, n *big.Int) (*big.Int, error) {
	return keyFromNonce(sig, z, k, n)
}

func keyFromNonce(sig *ecdsa.Signature, z, k, n *big.Int) (*big.Int, error) {
	rInv, err := ecc.ModInverse(sig.R, n)
	if err != nil {
		return nil, makeError(ErrDegenerateRecovery, "r is not invertible mod n")
	}

	d := new(big.Int).Mul(sig.S, k)
	d.Sub(d, z)
	d.Mul(d, rInv)
	d.Mod(d, n)

	return d, nil
}

// RecoverAffine recovers the private key from two signatures whose nonces
// satisfy k2 = a*k1 + b.  Nonce reuse is the case a = 1, b = 0.
//
// Eliminating k1 from the two signing equations gives:
//
//	d = (a*s2*z1 - s1*z2 + b*s1*s2) / (r2*s1 - a*r1*s2) mod n
//
// Args:
//   - sig1, sig2: Two signatures with affinely related nonces
//   - rel: The relationship k2 = a*k1 + b
//   - n: Group order
//
// Returns:
//   - Private key if recovery successful, ErrDegenerateRecovery when the
//     denominator is 0 mod n
func RecoverAffine(sig1, sig2 *SignedDigest, rel AffineRelationship, n *big.Int) (*big.Int, error) {
	a, b := rel.A, rel.B

	// Calculate numerator: (a * s2 * z1 - s1 * z2 + b * s1 * s2) mod n
	as2z1 := new(big.Int).Mul(a, sig2.S)
	as2z1.Mul(as2z1, sig1.Z)

	s1z2 := new(big.Int).Mul(sig1.S, sig2.Z)

	bs1s2 := new(big.Int).Mul(b, sig1.S)
	bs1s2.Mul(bs1s2, sig2.S)

	numerator := new(big.Int).Sub(as2z1, s1z2)
	numerator.Add(numerator, bs1s2)
	numerator.Mod(numerator, n)

	// Calculate denominator: (r2 * s1 - a * r1 * s2) mod n
	r2s1 := new(big.Int).Mul(sig2.R, sig1.S)

	ar1s2 := new(big.Int).Mul(a, sig1.R)
	ar1s2.Mul(ar1s2, sig2.S)

	denominator := new(big.Int).Sub(r2s1, ar1s2)

	denominatorInv, err := ecc.ModInverse(denominator, n)
	if err != nil {
		return nil, makeError(ErrDegenerateRecovery, "denominator is zero: cannot recover private key")
	}

	priv := numerator.Mul(numerator, denominatorInv)
	return priv.Mod(priv, n), nil
}

// VerifyRecoveredKey reports whether d is the private key of the public
// point q on curve.
func VerifyRecoveredKey(curve *ecc.Curve, d *big.Int, q ecc.Point) bool {
	if ecc.CheckScalar(curve, d) != nil {
		return false
	}
	pub, err := curve.ScalarBaseMult(d)
	if err != nil {
		return false
	}
	return pub.Equal(q)
}

// VerifyRecoveredKeyBytes verifies that a recovered secp256k1 private key
// matches the given serialized public key.
//
// Args:
//   - privateKey: Recovered private key
//   - publicKeyBytes: Public key in compressed (33 bytes) or uncompressed
//     (65 bytes) format
//
// Returns:
//   - True if the private key matches the public key, false otherwise
func VerifyRecoveredKeyBytes(privateKey *big.Int, publicKeyBytes []byte) (bool, error) {
	pubKey, err := secp256k1.ParsePubKey(publicKeyBytes)
	if err != nil {
		return false, fmt.Errorf("failed to parse public key: %w", err)
	}

	curve := ecc.Secp256k1()
	if ecc.CheckScalar(curve, privateKey) != nil {
		return false, fmt.Errorf("private key out of valid range")
	}

	privKey := secp256k1.PrivKeyFromBytes(ecc.ScalarBytes(curve, privateKey))
	return privKey.PubKey().IsEqual(pubKey), nil
}

// Package ecdsa signs and verifies ECDSA signatures over any ecc.Curve.
//
// Nonces come from one of three places:
//
//   - a forced nonce passed to SignWithNonce, used exactly once
//   - crypto/rand or a configured io.Reader (the default)
//   - the RFC 6979 generator, enabled with WithDeterministicNonces
//
// Generated nonces that lead to a degenerate signature are replaced up to
// WithMaxAttempts times.  A forced nonce is never replaced; it fails with
// ErrDegenerateNonce so that demonstrations of nonce misuse see exactly the
// nonce they asked for.
//
//	signer := ecdsa.NewSigner(ecc.Secp256k1()).WithDeterministicNonces(true)
//	hash := sha256.Sum256(msg)
//	sig, err := signer.Sign(d, hash[:])
//	if err != nil {
//	    return err
//	}
//	ok := ecdsa.Verify(ecc.Secp256k1(), ecc.HashToInt(ecc.Secp256k1(), hash[:]), sig, q)
//
// Signatures are not normalised to low S, so both (r, s) and (r, n-s) are
// produced and accepted.
package ecdsa

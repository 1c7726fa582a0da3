package ecdsa

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/rfc6979"
)

// DefaultMaxAttempts bounds the number of generated nonces tried before
// signing gives up with ErrNonceExhausted.
const DefaultMaxAttempts = 8

// Signer produces ECDSA signatures on a fixed curve.
//
// A Signer is configured with the WithX methods before use and is then safe
// for concurrent use as long as its randomness source is.
type Signer struct {
	curve         *ecc.Curve
	rand          io.Reader
	deterministic bool
	maxAttempts   int
}

// NewSigner creates a signer for the curve with default settings: random
// nonces from crypto/rand and DefaultMaxAttempts attempts.
func NewSigner(curve *ecc.Curve) *Signer {
	return &Signer{
		curve:       curve,
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithRand sets the randomness source for nonces.  nil selects
// crypto/rand.Reader.
func (s *Signer) WithRand(r io.Reader) *Signer {
	s.rand = r
	return s
}

// WithDeterministicNonces switches between RFC 6979 nonces and random ones.
func (s *Signer) WithDeterministicNonces(enabled bool) *Signer {
	s.deterministic = enabled
	return s
}

// WithMaxAttempts sets how many generated nonces are tried.  Values below 1
// are treated as 1.
func (s *Signer) WithMaxAttempts(attempts int) *Signer {
	if attempts < 1 {
		attempts = 1
	}
	s.maxAttempts = attempts
	return s
}

// Curve returns the curve the signer works on.
func (s *Signer) Curve() *ecc.Curve {
	return s.curve
}

// SignWithNonce signs the digest z with the private scalar d using exactly
// the nonce k.
//
// The nonce is used once.  When it produces R = Infinity, r = 0 or s = 0 the
// call fails with ErrDegenerateNonce instead of choosing another nonce, since
// a caller that fixes the nonce wants that nonce and no other.
func (s *Signer) SignWithNonce(d, z, k *big.Int) (*Signature, error) {
	if err := ecc.CheckScalar(s.curve, d); err != nil {
		return nil, err
	}
	return s.signAttempt(d, z, k)
}

// SignDigest signs the digest z with the private scalar d, generating the
// nonce.  Degenerate nonces are replaced transparently up to the configured
// number of attempts, after which ErrNonceExhausted is returned.
func (s *Signer) SignDigest(d, z *big.Int) (*Signature, error) {
	if err := ecc.CheckScalar(s.curve, d); err != nil {
		return nil, err
	}

	var gen *rfc6979.Generator
	if s.deterministic {
		gen = rfc6979.NewGeneratorFromDigest(d, z, s.curve.N())
	}
	return s.signLoop(d, z, gen)
}

// Sign signs a message digest, such as the SHA-256 hash of the message, with
// the private scalar d.  The signed integer is the digest reduced modulo n.
// Deterministic nonces are derived from the raw digest bytes.
func (s *Signer) Sign(d *big.Int, hash []byte) (*Signature, error) {
	if err := ecc.CheckScalar(s.curve, d); err != nil {
		return nil, err
	}

	z := ecc.HashToInt(s.curve, hash)
	var gen *rfc6979.Generator
	if s.deterministic {
		gen = rfc6979.NewGenerator(d, hash, s.curve.N())
	}
	return s.signLoop(d, z, gen)
}

// signLoop draws nonces from gen, or from the randomness source when gen is
// nil, until one yields a valid signature.
func (s *Signer) signLoop(d, z *big.Int, gen *rfc6979.Generator) (*Signature, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		var k *big.Int
		if gen != nil {
			k = gen.Next()
		} else {
			var err error
			k, err = ecc.RandomScalar(s.curve, s.rand)
			if err != nil {
				return nil, fmt.Errorf("failed to generate nonce: %w", err)
			}
		}

		sig, err := s.signAttempt(d, z, k)
		if errors.Is(err, ErrDegenerateNonce) {
			continue
		}
		return sig, err
	}

	str := fmt.Sprintf("no valid signature after %d nonce attempts", s.maxAttempts)
	return nil, signatureError(ErrNonceExhausted, str)
}

// signAttempt computes one signature with the nonce k.
func (s *Signer) signAttempt(d, z, k *big.Int) (*Signature, error) {
	n := s.curve.N()

	kr := ecc.Mod(k, n)
	if kr.Sign() == 0 {
		return nil, signatureError(ErrDegenerateNonce, "nonce is 0 mod n")
	}

	// R = kG, r = R.x mod n
	bigR, err := s.curve.ScalarBaseMult(kr)
	if err != nil {
		return nil, err
	}
	rx, _, ok := bigR.Coordinates()
	if !ok {
		return nil, signatureError(ErrDegenerateNonce, "nonce gives R = Infinity")
	}
	r := rx.Mod(rx, n)
	if r.Sign() == 0 {
		return nil, signatureError(ErrDegenerateNonce, "nonce gives r = 0")
	}

	// s = k⁻¹(z + rd) mod n
	kInv, err := ecc.ModInverse(kr, n)
	if err != nil {
		return nil, err
	}
	sv := new(big.Int).Mul(r, d)
	sv.Add(sv, z)
	sv.Mul(sv, kInv)
	sv.Mod(sv, n)
	if sv.Sign() == 0 {
		return nil, signatureError(ErrDegenerateNonce, "nonce gives s = 0")
	}

	return &Signature{R: r, S: sv}, nil
}

// Sign signs the digest z with the private scalar d on the curve.
//
// Args:
//   - curve: Curve context
//   - d: Private scalar in [1, n-1]
//   - z: Message digest as an integer (see ecc.HashMessage)
//   - nonce: Forced nonce, or nil to draw random nonces from crypto/rand
//
// Returns:
//   - The signature, ErrDegenerateNonce for a degenerate forced nonce or
//     ErrNonceExhausted when random nonces keep failing
func Sign(curve *ecc.Curve, d, z, nonce *big.Int) (*Signature, error) {
	signer := NewSigner(curve)
	if nonce != nil {
		return signer.SignWithNonce(d, z, nonce)
	}
	return signer.SignDigest(d, z)
}

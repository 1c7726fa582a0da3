// Package elgamal implements per-symbol ElGamal encryption over an ecc.Curve.
//
// Each rune of the plaintext is encrypted on its own with a fresh ephemeral
// scalar.  The default scheme masks the symbol with the x coordinate of the
// shared point; EncryptPoints instead maps each symbol onto a curve point and
// adds the shared point to it.
//
// Neither scheme authenticates or pads its output.  They are teaching
// primitives and must not be used to protect real data.
package elgamal

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// maxEphemeralAttempts bounds the draws of an ephemeral scalar whose shared
// point is unusable.
const maxEphemeralAttempts = 8

// Pair is the encryption of one symbol: C1 = kG and C2 = (m + (kQ).x) mod p.
type Pair struct {
	C1 ecc.Point
	C2 *big.Int
}

// Ciphertext is the ordered sequence of pairs for a message.  Pairs are
// decrypted in order.
type Ciphertext []Pair

// Encrypt encrypts message for the public point q.
//
// Args:
//   - curve: Curve context
//   - q: Recipient public point
//   - message: Plaintext; each rune is encoded as its code point mod p
//   - r: Randomness source for ephemeral scalars (nil selects crypto/rand)
//
// Returns:
//   - One pair per rune, or ErrInvalidPublicKey, ErrNonceExhausted or a
//     randomness error
//
// Code points at or above p do not survive a round trip.
func Encrypt(curve *ecc.Curve, q ecc.Point, message string, r io.Reader) (Ciphertext, error) {
	if err := checkPublicKey(curve, q); err != nil {
		return nil, err
	}

	p := curve.P()
	ct := make(Ciphertext, 0, utf8.RuneCountInString(message))
	for _, symbol := range message {
		c1, shared, err := ephemeral(curve, q, r)
		if err != nil {
			return nil, err
		}

		m := big.NewInt(int64(symbol))
		c2 := m.Add(m, shared.X())
		c2.Mod(c2, p)

		ct = append(ct, Pair{C1: c1, C2: c2})
	}

	return ct, nil
}

// Decrypt recovers the message from ct with the private scalar d.
func Decrypt(curve *ecc.Curve, d *big.Int, ct Ciphertext) (string, error) {
	if err := ecc.CheckScalar(curve, d); err != nil {
		return "", err
	}

	p := curve.P()
	var sb strings.Builder
	for i, pair := range ct {
		if pair.C1.IsInfinity() || pair.C2 == nil {
			str := fmt.Sprintf("pair %d: incomplete or infinite C1", i)
			return "", makeError(ErrInvalidCiphertext, str)
		}

		shared, err := curve.ScalarMult(d, pair.C1)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt pair %d: %w", i, err)
		}
		sx, _, ok := shared.Coordinates()
		if !ok {
			str := fmt.Sprintf("pair %d: shared point is infinity", i)
			return "", makeError(ErrInvalidCiphertext, str)
		}

		// m = (C2 - S.x) mod p
		m := new(big.Int).Sub(pair.C2, sx)
		m.Mod(m, p)

		symbol, err := toRune(m)
		if err != nil {
			return "", fmt.Errorf("pair %d: %w", i, err)
		}
		sb.WriteRune(symbol)
	}

	return sb.String(), nil
}

// ephemeral draws k and returns C1 = kG and S = kQ, redrawing while S is the
// point at infinity.
func ephemeral(curve *ecc.Curve, q ecc.Point, r io.Reader) (c1, shared ecc.Point, err error) {
	for attempt := 0; attempt < maxEphemeralAttempts; attempt++ {
		k, err := ecc.RandomScalar(curve, r)
		if err != nil {
			return ecc.Point{}, ecc.Point{}, fmt.Errorf("failed to draw ephemeral scalar: %w", err)
		}

		shared, err = curve.ScalarMult(k, q)
		if err != nil {
			return ecc.Point{}, ecc.Point{}, err
		}
		if shared.IsInfinity() {
			continue
		}

		c1, err = curve.ScalarBaseMult(k)
		if err != nil {
			return ecc.Point{}, ecc.Point{}, err
		}
		return c1, shared, nil
	}

	str := fmt.Sprintf("no usable ephemeral scalar after %d attempts", maxEphemeralAttempts)
	return ecc.Point{}, ecc.Point{}, makeError(ErrNonceExhausted, str)
}

func checkPublicKey(curve *ecc.Curve, q ecc.Point) error {
	if q.IsInfinity() {
		return makeError(ErrInvalidPublicKey, "public key is the point at infinity")
	}
	if !curve.IsOnCurve(q) {
		return makeError(ErrInvalidPublicKey, fmt.Sprintf("public key %s is not on the curve", q))
	}
	return nil
}

// toRune converts a decrypted integer to a rune, rejecting values that are
// not Unicode scalar values.
func toRune(m *big.Int) (rune, error) {
	if !m.IsInt64() || m.Int64() > utf8.MaxRune {
		return 0, makeError(ErrInvalidSymbol, fmt.Sprintf("value %s is not a code point", m.Text(10)))
	}
	symbol := rune(m.Int64())
	if !utf8.ValidRune(symbol) {
		return 0, makeError(ErrInvalidSymbol, fmt.Sprintf("value %d is not a valid rune", symbol))
	}
	return symbol, nil
}

package elgamal

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// EncodingFactor is the number of x candidates reserved for each symbol when
// mapping it to a curve point: m is encoded at the first x = m*K + j,
// 0 <= j < K, that lies on the curve.  About half of all x values do, so a
// symbol fails to encode with probability close to 2^-32.
const EncodingFactor = 32

// PointPair is the encryption of one symbol as points: C1 = kG and
// C2 = Pm + kQ, where Pm encodes the symbol.
type PointPair struct {
	C1 ecc.Point
	C2 ecc.Point
}

// PointCiphertext is the ordered sequence of point pairs for a message.
type PointCiphertext []PointPair

// EncodeSymbol maps a symbol to a curve point.
func EncodeSymbol(curve *ecc.Curve, symbol rune) (ecc.Point, error) {
	if symbol < 0 {
		return ecc.Point{}, makeError(ErrEncodingFailed, "negative symbol")
	}

	p := curve.P()
	k := big.NewInt(EncodingFactor)
	base := new(big.Int).Mul(big.NewInt(int64(symbol)), k)

	// Every candidate x must stay below p.
	if limit := new(big.Int).Add(base, k); limit.Cmp(p) > 0 {
		str := fmt.Sprintf("symbol %d does not fit below the field prime", symbol)
		return ecc.Point{}, makeError(ErrEncodingFailed, str)
	}

	x := new(big.Int)
	for j := int64(0); j < EncodingFactor; j++ {
		x.Add(base, big.NewInt(j))
		y := new(big.Int).ModSqrt(curve.Polynomial(x), p)
		if y != nil {
			return ecc.NewPoint(x, y), nil
		}
	}

	str := fmt.Sprintf("no curve point for symbol %d", symbol)
	return ecc.Point{}, makeError(ErrEncodingFailed, str)
}

// DecodeSymbol returns the symbol encoded by pt, x / K.
func DecodeSymbol(pt ecc.Point) (rune, error) {
	x, _, ok := pt.Coordinates()
	if !ok {
		return 0, makeError(ErrInvalidSymbol, "point at infinity encodes no symbol")
	}
	return toRune(x.Div(x, big.NewInt(EncodingFactor)))
}

// EncryptPoints encrypts message for q using point encoding: every rune is
// mapped with EncodeSymbol and masked by adding kQ.
func EncryptPoints(curve *ecc.Curve, q ecc.Point, message string, r io.Reader) (PointCiphertext, error) {
	if err := checkPublicKey(curve, q); err != nil {
		return nil, err
	}

	ct := make(PointCiphertext, 0, utf8.RuneCountInString(message))
	for _, symbol := range message {
		pm, err := EncodeSymbol(curve, symbol)
		if err != nil {
			return nil, err
		}

		c1, shared, err := ephemeral(curve, q, r)
		if err != nil {
			return nil, err
		}
		c2, err := curve.Add(pm, shared)
		if err != nil {
			return nil, err
		}

		ct = append(ct, PointPair{C1: c1, C2: c2})
	}

	return ct, nil
}

// DecryptPoints recovers the message from ct with the private scalar d by
// computing Pm = C2 - d*C1 for every pair.
func DecryptPoints(curve *ecc.Curve, d *big.Int, ct PointCiphertext) (string, error) {
	if err := ecc.CheckScalar(curve, d); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, pair := range ct {
		if pair.C1.IsInfinity() {
			str := fmt.Sprintf("pair %d: C1 is the point at infinity", i)
			return "", makeError(ErrInvalidCiphertext, str)
		}

		shared, err := curve.ScalarMult(d, pair.C1)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt pair %d: %w", i, err)
		}
		pm, err := curve.Sub(pair.C2, shared)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt pair %d: %w", i, err)
		}

		symbol, err := DecodeSymbol(pm)
		if err != nil {
			return "", fmt.Errorf("pair %d: %w", i, err)
		}
		sb.WriteRune(symbol)
	}

	return sb.String(), nil
}

package noncereuse

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/JanieAbutu/ECE-Cryptography/internal/numparse"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// ParsePublicKey parses a public point for curve.
//
// Accepted forms are SEC 1 encodings in hex (02/03 compressed, 04
// uncompressed) and "x,y" with each coordinate in any format understood by
// numparse.  secp256k1 encodings are decoded with the decred secp256k1
// package.  The result is checked to lie on the curve.
func ParsePublicKey(curve *ecc.Curve, s string) (ecc.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ecc.Point{}, fmt.Errorf("empty public key")
	}

	var (
		pt  ecc.Point
		err error
	)
	switch {
	case strings.Contains(s, ","):
		pt, err = parseCoordinates(s)
	case curve == ecc.Secp256k1():
		pt, err = parseSecp256k1(s)
	default:
		pt, err = parseSEC1(curve, s)
	}
	if err != nil {
		return ecc.Point{}, err
	}

	if pt.IsInfinity() || !curve.IsOnCurve(pt) {
		return ecc.Point{}, fmt.Errorf("public key %s is not on curve %s", pt, curve.Name())
	}
	return pt, nil
}

func parseCoordinates(s string) (ecc.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return ecc.Point{}, fmt.Errorf("expected \"x,y\", got %q", s)
	}
	x, err := numparse.ParseBigInt(parts[0])
	if err != nil {
		return ecc.Point{}, fmt.Errorf("failed to parse x: %w", err)
	}
	y, err := numparse.ParseBigInt(parts[1])
	if err != nil {
		return ecc.Point{}, fmt.Errorf("failed to parse y: %w", err)
	}
	return ecc.NewPoint(x, y), nil
}

func parseSecp256k1(s string) (ecc.Point, error) {
	b, err := numparse.DecodeHex(s)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("failed to decode public key: %w", err)
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("failed to parse public key: %w", err)
	}
	return ecc.NewPoint(pub.X(), pub.Y()), nil
}

// parseSEC1 decodes a SEC 1 point encoding for any curve.
func parseSEC1(curve *ecc.Curve, s string) (ecc.Point, error) {
	b, err := numparse.DecodeHex(s)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("failed to decode public key: %w", err)
	}

	p := curve.P()
	size := (p.BitLen() + 7) / 8
	switch {
	case len(b) == 1+2*size && b[0] == 0x04:
		x := new(big.Int).SetBytes(b[1 : 1+size])
		y := new(big.Int).SetBytes(b[1+size:])
		return ecc.NewPoint(x, y), nil

	case len(b) == 1+size && (b[0] == 0x02 || b[0] == 0x03):
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(p) >= 0 {
			return ecc.Point{}, fmt.Errorf("x coordinate out of range")
		}
		y := new(big.Int).ModSqrt(curve.Polynomial(x), p)
		if y == nil {
			return ecc.Point{}, fmt.Errorf("x coordinate is not on curve %s", curve.Name())
		}
		if y.Bit(0) != uint(b[0]&1) {
			y.Sub(p, y)
		}
		return ecc.NewPoint(x, y), nil

	default:
		return ecc.Point{}, fmt.Errorf("malformed public key of %d bytes", len(b))
	}
}

// keyChecker returns a function reporting whether a candidate scalar is the
// private key of q.  secp256k1 candidates are checked with the decred
// implementation, which is much faster than generic affine arithmetic.
func keyChecker(curve *ecc.Curve, q ecc.Point) func(d *big.Int) bool {
	if q.IsInfinity() {
		return func(*big.Int) bool { return false }
	}
	if curve != ecc.Secp256k1() {
		return func(d *big.Int) bool {
			return VerifyRecoveredKey(curve, d, q)
		}
	}

	qx, qy, _ := q.Coordinates()
	return func(d *big.Int) bool {
		if ecc.CheckScalar(curve, d) != nil {
			return false
		}
		pub := secp256k1.PrivKeyFromBytes(ecc.ScalarBytes(curve, d)).PubKey()
		return pub.X().Cmp(qx) == 0 && pub.Y().Cmp(qy) == 0
	}
}

package ecc

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	secp256k1Once  sync.Once
	secp256k1Curve *Curve

	p256Once  sync.Once
	p256Curve *Curve
)

// Secp256k1 returns the secp256k1 curve (y² = x³ + 7) used by Bitcoin and
// Ethereum.  The parameters are taken from the decred secp256k1 package.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() {
		params := secp256k1.S256().Params()
		secp256k1Curve = mustCurve("secp256k1", params.P, big.NewInt(0), params.B,
			params.Gx, params.Gy, params.N)
	})
	return secp256k1Curve
}

// P256 returns the NIST P-256 curve (y² = x³ - 3x + b).
func P256() *Curve {
	p256Once.Do(func() {
		params := elliptic.P256().Params()
		p256Curve = mustCurve("P-256", params.P, big.NewInt(-3), params.B,
			params.Gx, params.Gy, params.N)
	})
	return p256Curve
}

func mustCurve(name string, p, a, b, gx, gy, n *big.Int) *Curve {
	c, err := NewCurve(name, p, a, b, gx, gy, n)
	if err != nil {
		panic(err)
	}
	return c
}

// FromName returns the named curve preset.
func FromName(name string) (*Curve, error) {
	switch strings.ToLower(name) {
	case "secp256k1":
		return Secp256k1(), nil
	case "p256", "p-256", "secp256r1", "prime256v1":
		return P256(), nil
	default:
		return nil, fmt.Errorf("unsupported curve: %s", name)
	}
}

// SupportedCurves lists the curve identifiers understood by FromName.
func SupportedCurves() []string {
	return []string{"secp256k1", "p256"}
}

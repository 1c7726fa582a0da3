package ecc

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// KeyPair is a private scalar D in [1, n-1] and its public point Q = D*G.
type KeyPair struct {
	D *big.Int
	Q Point
}

// RandomScalar draws a scalar uniformly from [1, n-1] of the curve.  A nil
// reader selects crypto/rand.Reader.  The reader must be cryptographically
// strong; callers sharing one reader between goroutines must make sure it is
// safe for concurrent use.
func RandomScalar(c *Curve, r io.Reader) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	if c.n.Cmp(big.NewInt(2)) < 0 {
		return nil, makeError(ErrInvalidCurve, "group order must be at least 2")
	}

	// Uniform in [0, n-2], shifted to [1, n-1].
	max := new(big.Int).Sub(c.n, big.NewInt(1))
	k, err := rand.Int(r, max)
	if err != nil {
		return nil, fmt.Errorf("failed to read random scalar: %w", err)
	}
	return k.Add(k, big.NewInt(1)), nil
}

// GenerateKey creates a new key pair on the curve.
//
// Args:
//   - c: Curve context
//   - r: Randomness source (nil selects crypto/rand.Reader)
//
// Returns:
//   - A key pair with Q = D*G, or an error if randomness or arithmetic fails
func GenerateKey(c *Curve, r io.Reader) (*KeyPair, error) {
	d, err := RandomScalar(c, r)
	if err != nil {
		return nil, err
	}
	q, err := c.ScalarBaseMult(d)
	if err != nil {
		return nil, err
	}
	return &KeyPair{D: d, Q: q}, nil
}

// LoadPrivateKey builds the key pair for an existing private scalar,
// recomputing the public point.  d must be in [1, n-1].
func LoadPrivateKey(c *Curve, d *big.Int) (*KeyPair, error) {
	if err := CheckScalar(c, d); err != nil {
		return nil, err
	}
	q, err := c.ScalarBaseMult(d)
	if err != nil {
		return nil, err
	}
	return &KeyPair{D: new(big.Int).Set(d), Q: q}, nil
}

// CheckScalar returns ErrOutOfRange unless 1 <= d < n.
func CheckScalar(c *Curve, d *big.Int) error {
	if d == nil || d.Sign() <= 0 || d.Cmp(c.n) >= 0 {
		return makeError(ErrOutOfRange, "private scalar must be in [1, n-1]")
	}
	return nil
}

package noncereuse

import (
	"context"
	"fmt"
	"math/big"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// Client provides a high-level API for ECDSA key recovery operations.
//
// Unless overridden, a client searches with a Scanner and reads JSON
// signature files, both bound to the client's curve.
type Client struct {
	curve    *ecc.Curve
	strategy Strategy
	parser   SignatureParser
	logf     func(format string, args ...interface{})
}

// NewClient creates a new client for secp256k1 with default settings.
func NewClient() *Client {
	return &Client{curve: ecc.Secp256k1()}
}

// WithCurve sets the curve the signatures were made on.
func (c *Client) WithCurve(curve *ecc.Curve) *Client {
	c.curve = curve
	return c
}

// WithStrategy sets a custom search strategy.
func (c *Client) WithStrategy(strategy Strategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithLogf sets a progress logger for the default scanner.
func (c *Client) WithLogf(logf func(format string, args ...interface{})) *Client {
	c.logf = logf
	return c
}

func (c *Client) getStrategy() Strategy {
	if c.strategy != nil {
		return c.strategy
	}
	return NewScanner(c.curve).WithLogf(c.logf)
}

func (c *Client) getParser() SignatureParser {
	if c.parser != nil {
		return c.parser
	}
	return &JSONParser{Curve: c.curve}
}

// RecoverKey attempts to recover a private key from signatures in a file.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to signature file.
//   - publicKey: Optional public key for verification, see ParsePublicKey.
//
// Returns:
//   - RecoveryResult if successful, error otherwise.
func (c *Client) RecoverKey(ctx context.Context, source string, publicKey string) (*RecoveryResult, error) {
	signatures, err := c.getParser().ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	return c.RecoverKeyFromSignatures(ctx, signatures, publicKey)
}

// RecoverKeyFromSignatures attempts to recover a private key from in-memory signatures.
// Public key is optional; when provided, the recovered key is verified.
func (c *Client) RecoverKeyFromSignatures(ctx context.Context, signatures []*SignedDigest, publicKey string) (*RecoveryResult, error) {
	if len(signatures) < 2 {
		return nil, fmt.Errorf("need at least 2 signatures, got %d", len(signatures))
	}

	q, err := c.parsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	result := c.getStrategy().Search(ctx, signatures, q)
	if result == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to recover private key")
	}
	return result, nil
}

// RecoverKeyWithKnownRelationship recovers a private key when the affine
// relationship k2 = a*k1 + b is known.  Without a public key the first pair
// whose candidate reproduces both r values is returned unverified.
func (c *Client) RecoverKeyWithKnownRelationship(ctx context.Context, source string, a, b int64, publicKey string) (*RecoveryResult, error) {
	signatures, err := c.getParser().ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}

	if len(signatures) < 2 {
		return nil, fmt.Errorf("need at least 2 signatures, got %d", len(signatures))
	}

	q, err := c.parsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	check := NewScanner(c.curve).checker(signatures, q)
	rel := AffineRelationship{A: big.NewInt(a), B: big.NewInt(b)}
	n := c.curve.N()

	for i := 0; i < len(signatures); i++ {
		for j := i + 1; j < len(signatures); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			priv, err := RecoverAffine(signatures[i], signatures[j], rel, n)
			if err != nil || !check(priv, i, j) {
				continue
			}

			return &RecoveryResult{
				PrivateKey:    priv,
				Relationship:  rel,
				SignaturePair: [2]int{i, j},
				Verified:      !q.IsInfinity(),
				Pattern:       fmt.Sprintf("known_a%d_b%d", a, b),
			}, nil
		}
	}

	return nil, fmt.Errorf("failed to recover private key with known relationship a=%d, b=%d", a, b)
}

func (c *Client) parsePublicKey(s string) (ecc.Point, error) {
	if s == "" {
		return ecc.Infinity(), nil
	}
	q, err := ParsePublicKey(c.curve, s)
	if err != nil {
		return ecc.Point{}, fmt.Errorf("failed to parse public key: %w", err)
	}
	return q, nil
}

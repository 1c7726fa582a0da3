package noncereuse

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JanieAbutu/ECE-Cryptography/internal/numparse"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecdsa"
)

const fixturesDir = "../../fixtures"

type testKeyInfo struct {
	PrivateKey   *big.Int
	PublicKeyHex string
}

// loadTestKeyInfo reads the key the fixture signatures were made with.
func loadTestKeyInfo(t *testing.T) testKeyInfo {
	t.Helper()

	file, err := os.Open(filepath.Join(fixturesDir, "test_key_info.json"))
	require.NoError(t, err)
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var raw map[string]interface{}
	require.NoError(t, decoder.Decode(&raw))

	d, err := numparse.ParseBigInt(raw["private_key"])
	require.NoError(t, err)
	pub, ok := raw["public_key_hex"].(string)
	require.True(t, ok)

	return testKeyInfo{PrivateKey: d, PublicKeyHex: pub}
}

// loadTestSignatures loads test signatures from the fixtures directory.
func loadTestSignatures(t *testing.T, filename string) []*SignedDigest {
	t.Helper()
	parser := &JSONParser{}
	sigs, err := parser.ParseSignatures(filepath.Join(fixturesDir, filename))
	require.NoError(t, err)
	return sigs
}

// curve9769 is y² = x³ + x + 19 over F₉₇₆₉, a curve of prime order 9739.
// The private key used with it throughout is 1234, Q = (1867, 5494).
func curve9769(t *testing.T) *ecc.Curve {
	t.Helper()
	c, err := ecc.NewCurve("toy9769", big.NewInt(9769), big.NewInt(1), big.NewInt(19),
		big.NewInt(1), big.NewInt(7855), big.NewInt(9739))
	require.NoError(t, err)
	return c
}

func toyPublicKey() ecc.Point {
	return ecc.NewPoint(big.NewInt(1867), big.NewInt(5494))
}

func signedDigest(z, r, s int64) *SignedDigest {
	return &SignedDigest{Z: big.NewInt(z), R: big.NewInt(r), S: big.NewInt(s)}
}

func sig(r, s int64) *ecdsa.Signature {
	return ecdsa.NewSignature(big.NewInt(r), big.NewInt(s))
}

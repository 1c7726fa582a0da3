package noncereuse

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

const (
	p256Gx = "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"
	p256Gy = "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"
)

func TestParsePublicKeySecp256k1(t *testing.T) {
	keyInfo := loadTestKeyInfo(t)
	c := ecc.Secp256k1()

	kp, err := ecc.LoadPrivateKey(c, keyInfo.PrivateKey)
	require.NoError(t, err)

	q, err := ParsePublicKey(c, keyInfo.PublicKeyHex)
	require.NoError(t, err)
	assert.True(t, q.Equal(kp.Q))

	q, err = ParsePublicKey(c, "0x"+keyInfo.PublicKeyHex)
	require.NoError(t, err)
	assert.True(t, q.Equal(kp.Q))

	x, y, _ := kp.Q.Coordinates()
	q, err = ParsePublicKey(c, "04"+leftPad(x.Text(16), 64)+leftPad(y.Text(16), 64))
	require.NoError(t, err)
	assert.True(t, q.Equal(kp.Q))

	q, err = ParsePublicKey(c, x.String()+","+y.String())
	require.NoError(t, err)
	assert.True(t, q.Equal(kp.Q))
}

func TestParsePublicKeyP256(t *testing.T) {
	c := ecc.P256()

	for _, s := range []string{
		"03" + p256Gx,
		"04" + p256Gx + p256Gy,
		"0x" + p256Gx + ",0x" + p256Gy,
	} {
		q, err := ParsePublicKey(c, s)
		require.NoError(t, err, s)
		assert.True(t, q.Equal(c.G()), "parsed %s", q)
	}

	// The other root.
	q, err := ParsePublicKey(c, "02"+p256Gx)
	require.NoError(t, err)
	assert.True(t, q.Equal(c.Negate(c.G())))
}

func TestParsePublicKeyToyCurve(t *testing.T) {
	c := curve9769(t)

	q, err := ParsePublicKey(c, "1867, 5494")
	require.NoError(t, err)
	assert.True(t, q.Equal(toyPublicKey()))

	// 1867 = 0x074b, 5494 = 0x1576
	q, err = ParsePublicKey(c, "02074b")
	require.NoError(t, err)
	assert.True(t, q.Equal(toyPublicKey()))

	q, err = ParsePublicKey(c, "03074b")
	require.NoError(t, err)
	assert.True(t, q.Equal(c.Negate(toyPublicKey())))

	q, err = ParsePublicKey(c, "04074b1576")
	require.NoError(t, err)
	assert.True(t, q.Equal(toyPublicKey()))
}

func TestParsePublicKeyErrors(t *testing.T) {
	c := curve9769(t)

	tests := []struct {
		name string
		in   string
	}{
		{"empty", "  "},
		{"off curve", "1867,5495"},
		{"too many coordinates", "1,2,3"},
		{"bad coordinate", "1867,zz"},
		{"bad hex", "02zz"},
		{"wrong length", "02074b15"},
		{"unknown prefix", "05074b"},
		{"x out of range", "022629"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePublicKey(c, tt.in)
			assert.Error(t, err)
		})
	}

	_, err := ParsePublicKey(ecc.Secp256k1(), "02"+p256Gx[:10])
	assert.Error(t, err)
}

func TestKeyChecker(t *testing.T) {
	keyInfo := loadTestKeyInfo(t)
	q := fixturePublicKey(t, keyInfo)

	isKey := keyChecker(ecc.Secp256k1(), q)
	assert.True(t, isKey(keyInfo.PrivateKey))
	assert.False(t, isKey(new(big.Int).Add(keyInfo.PrivateKey, big.NewInt(1))))
	assert.False(t, isKey(big.NewInt(0)))
	assert.False(t, isKey(ecc.Secp256k1().N()))

	assert.False(t, keyChecker(ecc.Secp256k1(), ecc.Infinity())(keyInfo.PrivateKey))

	toy := keyChecker(curve9769(t), toyPublicKey())
	assert.True(t, toy(big.NewInt(1234)))
	assert.False(t, toy(big.NewInt(4321)))
}

func leftPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}

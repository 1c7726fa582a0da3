package ecdsa

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// constReader returns the same byte forever.
type constReader byte

func (c constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}

func toyCurve(t *testing.T, p, a, b, gx, gy, n int64) *ecc.Curve {
	t.Helper()
	c, err := ecc.NewCurve("toy", big.NewInt(p), big.NewInt(a), big.NewInt(b),
		big.NewInt(gx), big.NewInt(gy), big.NewInt(n))
	require.NoError(t, err)
	return c
}

// curve257 is y² = x³ + x + 1 over F₂₅₇ with G = (2, 36) of prime order 83.
func curve257(t *testing.T) *ecc.Curve {
	return toyCurve(t, 257, 1, 1, 2, 36, 83)
}

// curve9769 is y² = x³ + x + 19 over F₉₇₆₉, a curve of prime order 9739.
func curve9769(t *testing.T) *ecc.Curve {
	return toyCurve(t, 9769, 1, 19, 1, 7855, 9739)
}

func sig(r, s int64) *Signature {
	return &Signature{R: big.NewInt(r), S: big.NewInt(s)}
}

func TestSignWithNonce(t *testing.T) {
	c := curve257(t)
	d := big.NewInt(5)

	kp, err := ecc.LoadPrivateKey(c, d)
	require.NoError(t, err)
	require.True(t, kp.Q.Equal(ecc.NewPoint(big.NewInt(208), big.NewInt(254))))

	got, err := Sign(c, d, big.NewInt(42), big.NewInt(7))
	require.NoError(t, err)
	assert.True(t, got.IsEqual(sig(39, 22)), "got %s", got)
	assert.True(t, Verify(c, big.NewInt(42), got, kp.Q))

	// A nonce given as k + n is the same nonce.
	again, err := Sign(c, d, big.NewInt(42), big.NewInt(7+83))
	require.NoError(t, err)
	assert.True(t, again.IsEqual(got))
}

// TestSignLiteralParameters pins the signature produced for the tuple
// p=257, a=b=1, G=(3,10), n=251.  (3,10) is not on that curve and 251 is
// not its order, so the signature is computable but does not verify.
func TestSignLiteralParameters(t *testing.T) {
	c := toyCurve(t, 257, 1, 1, 3, 10, 251)
	d := big.NewInt(5)

	q, err := c.ScalarBaseMult(d)
	require.NoError(t, err)
	assert.True(t, q.Equal(ecc.NewPoint(big.NewInt(43), big.NewInt(174))), "Q = %s", q)

	got, err := Sign(c, d, big.NewInt(42), big.NewInt(7))
	require.NoError(t, err)
	assert.True(t, got.IsEqual(sig(190, 70)), "got %s", got)
	assert.False(t, Verify(c, big.NewInt(42), got, q))
}

func TestSignDegenerateNonce(t *testing.T) {
	c := curve257(t)
	d := big.NewInt(5)

	// z = 54 makes z + rd ≡ 0 for k = 7, so s = 0.
	_, err := Sign(c, d, big.NewInt(54), big.NewInt(7))
	assert.ErrorIs(t, err, ErrDegenerateNonce)

	// k ≡ 0 mod n gives R = Infinity.
	_, err = Sign(c, d, big.NewInt(42), big.NewInt(83))
	assert.ErrorIs(t, err, ErrDegenerateNonce)

	_, err = Sign(c, d, big.NewInt(42), big.NewInt(0))
	assert.ErrorIs(t, err, ErrDegenerateNonce)
}

func TestSignOutOfRangeKey(t *testing.T) {
	c := curve257(t)

	for _, d := range []int64{0, -5, 83, 1000} {
		_, err := Sign(c, big.NewInt(d), big.NewInt(42), nil)
		if !errors.Is(err, ecc.ErrOutOfRange) {
			t.Errorf("d=%d: got %v, want ErrOutOfRange", d, err)
		}
		_, err = Sign(c, big.NewInt(d), big.NewInt(42), big.NewInt(7))
		if !errors.Is(err, ecc.ErrOutOfRange) {
			t.Errorf("d=%d forced nonce: got %v, want ErrOutOfRange", d, err)
		}
	}
}

// TestSignNonceExhausted feeds the signer a reader that always yields the
// same nonce and picks the digest that makes that nonce degenerate.
func TestSignNonceExhausted(t *testing.T) {
	c := ecc.Secp256k1()
	n := c.N()
	d := big.NewInt(12345)

	k, err := ecc.RandomScalar(c, constReader(0x42))
	require.NoError(t, err)
	bigR, err := c.ScalarBaseMult(k)
	require.NoError(t, err)
	r := new(big.Int).Mod(bigR.X(), n)

	// z = -rd mod n forces s = 0.
	z := new(big.Int).Mul(r, d)
	z.Neg(z)
	z.Mod(z, n)

	signer := NewSigner(c).WithRand(constReader(0x42)).WithMaxAttempts(3)
	_, err = signer.SignDigest(d, z)
	assert.ErrorIs(t, err, ErrNonceExhausted)

	// With the same nonce a different digest signs fine.
	got, err := signer.SignDigest(d, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, 0, got.R.Cmp(r))
}

func TestSignDeterministic(t *testing.T) {
	c := curve257(t)
	d := big.NewInt(5)
	hash := sha256.Sum256([]byte("hello"))
	q := ecc.NewPoint(big.NewInt(208), big.NewInt(254))

	signer := NewSigner(c).WithDeterministicNonces(true)

	// The digest bytes path truncates SHA-256 to 7 bits before deriving k = 4.
	got, err := signer.Sign(d, hash[:])
	require.NoError(t, err)
	assert.True(t, got.IsEqual(sig(24, 24)), "got %s", got)

	// The integer digest path derives k = 75 from z = 59.
	z := ecc.HashMessage(c, []byte("hello"))
	require.Equal(t, int64(59), z.Int64())
	got2, err := signer.SignDigest(d, z)
	require.NoError(t, err)
	assert.True(t, got2.IsEqual(sig(34, 44)), "got %s", got2)

	assert.True(t, Verify(c, z, got, q))
	assert.True(t, Verify(c, z, got2, q))

	// Identical inputs give identical signatures.
	again, err := signer.Sign(d, hash[:])
	require.NoError(t, err)
	assert.True(t, again.IsEqual(got))
}

func TestSignDeterministicLargerCurve(t *testing.T) {
	c := curve9769(t)
	d := big.NewInt(1234)
	hash := sha256.Sum256([]byte("hello"))

	got, err := NewSigner(c).WithDeterministicNonces(true).Sign(d, hash[:])
	require.NoError(t, err)
	assert.True(t, got.IsEqual(sig(2422, 5026)), "got %s", got)

	q := ecc.NewPoint(big.NewInt(1867), big.NewInt(5494))
	assert.True(t, Verify(c, ecc.HashMessage(c, []byte("hello")), got, q))
}

// TestSignP256Vectors checks RFC 6979 appendix A.2.5 (P-256, SHA-256).
func TestSignP256Vectors(t *testing.T) {
	c := ecc.P256()
	d, _ := new(big.Int).SetString("C9AFA9D845BA75166B5C215767B1D6934E50C3DB36E89B127B8A622B120F6721", 16)
	wantR, _ := new(big.Int).SetString("EFD48B2AACB6A8FD1140DD9CD45E81D69D2C877B56AAF991C34D0EA84EAF3716", 16)
	wantS, _ := new(big.Int).SetString("F7CB1C942D657C41D436C7A1B6E29F65F3E900DBB9AFF4064DC4AB2F843ACDA8", 16)

	hash := sha256.Sum256([]byte("sample"))
	got, err := NewSigner(c).WithDeterministicNonces(true).Sign(d, hash[:])
	require.NoError(t, err)
	assert.Equal(t, 0, got.R.Cmp(wantR), "r = %x", got.R)
	assert.Equal(t, 0, got.S.Cmp(wantS), "s = %x", got.S)

	kp, err := ecc.LoadPrivateKey(c, d)
	require.NoError(t, err)
	assert.True(t, Verify(c, ecc.HashToInt(c, hash[:]), got, kp.Q))
}

func TestSignRandomRoundTrip(t *testing.T) {
	curves := map[string]*ecc.Curve{
		"toy-257":   curve257(t),
		"toy-9769":  curve9769(t),
		"secp256k1": ecc.Secp256k1(),
		"p256":      ecc.P256(),
	}
	messages := []string{"", "hello", "Alice pays Bob 100"}

	for name, c := range curves {
		kp, err := ecc.GenerateKey(c, nil)
		require.NoError(t, err, name)

		for _, msg := range messages {
			z := ecc.HashMessage(c, []byte(msg))
			s, err := Sign(c, kp.D, z, nil)
			require.NoError(t, err, "%s %q", name, msg)

			assert.True(t, s.R.Sign() > 0 && s.R.Cmp(c.N()) < 0)
			assert.True(t, s.S.Sign() > 0 && s.S.Cmp(c.N()) < 0)
			assert.True(t, Verify(c, z, s, kp.Q), "%s %q", name, msg)
		}
	}
}

func TestSignerReaderIsUsed(t *testing.T) {
	c := ecc.Secp256k1()
	d := big.NewInt(99)
	z := big.NewInt(1000)

	seed := bytes.Repeat([]byte{0x07}, 256)
	s1, err := NewSigner(c).WithRand(bytes.NewReader(seed)).SignDigest(d, z)
	require.NoError(t, err)
	s2, err := NewSigner(c).WithRand(bytes.NewReader(seed)).SignDigest(d, z)
	require.NoError(t, err)
	assert.True(t, s1.IsEqual(s2))
}

package ecdsa

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// lowS returns sig with s replaced by n-s when s is above n/2.
func lowS(sig *Signature, n *big.Int) *Signature {
	half := new(big.Int).Rsh(n, 1)
	if sig.S.Cmp(half) > 0 {
		return sig.Malleate(n)
	}
	return sig
}

func toDecred(sig *Signature) *dcrecdsa.Signature {
	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sig.R.Bytes())
	s.SetByteSlice(sig.S.Bytes())
	return dcrecdsa.NewSignature(&r, &s)
}

func fromDecred(sig *dcrecdsa.Signature) *Signature {
	r, s := sig.R(), sig.S()
	rb, sb := r.Bytes(), s.Bytes()
	return &Signature{
		R: new(big.Int).SetBytes(rb[:]),
		S: new(big.Int).SetBytes(sb[:]),
	}
}

// TestDecredInterop ensures deterministic signatures agree with the decred
// implementation up to low-S normalisation and that each side verifies the
// other's signatures.
func TestDecredInterop(t *testing.T) {
	c := ecc.Secp256k1()
	n := c.N()

	keys := []string{
		"0000000000000000000000000000000000000000000000000000000000000001",
		"5f3b1a2bbd6dbb4a5f41a8cfbeb9e7a16bb5d1cd3ff0b4a6b20fb3bb0a1b7d4d",
		"5f3b1a2bbd6dbb4a5f41a8cfbeb9e7a16bb5d1cd3ff0b4a6b20fb3bb0a1b7d4e",
	}
	msgs := []string{"Satoshi Nakamoto", "hello", "Alice pays Bob 100"}

	signer := NewSigner(c).WithDeterministicNonces(true)
	for _, key := range keys {
		keyBytes, err := hex.DecodeString(key)
		if err != nil {
			t.Fatalf("bad key %s: %v", key, err)
		}
		privKey := secp256k1.PrivKeyFromBytes(keyBytes)
		pubKey := privKey.PubKey()
		d := new(big.Int).SetBytes(keyBytes)
		q := ecc.NewPoint(pubKey.X(), pubKey.Y())

		for _, msg := range msgs {
			hash := sha256.Sum256([]byte(msg))
			z := ecc.HashToInt(c, hash[:])

			ours, err := signer.Sign(d, hash[:])
			if err != nil {
				t.Fatalf("key %s msg %q: sign: %v", key, msg, err)
			}

			theirs := fromDecred(dcrecdsa.Sign(privKey, hash[:]))
			if !lowS(ours, n).IsEqual(theirs) {
				t.Errorf("key %s msg %q: got %s, decred %s", key, msg, lowS(ours, n),
					theirs)
			}

			if !toDecred(lowS(ours, n)).Verify(hash[:], pubKey) {
				t.Errorf("key %s msg %q: decred rejects our signature", key, msg)
			}
			if !Verify(c, z, theirs, q) {
				t.Errorf("key %s msg %q: decred signature does not verify", key, msg)
			}
		}
	}
}

// TestSatoshiVector pins the full signature for the well-known secp256k1
// RFC 6979 vector.
func TestSatoshiVector(t *testing.T) {
	c := ecc.Secp256k1()
	hash := sha256.Sum256([]byte("Satoshi Nakamoto"))

	got, err := NewSigner(c).WithDeterministicNonces(true).Sign(big.NewInt(1), hash[:])
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	wantR, _ := new(big.Int).SetString("934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a49860d7a6ab210ee3d8", 16)
	wantS, _ := new(big.Int).SetString("dbbd3162d46e9f9bef7feb87c16dc13b4f6568a87f4e83f728e2443ba586675c", 16)
	wantLowS, _ := new(big.Int).SetString("2442ce9d2b916064108014783e923ec36b49743e2ffa1c4496f01a512aafd9e5", 16)

	if got.R.Cmp(wantR) != 0 || got.S.Cmp(wantS) != 0 {
		t.Errorf("got (%x, %x), want (%x, %x)", got.R, got.S, wantR, wantS)
	}
	if low := lowS(got, c.N()); low.S.Cmp(wantLowS) != 0 {
		t.Errorf("low-S: got %x, want %x", low.S, wantLowS)
	}
}

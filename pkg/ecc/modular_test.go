package ecc

import (
	"errors"
	"math/big"
	"testing"
)

func TestModInverse(t *testing.T) {
	tests := []struct {
		name string
		a    int64
		m    int64
		want int64
	}{
		{"small", 3, 7, 5},
		{"one", 1, 23, 1},
		{"negative", -3, 7, 2},
		{"unreduced", 10, 7, 5},
		{"prime field", 20, 23, 15},
	}

	for _, test := range tests {
		got, err := ModInverse(big.NewInt(test.a), big.NewInt(test.m))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got.Int64() != test.want {
			t.Errorf("%s: got %v, want %d", test.name, got, test.want)
			continue
		}

		// a * a^-1 ≡ 1 (mod m)
		check := new(big.Int).Mul(big.NewInt(test.a), got)
		if Mod(check, big.NewInt(test.m)).Int64() != 1 {
			t.Errorf("%s: %d * %v is not 1 mod %d", test.name, test.a, got, test.m)
		}
	}
}

func TestModInverseErrors(t *testing.T) {
	tests := []struct {
		name string
		a    int64
		m    int64
	}{
		{"zero", 0, 7},
		{"multiple of modulus", 14, 7},
		{"shared factor", 4, 8},
		{"zero modulus", 3, 0},
		{"negative modulus", 3, -7},
	}

	for _, test := range tests {
		_, err := ModInverse(big.NewInt(test.a), big.NewInt(test.m))
		if !errors.Is(err, ErrInvalidOperand) {
			t.Errorf("%s: got %v, want ErrInvalidOperand", test.name, err)
		}
	}
}

func TestMod(t *testing.T) {
	m := big.NewInt(23)
	if got := Mod(big.NewInt(-1), m); got.Int64() != 22 {
		t.Errorf("Mod(-1, 23) = %v, want 22", got)
	}
	if got := Mod(big.NewInt(46), m); got.Sign() != 0 {
		t.Errorf("Mod(46, 23) = %v, want 0", got)
	}

	a := big.NewInt(30)
	Mod(a, m)
	if a.Int64() != 30 {
		t.Errorf("Mod modified its input: %v", a)
	}
}

package ecc

import (
	"fmt"
	"math/big"
)

// Curve is a short Weierstrass curve y² = x³ + ax + b over the prime field
// of order p, together with a generator G of order n.
//
// A Curve is immutable once constructed and safe for concurrent use.  The
// parameters are trusted: NewCurve does not check that p is prime, that G is
// on the curve or that n is the order of G.
type Curve struct {
	name string
	p    *big.Int
	a    *big.Int
	b    *big.Int
	g    Point
	n    *big.Int
}

// NewCurve creates a curve context from plain integers.  All inputs are
// copied; a and b are reduced modulo p.
func NewCurve(name string, p, a, b, gx, gy, n *big.Int) (*Curve, error) {
	for _, v := range []*big.Int{p, a, b, gx, gy, n} {
		if v == nil {
			return nil, makeError(ErrInvalidCurve, "curve parameters must not be nil")
		}
	}
	if p.Sign() <= 0 || n.Sign() <= 0 {
		str := fmt.Sprintf("curve %q: modulus and order must be positive", name)
		return nil, makeError(ErrInvalidCurve, str)
	}

	return &Curve{
		name: name,
		p:    new(big.Int).Set(p),
		a:    new(big.Int).Mod(a, p),
		b:    new(big.Int).Mod(b, p),
		g:    NewPoint(gx, gy),
		n:    new(big.Int).Set(n),
	}, nil
}

// Name returns the curve name given at construction.
func (c *Curve) Name() string { return c.name }

// P returns a copy of the field prime.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// A returns a copy of the linear coefficient.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the constant coefficient.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// N returns a copy of the order of the generator.
func (c *Curve) N() *big.Int { return new(big.Int).Set(c.n) }

// G returns the generator.
func (c *Curve) G() Point { return c.g }

// Polynomial returns x³ + ax + b mod p.
func (c *Curve) Polynomial(x *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Add(x3, c.a) // x² + a
	x3.Mul(x3, x)   // x³ + ax
	x3.Add(x3, c.b) // x³ + ax + b

	return x3.Mod(x3, c.p)
}

// IsOnCurve reports whether pt satisfies the curve equation with both
// coordinates in [0, p-1].  The point at infinity is on every curve.
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if pt.x.Sign() < 0 || pt.x.Cmp(c.p) >= 0 || pt.y.Sign() < 0 || pt.y.Cmp(c.p) >= 0 {
		return false
	}

	y2 := new(big.Int).Mul(pt.y, pt.y)
	y2.Mod(y2, c.p)

	return c.Polynomial(pt.x).Cmp(y2) == 0
}

// Add returns p1 + p2.
//
// The point at infinity is the identity, a point plus its negation is the
// point at infinity, equal points are doubled using the tangent slope and
// distinct points use the chord slope.  A slope denominator that is 0 mod p
// (only possible for malformed points) fails with ErrInvalidOperand.
func (c *Curve) Add(p1, p2 Point) (Point, error) {
	if p1.IsInfinity() {
		return p2, nil
	}
	if p2.IsInfinity() {
		return p1, nil
	}

	if p1.x.Cmp(p2.x) == 0 {
		sum := new(big.Int).Add(p1.y, p2.y)
		if sum.Mod(sum, c.p).Sign() == 0 {
			return Infinity(), nil
		}
	}

	var num, den *big.Int
	if p1.Equal(p2) {
		// m = (3x₁² + a) / 2y₁
		num = new(big.Int).Mul(p1.x, p1.x)
		num.Mul(num, big.NewInt(3))
		num.Add(num, c.a)
		den = new(big.Int).Lsh(p1.y, 1)
	} else {
		// m = (y₂ - y₁) / (x₂ - x₁)
		num = new(big.Int).Sub(p2.y, p1.y)
		den = new(big.Int).Sub(p2.x, p1.x)
	}

	inv, err := ModInverse(den, c.p)
	if err != nil {
		str := fmt.Sprintf("adding %s and %s: %v", p1, p2, err)
		return Point{}, makeError(ErrInvalidOperand, str)
	}
	m := num.Mul(num, inv)
	m.Mod(m, c.p)

	// x₃ = m² - x₁ - x₂
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, p2.x)
	x3.Mod(x3, c.p)

	// y₃ = m(x₁ - x₃) - y₁
	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, m)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, c.p)

	return Point{x: x3, y: y3, affine: true}, nil
}

// Double returns 2*pt.
func (c *Curve) Double(pt Point) (Point, error) {
	return c.Add(pt, pt)
}

// Negate returns -pt, the point (x, -y mod p).
func (c *Curve) Negate(pt Point) Point {
	if pt.IsInfinity() {
		return pt
	}
	y := new(big.Int).Neg(pt.y)
	y.Mod(y, c.p)
	return Point{x: new(big.Int).Set(pt.x), y: y, affine: true}
}

// Sub returns p1 - p2.
func (c *Curve) Sub(p1, p2 Point) (Point, error) {
	return c.Add(p1, c.Negate(p2))
}

// ScalarMult returns k*pt using double-and-add over the bits of k from the
// least significant upwards.  0*pt is the point at infinity.
func (c *Curve) ScalarMult(k *big.Int, pt Point) (Point, error) {
	if k.Sign() < 0 {
		return Point{}, makeError(ErrInvalidOperand, "scalar must not be negative")
	}

	var err error
	result := Infinity()
	addend := pt
	bits := k.BitLen()
	for i := 0; i < bits; i++ {
		if k.Bit(i) == 1 {
			if result, err = c.Add(result, addend); err != nil {
				return Point{}, err
			}
		}
		// The final doubling would never be used.
		if i == bits-1 {
			break
		}
		if addend, err = c.Double(addend); err != nil {
			return Point{}, err
		}
	}

	return result, nil
}

// ScalarBaseMult returns k*G.
func (c *Curve) ScalarBaseMult(k *big.Int) (Point, error) {
	return c.ScalarMult(k, c.g)
}

// String returns the curve name and parameters.
func (c *Curve) String() string {
	return fmt.Sprintf("%s: y^2 = x^3 + %sx + %s mod %s, G=%s, n=%s",
		c.name, c.a.Text(10), c.b.Text(10), c.p.Text(10), c.g, c.n.Text(10))
}

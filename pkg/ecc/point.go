package ecc

import (
	"fmt"
	"math/big"
)

// Point is an element of an elliptic curve group: either the point at
// infinity (the group identity) or an affine point (x, y).
//
// Points carry no reference to the curve they belong to; every operation
// takes the Curve explicitly.  The zero value is the point at infinity.
// Points are immutable: the accessors return copies and arithmetic always
// produces new points.
type Point struct {
	x, y   *big.Int
	affine bool
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y).  The coordinates are copied.
func NewPoint(x, y *big.Int) Point {
	return Point{
		x:      new(big.Int).Set(x),
		y:      new(big.Int).Set(y),
		affine: true,
	}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return !p.affine
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Coordinates returns copies of both coordinates.  ok is false for the point
// at infinity.
func (p Point) Coordinates() (x, y *big.Int, ok bool) {
	if !p.affine {
		return nil, nil, false
	}
	return p.X(), p.Y(), true
}

// Equal reports whether p and q are the same point.  The point at infinity
// is only equal to itself.
func (p Point) Equal(q Point) bool {
	if !p.affine || !q.affine {
		return p.affine == q.affine
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// String returns the point as "(x, y)" or "Infinity".
func (p Point) String() string {
	if !p.affine {
		return "Infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x.Text(10), p.y.Text(10))
}

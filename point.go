// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import (
	"errors"

	"curveware.dev/ecws/field"
)

// Point is a point on the curve described by a Context, held internally in
// Jacobian projective coordinates. The zero value is not usable; obtain a
// Point from NewPoint, Point.ScalarMult, or one of the arithmetic
// methods below. Points are immutable: every method returns a new Point
// rather than mutating the receiver.
type Point struct {
	ctx     *Context
	x, y, z *field.Element
}

// NewPoint decodes (x, y) as a point on ctx's curve. The all-zero pair
// (x, y) both encoding field element 0 is accepted as the point at
// infinity, matching the canonical affine encoding ecProjectiveToAffine
// produces. Any other pair must satisfy y^2 = x^3 - 3x + b; otherwise
// ErrNotOnCurve is returned.
func NewPoint(ctx *Context, x, y []byte) (*Point, error) {
	if ctx == nil {
		return nil, ErrNilArgument
	}
	if x == nil || y == nil {
		return nil, ErrNilArgument
	}
	m := ctx.m
	xe, err := m.Element().SetBytes(m, x)
	if err != nil {
		return nil, translateFieldError(err)
	}
	ye, err := m.Element().SetBytes(m, y)
	if err != nil {
		return nil, translateFieldError(err)
	}
	if xe.IsZero() == 1 && ye.IsZero() == 1 {
		return &Point{ctx: ctx, x: m.Element(), y: m.One(), z: m.Element()}, nil
	}
	if !onCurve(m, ctx.b, xe, ye) {
		return nil, ErrNotOnCurve
	}
	return &Point{ctx: ctx, x: xe, y: ye, z: m.One()}, nil
}

// translateFieldError maps a field.Element.SetBytes error onto this
// package's own sentinels, so a short or empty coordinate is reported as
// ErrShortBuffer (spec.md's NOT_ENOUGH_DATA) rather than conflated with an
// out-of-range but correctly-sized one (ErrInvalidValue).
func translateFieldError(err error) error {
	switch {
	case errors.Is(err, field.ErrShortBuffer):
		return ErrShortBuffer
	case errors.Is(err, field.ErrInvalidValue):
		return ErrInvalidValue
	default:
		return err
	}
}

// onCurve reports whether y^2 == x^3 - 3x + b, both sides in Montgomery
// form so the comparison is exact.
func onCurve(m *field.Modulus, b, x, y *field.Element) bool {
	lhs := m.Element().Square(m, y)

	x3 := m.Element()
	x3.Square(m, x)
	x3.Mul(m, x3, x)

	threeX := m.Element()
	threeX.Add(m, x, x)
	threeX.Add(m, threeX, x)

	rhs := m.Element()
	rhs.Sub(m, x3, threeX)
	rhs.Add(m, rhs, b)

	return lhs.Equal(rhs) == 1
}

// XY returns the affine encoding of p: (0, 0) if p is the point at
// infinity, otherwise the canonical big-endian coordinates.
func (p *Point) XY() (x, y []byte, err error) {
	m := p.ctx.m
	xa, ya := ecProjectiveToAffine(m, m.NewScratch(), p.x, p.y, p.z)
	return xa.Bytes(m, nil), ya.Bytes(m, nil), nil
}

// Double returns 2*p.
func (p *Point) Double() *Point {
	m := p.ctx.m
	x3, y3, z3 := ecFullDouble(m, m.NewScratch(), p.x, p.y, p.z)
	return &Point{ctx: p.ctx, x: x3, y: y3, z: z3}
}

// Add returns p+q. p and q must share the same Context.
func (p *Point) Add(q *Point) *Point {
	m := p.ctx.m
	x3, y3, z3 := ecFullAdd(m, m.NewScratch(), p.x, p.y, p.z, q.x, q.y, q.z)
	return &Point{ctx: p.ctx, x: x3, y: y3, z: z3}
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	m := p.ctx.m
	ny := m.Element().Negate(m, p.y)
	return &Point{ctx: p.ctx, x: m.Element().Set(p.x), y: ny, z: m.Element().Set(p.z)}
}

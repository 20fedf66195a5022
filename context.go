// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ecws implements constant-time short-Weierstrass elliptic curve
// arithmetic (a = -3, generic odd-prime modulus) over a projective point
// representation, with a hardened fixed-base generator path for P-256-class
// curves. It generalizes the teacher's fixed-curve Edwards25519 arithmetic
// to a runtime-supplied modulus, coefficient, and order, in the style of
// new_context/new_point/double/add/neg/scalar from the C interface this
// module replaces.
package ecws

import (
	"math/big"

	"curveware.dev/ecws/field"
)

// Context is an immutable description of one short-Weierstrass curve
// y^2 = x^3 - 3x + b over a field of characteristic p, with group order n.
// It is safe for concurrent use once constructed; every Point is only
// meaningful relative to the Context it was created from.
type Context struct {
	m      *field.Modulus
	b      *field.Element // Montgomery form
	n      *big.Int       // group order, plain integer
	nBytes []byte         // big-endian encoding of n, copied as supplied
}

// NewContext builds a Context for the curve with modulus p, coefficient b,
// and group order n, all big-endian byte strings. b must be exactly
// len(p)-canonical (field.NewModulus's byte length) and less than p; n must
// be a nonzero positive integer.
func NewContext(p, b, n []byte) (*Context, error) {
	if p == nil || b == nil || n == nil {
		return nil, ErrNilArgument
	}
	m, err := field.NewModulus(p)
	if err != nil {
		return nil, ErrInvalidValue
	}
	if len(b) != m.ByteLen() {
		return nil, ErrShortBuffer
	}
	bElem, err := m.Element().SetBytes(m, b)
	if err != nil {
		return nil, translateFieldError(err)
	}
	if len(n) == 0 {
		return nil, ErrShortBuffer
	}
	nBig := new(big.Int).SetBytes(n)
	if nBig.Sign() <= 0 {
		return nil, ErrInvalidValue
	}
	return &Context{
		m:      m,
		b:      bElem,
		n:      nBig,
		nBytes: append([]byte(nil), n...),
	}, nil
}

// ByteLen returns the canonical big-endian encoding length for coordinates
// and scalars under this Context.
func (c *Context) ByteLen() int { return c.m.ByteLen() }

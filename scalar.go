// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import (
	"math/big"

	"curveware.dev/ecws/field"
	"curveware.dev/ecws/internal/drbg"
)

// scalarWindow is the window width for the regular signed recoding used by
// variable-base scalar multiplication. Window 5 gives a table of 16 signed
// multiples (1*P..16*P, plus the point at infinity for digit 0) of the base
// point, the same size class as the teacher's edwards25519 8-bit signed
// window (internal/edwards25519/scalarMul.go), generalized here to a
// runtime curve rather than a fixed one.
const scalarWindow = 5

// scalarBlindBytes is the width, in bytes, of the blinding factor r drawn
// below: a fixed 64 bits, matching scalarBlindExtraBits (the bound
// numScalarDigits assumes when sizing the recoded digit sequence). Drawing
// more bytes than this would make k' = k + r*n wider than the fixed digit
// budget and silently truncate its high bits.
const scalarBlindBytes = 8

// scalarBlindExtraBits bounds the growth of k' = k + r*n over n's own bit
// length, for the scalarBlindBytes-wide blinding factor r drawn below.
// recodeSignedWindow's output length is sized from this bound and the
// context's canonical byte length alone (both public), never from k' or
// len(k), so the digit count varies neither with the secret blinding draw
// nor with the length of the supplied scalar.
const scalarBlindExtraBits = scalarBlindBytes * 8

// ScalarMult returns k*p, where k is a big-endian scalar of arbitrary
// length up to the context's canonical byte length. The multiplication is
// blinded: internally it computes k' = k + r*n for a fresh r drawn from a
// seed-derived generator, then recodes k' into a fixed number of signed
// digits and walks them with a constant-time table lookup, so the sequence
// of field operations and the memory access pattern are independent of k.
// Because n*p is the point at infinity for any p whose order divides the
// context's group order, the blinding term cancels exactly and the result
// is k*p.
func (p *Point) ScalarMult(k []byte, seed uint64) (*Point, error) {
	if k == nil {
		return nil, ErrNilArgument
	}
	ctx := p.ctx
	m := ctx.m
	if len(k) > m.ByteLen() {
		return nil, ErrInvalidValue
	}

	kBig := new(big.Int).SetBytes(k)
	blind := drbg.New(seed, "ecws/scalar-blind")
	rBuf := make([]byte, scalarBlindBytes)
	blind.Read(rBuf)
	r := new(big.Int).SetBytes(rBuf)

	kPrime := new(big.Int).Add(kBig, new(big.Int).Mul(r, ctx.n))

	numDigits := numScalarDigits(m.ByteLen(), scalarWindow)
	digits := recodeSignedWindow(kPrime, scalarWindow, numDigits)
	table := buildSignedMultiples(m, p, scalarWindow)

	s := m.NewScratch()
	rx, ry, rz := m.Element(), m.One(), m.Element()

	for i := len(digits) - 1; i >= 0; i-- {
		for j := 0; j < scalarWindow; j++ {
			rx, ry, rz = ecFullDouble(m, s, rx, ry, rz)
		}
		tx, ty, tz := selectSignedMultiple(m, table, digits[i])
		rx, ry, rz = ecFullAdd(m, s, rx, ry, rz, tx, ty, tz)
	}

	return &Point{ctx: ctx, x: rx, y: ry, z: rz}, nil
}

// numScalarDigits returns the fixed digit count recodeSignedWindow must
// produce for k' = k + r*n, where byteLen is the context's canonical byte
// length (the upper bound on len(k), and for curves whose order fits the
// field's encoding width, such as P-256 and P-521, on n as well), covering
// the worst-case growth from adding an scalarBlindExtraBits-sized multiple
// of n. byteLen is a public quantity, so this bound does not depend on any
// secret value.
func numScalarDigits(byteLen int, w uint) int {
	bits := byteLen*8 + scalarBlindExtraBits
	return bits/int(w) + 2
}

// recodeSignedWindow decodes k into a regular sequence of numDigits signed
// digits in [-(2^(w-1)-1), 2^(w-1)], one per window of w bits, least
// significant digit first. Digits may be zero or even; buildSignedMultiples
// and selectSignedMultiple build a table and selector that handle the full
// digit range, not just the odd ones. numDigits is fixed by the caller from
// public lengths alone, so the sequence of branch-free arithmetic
// operations performed depends only on those public lengths, never on the
// value of k's bits.
func recodeSignedWindow(k *big.Int, w uint, numDigits int) []int {
	digits := make([]int, numDigits)

	kk := new(big.Int).Set(k)
	maskBig := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))
	half := int64(1) << (w - 1)
	full := int64(1) << w

	var carry int64
	for i := 0; i < numDigits; i++ {
		low := new(big.Int).And(kk, maskBig).Int64()
		word := low + carry

		// carryOut = 1 if word > half, else 0, computed without a branch
		// via the sign bit of an arithmetic right shift.
		diff := half - word
		carryOut := (diff >> 63) & 1
		digit := word - carryOut*full
		digits[i] = int(digit)
		carry = carryOut

		kk.Rsh(kk, w)
	}
	return digits
}

// buildSignedMultiples returns a table indexed by digit magnitude:
// table[0] is the point at infinity (for digit 0) and table[i] is i*p for
// 1 <= i <= 2^(w-1), covering every magnitude recodeSignedWindow can
// produce. Built with 2^(w-1) additions of p, the standard fixed-table
// precomputation for windowed scalar multiplication.
func buildSignedMultiples(m *field.Modulus, p *Point, w uint) []*Point {
	count := 1<<(w-1) + 1
	table := make([]*Point, count)
	table[0] = &Point{ctx: p.ctx, x: m.Element(), y: m.One(), z: m.Element()}
	table[1] = p
	s := m.NewScratch()
	for i := 2; i < count; i++ {
		x, y, z := ecFullAdd(m, s, table[i-1].x, table[i-1].y, table[i-1].z, p.x, p.y, p.z)
		table[i] = &Point{ctx: p.ctx, x: x, y: y, z: z}
	}
	return table
}

// selectSignedMultiple fetches |digit|*p from table via a full linear scan
// (every entry is touched regardless of which is wanted; digit 0 selects
// table[0], the point at infinity), then conditionally negates the Y
// coordinate if digit is negative, again without branching on its sign.
func selectSignedMultiple(m *field.Modulus, table []*Point, digit int) (x, y, z *field.Element) {
	d := int64(digit)
	signMask := uint64(d >> 63)
	idx := int((d ^ int64(signMask)) - int64(signMask))

	x, y, z = m.Element(), m.Element(), m.Element()
	for i, pt := range table {
		cond := constTimeIntEq(i, idx)
		x.Select(pt.x, x, cond)
		y.Select(pt.y, y, cond)
		z.Select(pt.z, z, cond)
	}

	negY := m.Element().Negate(m, y)
	y.Select(negY, y, int(signMask&1))
	return x, y, z
}

func constTimeIntEq(a, b int) int {
	diff := uint64(a) ^ uint64(b)
	return int(1 - ((diff | -diff) >> 63))
}

// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import "curveware.dev/ecws/field"

// These three routines are the projective point kernel every higher-level
// operation (Double, Add, ScalarMult, the P-256 fixed-base path) is built
// from. They take and return Jacobian coordinates (X, Y, Z) representing the
// affine point (X/Z^2, Y/Z^3), with Z == 0 the canonical representation of
// the point at infinity.
//
// None of them branch on a coordinate value. Each exceptional case (either
// input at infinity, equal x-coordinates meaning either a doubling or a
// P + (-P) collision) is handled by computing every candidate result
// unconditionally and selecting among them with field.Element.Select, so the
// sequence of field operations executed is identical regardless of which
// case actually applies.

// ecFullDouble computes 2*(X1:Y1:Z1) for a = -3, using the dbl-2001-b
// formula (4M + 5S as written here: the formula's 3M + 5S plus one
// recomputed (X1-delta)*(X1+delta) product for alpha). This formula is self-masking: when Z1 == 0 every
// output reduces algebraically to Z3 == 0, so no extra select is needed to
// keep the point at infinity fixed under doubling.
func ecFullDouble(m *field.Modulus, s *field.Scratch, x1, y1, z1 *field.Element) (x3, y3, z3 *field.Element) {
	delta := s.Get()
	delta.Square(m, z1)
	gamma := s.Get()
	gamma.Square(m, y1)
	beta := s.Get()
	beta.Mul(m, x1, gamma)

	t1 := s.Get()
	t1.Sub(m, x1, delta)
	t2 := s.Get()
	t2.Add(m, x1, delta)
	alpha := s.Get()
	alpha.Mul(m, t1, t2)
	alpha.Add(m, alpha, alpha).Add(m, alpha, alpha)
	// alpha currently holds 4*(X1-delta)*(X1+delta); fix up to 3x by
	// subtracting back one copy of the doubled value.
	threeBase := s.Get()
	threeBase.Mul(m, t1, t2)
	alpha.Sub(m, alpha, threeBase)

	eightBeta := s.Get()
	eightBeta.Add(m, beta, beta)
	eightBeta.Add(m, eightBeta, eightBeta)
	eightBeta.Add(m, eightBeta, eightBeta)

	alphaSq := s.Get()
	alphaSq.Square(m, alpha)
	x3 = m.Element()
	x3.Sub(m, alphaSq, eightBeta)

	yPlusZ := s.Get()
	yPlusZ.Add(m, y1, z1)
	yPlusZSq := s.Get()
	yPlusZSq.Square(m, yPlusZ)
	z3 = m.Element()
	z3.Sub(m, yPlusZSq, gamma)
	z3.Sub(m, z3, delta)

	fourBeta := s.Get()
	fourBeta.Add(m, beta, beta)
	fourBeta.Add(m, fourBeta, fourBeta)
	fourBetaMinusX3 := s.Get()
	fourBetaMinusX3.Sub(m, fourBeta, x3)
	alphaTerm := s.Get()
	alphaTerm.Mul(m, alpha, fourBetaMinusX3)
	gammaSq := s.Get()
	gammaSq.Square(m, gamma)
	eightGammaSq := s.Get()
	eightGammaSq.Add(m, gammaSq, gammaSq)
	eightGammaSq.Add(m, eightGammaSq, eightGammaSq)
	eightGammaSq.Add(m, eightGammaSq, eightGammaSq)
	y3 = m.Element()
	y3.Sub(m, alphaTerm, eightGammaSq)

	s.Put(delta)
	s.Put(gamma)
	s.Put(beta)
	s.Put(t1)
	s.Put(t2)
	s.Put(threeBase)
	s.Put(eightBeta)
	s.Put(alphaSq)
	s.Put(yPlusZ)
	s.Put(yPlusZSq)
	s.Put(fourBeta)
	s.Put(fourBetaMinusX3)
	s.Put(alphaTerm)
	s.Put(gammaSq)
	s.Put(eightGammaSq)
	s.Put(alpha)
	return x3, y3, z3
}

// ecMixAdd adds an affine point (x2, y2) to a Jacobian point (X1:Y1:Z1)
// using the madd-2007-bl formula (7M + 4S). It masks in every case the
// formula alone does not handle: P1 at infinity (result is the affine
// input), (x2, y2) == (0, 0), the canonical affine encoding of the point at
// infinity (result is P1 unchanged), P1 == P2 (falls back to doubling), and
// P1 == -P2 (result is the point at infinity).
func ecMixAdd(m *field.Modulus, s *field.Scratch, x1, y1, z1, x2, y2 *field.Element) (x3, y3, z3 *field.Element) {
	z1z1 := s.Get()
	z1z1.Square(m, z1)
	u2 := s.Get()
	u2.Mul(m, x2, z1z1)
	s2 := s.Get()
	s2.Mul(m, y2, z1)
	s2.Mul(m, s2, z1z1)

	h := s.Get()
	h.Sub(m, u2, x1)
	hh := s.Get()
	hh.Square(m, h)
	i4 := s.Get()
	i4.Add(m, hh, hh)
	i4.Add(m, i4, i4)
	j := s.Get()
	j.Mul(m, h, i4)
	r := s.Get()
	r.Sub(m, s2, y1)
	r.Add(m, r, r)
	v := s.Get()
	v.Mul(m, x1, i4)

	addX3 := m.Element()
	rSq := s.Get()
	rSq.Square(m, r)
	twoV := s.Get()
	twoV.Add(m, v, v)
	addX3.Sub(m, rSq, j)
	addX3.Sub(m, addX3, twoV)

	addY3 := m.Element()
	vMinusX3 := s.Get()
	vMinusX3.Sub(m, v, addX3)
	rTerm := s.Get()
	rTerm.Mul(m, r, vMinusX3)
	twoY1J := s.Get()
	twoY1J.Mul(m, y1, j)
	twoY1J.Add(m, twoY1J, twoY1J)
	addY3.Sub(m, rTerm, twoY1J)

	addZ3 := m.Element()
	z1PlusH := s.Get()
	z1PlusH.Add(m, z1, h)
	z1PlusHSq := s.Get()
	z1PlusHSq.Square(m, z1PlusH)
	addZ3.Sub(m, z1PlusHSq, z1z1)
	addZ3.Sub(m, addZ3, hh)

	dblX3, dblY3, dblZ3 := ecFullDouble(m, s, x1, y1, z1)

	condInf := z1.IsZero()
	condQInf := x2.IsZero() & y2.IsZero()
	condEqualX := h.IsZero()
	condRZero := r.IsZero()
	condDouble := condEqualX & condRZero & (1 - condInf)
	condNegCollision := condEqualX & (1 - condRZero) & (1 - condInf)

	x3 = m.Element()
	y3 = m.Element()
	z3 = m.Element()
	x3.Select(dblX3, addX3, condDouble)
	y3.Select(dblY3, addY3, condDouble)
	z3.Select(dblZ3, addZ3, condDouble)

	infX, infY, infZ := m.Element().SetUint64(m, 0), m.Element().SetUint64(m, 1), m.Element()
	x3.Select(infX, x3, condNegCollision)
	y3.Select(infY, y3, condNegCollision)
	z3.Select(infZ, z3, condNegCollision)

	oneZ := m.One()
	x3.Select(x2, x3, condInf)
	y3.Select(y2, y3, condInf)
	z3.Select(oneZ, z3, condInf)

	// Applied last so that Q at infinity wins even when P1 is also at
	// infinity (the condInf branch above would otherwise leave the
	// non-canonical (0, 0, 1) in that case).
	x3.Select(x1, x3, condQInf)
	y3.Select(y1, y3, condQInf)
	z3.Select(z1, z3, condQInf)

	s.Put(z1z1)
	s.Put(u2)
	s.Put(s2)
	s.Put(h)
	s.Put(hh)
	s.Put(i4)
	s.Put(j)
	s.Put(r)
	s.Put(v)
	s.Put(rSq)
	s.Put(twoV)
	s.Put(vMinusX3)
	s.Put(rTerm)
	s.Put(twoY1J)
	s.Put(z1PlusH)
	s.Put(z1PlusHSq)
	return x3, y3, z3
}

// ecFullAdd adds two general Jacobian points using the add-2007-bl formula
// (11M + 5S), masking the cases: either input at infinity, P1 == P2
// (falls back to doubling), and P1 == -P2 (result is the point at
// infinity).
func ecFullAdd(m *field.Modulus, s *field.Scratch, x1, y1, z1, x2, y2, z2 *field.Element) (x3, y3, z3 *field.Element) {
	z1z1 := s.Get()
	z1z1.Square(m, z1)
	z2z2 := s.Get()
	z2z2.Square(m, z2)
	u1 := s.Get()
	u1.Mul(m, x1, z2z2)
	u2 := s.Get()
	u2.Mul(m, x2, z1z1)
	s1 := s.Get()
	s1.Mul(m, y1, z2)
	s1.Mul(m, s1, z2z2)
	s2 := s.Get()
	s2.Mul(m, y2, z1)
	s2.Mul(m, s2, z1z1)

	h := s.Get()
	h.Sub(m, u2, u1)
	twoH := s.Get()
	twoH.Add(m, h, h)
	i := s.Get()
	i.Square(m, twoH)
	j := s.Get()
	j.Mul(m, h, i)
	r := s.Get()
	r.Sub(m, s2, s1)
	r.Add(m, r, r)
	v := s.Get()
	v.Mul(m, u1, i)

	addX3 := m.Element()
	rSq := s.Get()
	rSq.Square(m, r)
	twoV := s.Get()
	twoV.Add(m, v, v)
	addX3.Sub(m, rSq, j)
	addX3.Sub(m, addX3, twoV)

	addY3 := m.Element()
	vMinusX3 := s.Get()
	vMinusX3.Sub(m, v, addX3)
	rTerm := s.Get()
	rTerm.Mul(m, r, vMinusX3)
	twoS1J := s.Get()
	twoS1J.Mul(m, s1, j)
	twoS1J.Add(m, twoS1J, twoS1J)
	addY3.Sub(m, rTerm, twoS1J)

	addZ3 := m.Element()
	zSum := s.Get()
	zSum.Add(m, z1, z2)
	zSumSq := s.Get()
	zSumSq.Square(m, zSum)
	zSumSq.Sub(m, zSumSq, z1z1)
	zSumSq.Sub(m, zSumSq, z2z2)
	addZ3.Mul(m, zSumSq, h)

	dblX3, dblY3, dblZ3 := ecFullDouble(m, s, x1, y1, z1)

	cond1Inf := z1.IsZero()
	cond2Inf := z2.IsZero()
	neither := (1 - cond1Inf) & (1 - cond2Inf)
	condEqualX := h.IsZero()
	condRZero := r.IsZero()
	condDouble := condEqualX & condRZero & neither
	condNegCollision := condEqualX & (1 - condRZero) & neither

	x3 = m.Element()
	y3 = m.Element()
	z3 = m.Element()
	x3.Select(dblX3, addX3, condDouble)
	y3.Select(dblY3, addY3, condDouble)
	z3.Select(dblZ3, addZ3, condDouble)

	infX, infY, infZ := m.Element().SetUint64(m, 0), m.Element().SetUint64(m, 1), m.Element()
	x3.Select(infX, x3, condNegCollision)
	y3.Select(infY, y3, condNegCollision)
	z3.Select(infZ, z3, condNegCollision)

	x3.Select(x1, x3, cond2Inf)
	y3.Select(y1, y3, cond2Inf)
	z3.Select(z1, z3, cond2Inf)

	x3.Select(x2, x3, cond1Inf)
	y3.Select(y2, y3, cond1Inf)
	z3.Select(z2, z3, cond1Inf)

	s.Put(z1z1)
	s.Put(z2z2)
	s.Put(u1)
	s.Put(u2)
	s.Put(s1)
	s.Put(s2)
	s.Put(h)
	s.Put(twoH)
	s.Put(i)
	s.Put(j)
	s.Put(r)
	s.Put(v)
	s.Put(rSq)
	s.Put(twoV)
	s.Put(vMinusX3)
	s.Put(rTerm)
	s.Put(twoS1J)
	s.Put(zSum)
	s.Put(zSumSq)
	return x3, y3, z3
}

// ecProjectiveToAffine converts (X:Y:Z) to affine (x, y). It relies on
// field.Element.Invert mapping zero to zero: when z is the point at
// infinity's Z == 0, zInv comes back zero and both outputs fall out as zero,
// the module's canonical affine encoding of the point at infinity, with no
// extra branch needed.
func ecProjectiveToAffine(m *field.Modulus, s *field.Scratch, x, y, z *field.Element) (xa, ya *field.Element) {
	zInv := s.Get()
	zInv.Invert(m, z)
	zInv2 := s.Get()
	zInv2.Square(m, zInv)
	zInv3 := s.Get()
	zInv3.Mul(m, zInv2, zInv)

	xa = m.Element()
	xa.Mul(m, x, zInv2)
	ya = m.Element()
	ya.Mul(m, y, zInv3)

	s.Put(zInv)
	s.Put(zInv2)
	s.Put(zInv3)
	return xa, ya
}

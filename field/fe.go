// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements fixed-width Montgomery arithmetic modulo an odd
// prime p supplied at runtime, for use by the projective point algebra in
// the ecws package. Unlike a curve-specific generated field (fiat-crypto,
// for example), the word count is derived from p itself, so the same code
// serves P-256, P-521, or any other odd-prime short-Weierstrass modulus.
//
// This type works similarly to math/big.Int in that receivers and
// arguments may alias, but every Element is only meaningful relative to
// the *Modulus it was created from; mixing Elements from different moduli
// is a programming error the package does not try to detect.
package field

import (
	"crypto/subtle"
	"errors"
	"math/big"

	"curveware.dev/ecws/internal/limb"
)

// ErrInvalidValue is returned when a byte string does not encode an
// integer strictly less than the modulus.
var ErrInvalidValue = errors.New("field: value is not less than the modulus")

// ErrShortBuffer is returned when a byte string passed to SetBytes is not
// exactly m.ByteLen() bytes long, distinct from ErrInvalidValue (a
// correctly-sized value that is out of range). Callers that need to
// surface this as a buffer-length problem rather than a range problem
// (ecws.NewPoint, for instance) check for it with errors.Is.
var ErrShortBuffer = errors.New("field: byte slice is not the modulus's canonical length")

// ErrInvalidModulus is returned by NewModulus when p is not odd, not
// greater than two, or encodes to zero words.
var ErrInvalidModulus = errors.New("field: modulus must be odd and greater than two")

// Modulus is an immutable Montgomery reduction context for a single odd
// prime p. It is safe for concurrent read-only use once constructed.
type Modulus struct {
	p       []uint64 // p, little-endian, n words
	pBig    *big.Int
	pMinus2 *big.Int // exponent used by Invert (public: derived from p)
	n       int      // word count
	byteLen int       // canonical encoding length in bytes
	montInv uint64   // -p^-1 mod 2^64
	r       []uint64 // R mod p, i.e. Montgomery encoding of 1
	r2      []uint64 // R^2 mod p, used to enter Montgomery form
}

// NewModulus builds a Montgomery context for the odd prime encoded by the
// big-endian bytes p. byteLen(p) becomes the canonical encoding length for
// every Element built from this Modulus (SetBytes/Bytes use exactly that
// many bytes), which lets a single context describe curves such as P-521
// whose byte length exceeds a whole number of 64-bit words.
func NewModulus(p []byte) (*Modulus, error) {
	if len(p) == 0 {
		return nil, ErrInvalidModulus
	}
	pBig := new(big.Int).SetBytes(p)
	if pBig.Sign() <= 0 || pBig.Cmp(big.NewInt(2)) <= 0 || pBig.Bit(0) == 0 {
		return nil, ErrInvalidModulus
	}

	n := (pBig.BitLen() + 63) / 64
	pLimbs := make([]uint64, n)
	bigIntToLimbs(pLimbs, pBig)
	if pLimbs[n-1] == 0 {
		return nil, ErrInvalidModulus
	}

	r := new(big.Int).Lsh(big.NewInt(1), uint(64*n))
	rModP := new(big.Int).Mod(r, pBig)
	r2ModP := new(big.Int).Mod(new(big.Int).Mul(r, r), pBig)

	rLimbs := make([]uint64, n)
	bigIntToLimbs(rLimbs, rModP)
	r2Limbs := make([]uint64, n)
	bigIntToLimbs(r2Limbs, r2ModP)

	m := &Modulus{
		p:       pLimbs,
		pBig:    pBig,
		pMinus2: new(big.Int).Sub(pBig, big.NewInt(2)),
		n:       n,
		byteLen: len(p),
		montInv: negInverseWord(pLimbs[0]),
		r:       rLimbs,
		r2:      r2Limbs,
	}
	return m, nil
}

// negInverseWord returns -p0^-1 mod 2^64 for odd p0, via Newton-Raphson
// iteration (each step doubles the number of correct bits).
func negInverseWord(p0 uint64) uint64 {
	inv := p0
	for i := 0; i < 5; i++ {
		inv *= 2 - p0*inv
	}
	return -inv
}

func bigIntToLimbs(z []uint64, x *big.Int) {
	buf := make([]byte, len(z)*8)
	x.FillBytes(buf)
	bytesToLimbs(z, buf)
}

// NumWords returns the number of 64-bit limbs an Element from this Modulus
// occupies.
func (m *Modulus) NumWords() int { return m.n }

// ByteLen returns the canonical big-endian encoding length for Elements
// from this Modulus.
func (m *Modulus) ByteLen() int { return m.byteLen }

// Element returns a new Element holding zero, sized for this Modulus.
func (m *Modulus) Element() *Element {
	return &Element{limbs: make([]uint64, m.n)}
}

// One returns a new Element holding the Montgomery encoding of 1.
func (m *Modulus) One() *Element {
	e := m.Element()
	copy(e.limbs, m.r)
	return e
}

// Element represents an element of the field, stored in Montgomery form:
// the limbs hold x*R mod p where R = 2^(64*n). The zero value is not
// usable; obtain Elements from Modulus.Element.
type Element struct {
	limbs []uint64
}

// Set sets v = a and returns v.
func (v *Element) Set(a *Element) *Element {
	copy(v.limbs, a.limbs)
	return v
}

// Limbs returns v's underlying Montgomery-form limb vector, least
// significant word first. It exists for low-level packages (such as
// internal/prot's masked tables) that need to store and restore elements
// without going through the byte encoding; callers must not retain the
// returned slice past the next mutation of v.
func (v *Element) Limbs() []uint64 { return v.limbs }

// SetLimbs sets v's limbs directly from x, which must already be in
// Montgomery form for the same Modulus v was created from, and returns v.
func (v *Element) SetLimbs(x []uint64) *Element {
	copy(v.limbs, x)
	return v
}

// SetUint64 sets v to the Montgomery encoding of the small integer x.
func (v *Element) SetUint64(m *Modulus, x uint64) *Element {
	plain := make([]uint64, m.n)
	plain[0] = x
	montEncode(v.limbs, plain, m)
	return v
}

// SetBytes sets v to the Montgomery encoding of the big-endian integer x,
// which must be exactly m.ByteLen() bytes and strictly less than the
// modulus. On failure v is left unchanged and ErrShortBuffer or
// ErrInvalidValue is returned, depending on whether x was the wrong length
// or a correctly-sized out-of-range value.
func (v *Element) SetBytes(m *Modulus, x []byte) (*Element, error) {
	if len(x) != m.byteLen {
		return nil, ErrShortBuffer
	}
	plain := make([]uint64, m.n)
	bytesToLimbs(plain, x)
	if limb.CmpGE(plain, m.p) == 1 {
		return nil, ErrInvalidValue
	}
	montEncode(v.limbs, plain, m)
	return v, nil
}

// Bytes writes the big-endian, zero-padded canonical encoding of v into
// out's first m.ByteLen() bytes (a new slice is allocated if out's capacity
// is too small) and returns that slice.
func (v *Element) Bytes(m *Modulus, out []byte) []byte {
	if cap(out) < m.byteLen {
		out = make([]byte, m.byteLen)
	} else {
		out = out[:m.byteLen]
	}
	one := make([]uint64, m.n)
	one[0] = 1
	plain := make([]uint64, m.n)
	montMul(plain, v.limbs, one, m)
	limbsToBytes(out, plain)
	return out
}

// Add sets v = a + b mod p and returns v.
func (v *Element) Add(m *Modulus, a, b *Element) *Element {
	sum := make([]uint64, m.n)
	carry := limb.AddCarry(sum, a.limbs, b.limbs, 0)
	reduced := make([]uint64, m.n)
	borrow := limb.SubBorrow(reduced, sum, m.p, 0)
	cond := int(carry | (1 - borrow))
	limb.Select(v.limbs, reduced, sum, cond)
	return v
}

// Sub sets v = a - b mod p and returns v.
func (v *Element) Sub(m *Modulus, a, b *Element) *Element {
	diff := make([]uint64, m.n)
	borrow := limb.SubBorrow(diff, a.limbs, b.limbs, 0)
	added := make([]uint64, m.n)
	limb.AddCarry(added, diff, m.p, 0)
	limb.Select(v.limbs, added, diff, int(borrow))
	return v
}

// Negate sets v = -a mod p and returns v.
func (v *Element) Negate(m *Modulus, a *Element) *Element {
	zero := m.Element()
	return v.Sub(m, zero, a)
}

// Mul sets v = a * b mod p (Montgomery CIOS multiplication) and returns v.
func (v *Element) Mul(m *Modulus, a, b *Element) *Element {
	montMul(v.limbs, a.limbs, b.limbs, m)
	return v
}

// Square sets v = a * a mod p and returns v.
func (v *Element) Square(m *Modulus, a *Element) *Element {
	montMul(v.limbs, a.limbs, a.limbs, m)
	return v
}

// Invert sets v = a^-1 mod p and returns v, using Fermat's little theorem
// with a fixed square-and-multiply chain over the bits of p-2. Those bits
// are a public property of the modulus, not of a, so branching on them
// does not introduce a secret-dependent timing channel; a itself is never
// branched on. If a is zero, Invert sets v to zero.
func (v *Element) Invert(m *Modulus, a *Element) *Element {
	result := m.One()
	base := m.Element().Set(a)
	for bit := m.pMinus2.BitLen() - 1; bit >= 0; bit-- {
		result.Square(m, result)
		if m.pMinus2.Bit(bit) == 1 {
			result.Mul(m, result, base)
		}
	}
	v.Set(result)
	return v
}

// Select sets v to a if cond == 1, or to b if cond == 0, and returns v.
func (v *Element) Select(a, b *Element, cond int) *Element {
	limb.Select(v.limbs, a.limbs, b.limbs, cond)
	return v
}

// IsZero returns 1 if v == 0, 0 otherwise.
func (v *Element) IsZero() int {
	return limb.IsZero(v.limbs)
}

// Equal returns 1 if v == u, 0 otherwise. Constant-time.
func (v *Element) Equal(u *Element) int {
	return subtle.ConstantTimeCompare(limbBytes(v.limbs), limbBytes(u.limbs))
}

func limbBytes(x []uint64) []byte {
	out := make([]byte, len(x)*8)
	for i, w := range x {
		for b := 0; b < 8; b++ {
			out[i*8+b] = byte(w >> (8 * b))
		}
	}
	return out
}

// montEncode sets z (Montgomery form) from plain (a standard integer's
// limbs, already < p).
func montEncode(z, plain []uint64, m *Modulus) {
	montMul(z, plain, m.r2, m)
}

// montMul computes z = x*y*R^-1 mod p via CIOS reduction, following the
// structure of math/big's nat.montgomery: a single n-word accumulator is
// updated and shifted down by one limb per iteration, with the shifted-out
// carries tracked via the classic overflow-detection trick (Hacker's
// Delight §2-12) rather than widening the accumulator.
func montMul(z, x, y []uint64, m *Modulus) {
	n := m.n
	acc := make([]uint64, n)
	var c uint64
	for i := 0; i < n; i++ {
		c2 := limb.MulAcc(acc, x, y[i], 0)
		t := acc[0] * m.montInv
		c3 := limb.MulAcc(acc, m.p, t, 0)
		copy(acc, acc[1:])
		cx := c + c2
		cy := cx + c3
		acc[n-1] = cy
		c = (c&c2 | (c|c2)&^cx) >> 63
		c |= (cx&c3 | (cx|c3)&^cy) >> 63
	}
	reduced := make([]uint64, n)
	borrow := limb.SubBorrow(reduced, acc, m.p, 0)
	cond := int(c | (1 - borrow))
	limb.Select(z, reduced, acc, cond)
}

func bytesToLimbs(z []uint64, x []byte) {
	for i := range z {
		z[i] = 0
	}
	for i, b := range x {
		pos := len(x) - 1 - i
		word := pos / 8
		shift := uint(pos%8) * 8
		z[word] |= uint64(b) << shift
	}
}

func limbsToBytes(out []byte, x []uint64) {
	for i := range out {
		pos := len(out) - 1 - i
		word := pos / 8
		shift := uint(pos%8) * 8
		out[i] = byte(x[word] >> shift)
	}
}

// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package limb implements fixed-width unsigned multi-precision arithmetic
// over little-endian slices of 64-bit words. It has no notion of a modulus;
// it is the word-level substrate the field package builds Montgomery
// arithmetic on top of.
//
// Every function here is total and branch-free on the values of its limbs:
// only slice lengths are inspected, never limb contents.
package limb

import "math/bits"

// AddCarry sets z = x + y + carry and returns the outgoing carry.
// x, y, and z must have the same length; z may alias x or y.
func AddCarry(z, x, y []uint64, carry uint64) uint64 {
	for i := range z {
		z[i], carry = bits.Add64(x[i], y[i], carry)
	}
	return carry
}

// SubBorrow sets z = x - y - borrow and returns the outgoing borrow.
// x, y, and z must have the same length; z may alias x or y.
func SubBorrow(z, x, y []uint64, borrow uint64) uint64 {
	for i := range z {
		z[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}
	return borrow
}

// MulAcc computes z += x*y + carry as a multi-word accumulation: it
// multiplies the limb vector x by the single word y, adds the running
// value of z in place, adds the incoming carry, and returns the word
// carried out past the top of z. len(z) must equal len(x).
func MulAcc(z, x []uint64, y uint64, carry uint64) uint64 {
	var hi, lo, c uint64
	for i := range x {
		hi, lo = bits.Mul64(x[i], y)
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		z[i], c = bits.Add64(z[i], lo, 0)
		carry = hi + c
	}
	return carry
}

// IsZero returns 1 if every limb of x is zero, 0 otherwise. Constant-time
// in the number of limbs.
func IsZero(x []uint64) int {
	var acc uint64
	for _, w := range x {
		acc |= w
	}
	return int(1 - ((acc | -acc) >> 63))
}

// Equal returns 1 if x and y (same length) are equal, 0 otherwise.
// Constant-time in the number of limbs.
func Equal(x, y []uint64) int {
	var acc uint64
	for i := range x {
		acc |= x[i] ^ y[i]
	}
	return int(1 - ((acc | -acc) >> 63))
}

// SelectMask returns a mask of all-ones if cond == 1, all-zeros if cond == 0.
// cond must be 0 or 1.
func SelectMask(cond int) uint64 {
	return uint64(cond) * ^uint64(0)
}

// Select sets z[i] = a[i] if cond == 1, z[i] = b[i] if cond == 0, for every
// limb. z may alias a or b.
func Select(z, a, b []uint64, cond int) {
	m := SelectMask(cond)
	for i := range z {
		z[i] = (m & a[i]) | (^m & b[i])
	}
}

// CmpGE returns 1 if x >= y (both length n, unsigned), 0 otherwise.
// Constant-time in the number of limbs.
func CmpGE(x, y []uint64) int {
	borrow := SubBorrow(make([]uint64, len(x)), x, y, 0)
	return int(1 - borrow)
}

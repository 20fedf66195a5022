// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve supplies the standard NIST domain parameter sets this
// module's point algebra and scalar multiplication are tested against:
// P-256 (the curve the fixed-base generator path hardens) and P-521 (used
// only to show the field layer generalizes beyond a single byte width, per
// spec.md scenario S7). Curve-parameter *generation* is out of scope
// (spec.md §1 Non-goals); these are fixed, well-known literals, in the
// same spirit as the teacher's hardcoded Ed25519 basepoint B and the
// pack's nistec-derived p521B/p521G literals.
package curve

// Params describes everything ecws.NewContext needs to build a Context:
// the field modulus p, curve coefficient b (with a fixed at -3), the group
// order n, the affine generator (Gx, Gy), and the canonical byte length
// shared by every coordinate and scalar on the wire for this curve.
type Params struct {
	P       []byte
	B       []byte
	N       []byte
	Gx, Gy  []byte
	ByteLen int
}

// P256 returns the NIST P-256 domain parameters (FIPS 186-4).
func P256() Params {
	return Params{
		P: mustHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
		B: mustHex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
		N: mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
		Gx: mustHex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
		Gy: mustHex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
		ByteLen: 32,
	}
}

// P521 returns the NIST P-521 domain parameters (FIPS 186-4). Its
// generator and b coefficient are transcribed from the retrieval pack's
// nistec-derived P-521 point type (p521B, p521G); see DESIGN.md.
func P521() Params {
	p := make([]byte, 66)
	p[0] = 0x01
	for i := 1; i < 66; i++ {
		p[i] = 0xff
	}

	// n = p - (34-byte offset); build it as 0x01 followed by 32 bytes of
	// 0xff and the 33-byte low-order suffix, rather than a single long hex
	// literal, so the byte count is checked by the compiler (len(n)==66)
	// instead of by counting hex digits by eye.
	n := make([]byte, 66)
	n[0] = 0x01
	for i := 1; i < 33; i++ {
		n[i] = 0xff
	}
	copy(n[33:], []byte{
		0xfa, 0x51, 0x86, 0x87, 0x83, 0xbf, 0x2f, 0x96, 0x6b, 0x7f, 0xcc, 0x01,
		0x48, 0xf7, 0x09, 0xa5, 0xd0, 0x3b, 0xb5, 0xc9, 0xb8, 0x89, 0x9c, 0x47,
		0xae, 0xbb, 0x6f, 0xb7, 0x1e, 0x91, 0x38, 0x64, 0x09,
	})

	return Params{
		P: p,
		B: []byte{
			0x00, 0x51, 0x95, 0x3e, 0xb9, 0x61, 0x8e, 0x1c, 0x9a, 0x1f, 0x92, 0x9a,
			0x21, 0xa0, 0xb6, 0x85, 0x40, 0xee, 0xa2, 0xda, 0x72, 0x5b, 0x99, 0xb3,
			0x15, 0xf3, 0xb8, 0xb4, 0x89, 0x91, 0x8e, 0xf1, 0x09, 0xe1, 0x56, 0x19,
			0x39, 0x51, 0xec, 0x7e, 0x93, 0x7b, 0x16, 0x52, 0xc0, 0xbd, 0x3b, 0xb1,
			0xbf, 0x07, 0x35, 0x73, 0xdf, 0x88, 0x3d, 0x2c, 0x34, 0xf1, 0xef, 0x45,
			0x1f, 0xd4, 0x6b, 0x50, 0x3f, 0x00,
		},
		N: n,
		Gx: []byte{
			0x00, 0xc6, 0x85, 0x8e, 0x06, 0xb7, 0x04, 0x04, 0xe9, 0xcd, 0x9e, 0x3e,
			0xcb, 0x66, 0x23, 0x95, 0xb4, 0x42, 0x9c, 0x64, 0x81, 0x39, 0x05, 0x3f,
			0xb5, 0x21, 0xf8, 0x28, 0xaf, 0x60, 0x6b, 0x4d, 0x3d, 0xba, 0xa1, 0x4b,
			0x5e, 0x77, 0xef, 0xe7, 0x59, 0x28, 0xfe, 0x1d, 0xc1, 0x27, 0xa2, 0xff,
			0xa8, 0xde, 0x33, 0x48, 0xb3, 0xc1, 0x85, 0x6a, 0x42, 0x9b, 0xf9, 0x7e,
			0x7e, 0x31, 0xc2, 0xe5, 0xbd, 0x66,
		},
		Gy: []byte{
			0x01, 0x18, 0x39, 0x29, 0x6a, 0x78, 0x9a, 0x3b, 0xc0, 0x04, 0x5c, 0x8a,
			0x5f, 0xb4, 0x2c, 0x7d, 0x1b, 0xd9, 0x98, 0xf5, 0x44, 0x49, 0x57, 0x9b,
			0x44, 0x68, 0x17, 0xaf, 0xbd, 0x17, 0x27, 0x3e, 0x66, 0x2c, 0x97, 0xee,
			0x72, 0x99, 0x5e, 0xf4, 0x26, 0x40, 0xc5, 0x50, 0xb9, 0x01, 0x3f, 0xad,
			0x07, 0x61, 0x35, 0x3c, 0x70, 0x86, 0xa2, 0x72, 0xc2, 0x40, 0x88, 0xbe,
			0x94, 0x76, 0x9f, 0xd1, 0x66, 0x50,
		},
		ByteLen: 66,
	}
}

func mustHex(s string) []byte {
	out := make([]byte, len(s)/2)
	for i := range out {
		hi := hexDigit(s[2*i])
		lo := hexDigit(s[2*i+1])
		out[i] = hi<<4 | lo
	}
	return out
}

func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("curve: invalid hex digit")
	}
}

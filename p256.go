// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import (
	"math/big"

	"curveware.dev/ecws/field"
	"curveware.dev/ecws/internal/drbg"
	"curveware.dev/ecws/internal/prot"
)

// generatorWindow is the fixed-base comb width: each window covers 4 bits
// of the scalar and owns its own 16-entry table (one entry per possible
// nibble, including the point at infinity for digit 0), so the online
// phase needs no doublings at all, only one masked table fetch and one
// addition per window.
const generatorWindow = 4

// blindBytes is the width, in bytes, of the blinding factor r drawn in
// ScalarBaseMultP256: a fixed 64 bits, matching blindExtraBits below.
// Drawing more bytes than this would make k' = k + r*n wider than the
// table's fixed window budget and silently truncate its high bits.
const blindBytes = 8

// blindExtraBits bounds the growth of k' = k + r*n over n's own bit length,
// for the blindBytes-wide blinding factor r drawn in ScalarBaseMultP256.
// The generator table must cover this many extra windows so that every
// digit of the blinded scalar still has a precomputed table to read from.
const blindExtraBits = blindBytes * 8

// maxScalarBytes is the precondition on |k| for ScalarBaseMultP256: the
// scalar must fit in the P-256 group order's own encoding width.
const maxScalarBytes = 32

func numGeneratorWindows(ctx *Context) int {
	bits := ctx.ByteLen()*8 + blindExtraBits
	return (bits + generatorWindow - 1) / generatorWindow
}

// GeneratorTable is a hardened precomputed table for fixed-base scalar
// multiplication by a single generator point. Every table entry is masked
// at rest (internal/prot) and every lookup scans the whole table, so the
// memory access pattern of ScalarBaseMultP256 is identical for every
// scalar value.
type GeneratorTable struct {
	windows []*prot.Table
	words   int
}

// BuildGeneratorTableP256 precomputes a GeneratorTable for the generator
// (gx, gy) under ctx, masked with randomness derived from seed. ctx's
// canonical byte length must be a whole number of 4-bit windows (true for
// P-256's 32-byte/256-bit encoding).
func BuildGeneratorTableP256(ctx *Context, gx, gy []byte, seed uint64) (*GeneratorTable, error) {
	g, err := NewPoint(ctx, gx, gy)
	if err != nil {
		return nil, err
	}
	m := ctx.m
	words := m.NumWords()
	if words <= 0 {
		return nil, ErrAllocation
	}
	nWindows := numGeneratorWindows(ctx)

	gen := drbg.New(seed, "ecws/table-mask")
	s := m.NewScratch()

	baseX, baseY, baseZ := g.x, g.y, g.z
	windows := make([]*prot.Table, nWindows)
	for wi := 0; wi < nWindows; wi++ {
		tbl := prot.New(1<<generatorWindow, words)

		zeroLimbs := make([]uint64, words)
		oneElem := m.One()
		tbl.Store(0, zeroLimbs, oneElem.Limbs(), zeroLimbs, randomMaskLimbs(gen, words))

		curX, curY, curZ := baseX, baseY, baseZ
		for d := 1; d < 1<<generatorWindow; d++ {
			tbl.Store(d, curX.Limbs(), curY.Limbs(), curZ.Limbs(), randomMaskLimbs(gen, words))
			if d < (1<<generatorWindow)-1 {
				curX, curY, curZ = ecFullAdd(m, s, curX, curY, curZ, baseX, baseY, baseZ)
			}
		}
		windows[wi] = tbl

		for j := 0; j < generatorWindow; j++ {
			baseX, baseY, baseZ = ecFullDouble(m, s, baseX, baseY, baseZ)
		}
	}
	return &GeneratorTable{windows: windows, words: words}, nil
}

// ScalarBaseMultP256 returns k*G for the generator table's base point. |k|
// must be at most 32 bytes, the P-256 group order's own encoding width. It
// blinds k exactly as ScalarMult does (k' = k + r*n for a seed-derived r,
// canceling since n*G = O) before reading one masked entry per 4-bit window
// and accumulating them with ecFullAdd. It performs no doublings in the
// online phase: every window's table already holds the generator scaled by
// the right power of 16.
func ScalarBaseMultP256(ctx *Context, table *GeneratorTable, k []byte, seed uint64) (*Point, error) {
	if table == nil {
		return nil, ErrNilArgument
	}
	if k == nil {
		return nil, ErrNilArgument
	}
	if len(k) > maxScalarBytes {
		return nil, ErrInvalidValue
	}
	m := ctx.m
	nWindows := numGeneratorWindows(ctx)
	if len(table.windows) != nWindows {
		return nil, ErrInvalidValue
	}

	kBig := new(big.Int).SetBytes(k)
	blind := drbg.New(seed, "ecws/scalar-blind")
	rBuf := make([]byte, blindBytes)
	blind.Read(rBuf)
	r := new(big.Int).SetBytes(rBuf)
	kPrime := new(big.Int).Add(kBig, new(big.Int).Mul(r, ctx.n))

	s := m.NewScratch()
	rx, ry, rz := m.Element(), m.One(), m.Element()

	for wi := 0; wi < nWindows; wi++ {
		digit := nibbleAt(kPrime, wi)
		tx, ty, tz := selectFromTable(m, table.windows[wi], digit)
		rx, ry, rz = ecFullAdd(m, s, rx, ry, rz, tx, ty, tz)
	}
	return &Point{ctx: ctx, x: rx, y: ry, z: rz}, nil
}

func nibbleAt(k *big.Int, window int) int {
	shifted := new(big.Int).Rsh(k, uint(generatorWindow*window))
	return int(shifted.Uint64() & (1<<generatorWindow - 1))
}

func selectFromTable(m *field.Modulus, t *prot.Table, idx int) (x, y, z *field.Element) {
	words := m.NumWords()
	xb, yb, zb := make([]uint64, words), make([]uint64, words), make([]uint64, words)
	t.Select(xb, yb, zb, idx)
	return m.Element().SetLimbs(xb), m.Element().SetLimbs(yb), m.Element().SetLimbs(zb)
}

func randomMaskLimbs(g *drbg.Generator, words int) []uint64 {
	out := make([]uint64, words)
	for i := range out {
		out[i] = g.Uint64()
	}
	return out
}

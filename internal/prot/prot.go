// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prot implements ProtMemory: a masked precomputed-table
// representation for curve points at rest. Every entry is stored XORed
// with its own mask, supplied by the caller when the entry is stored and
// kept alongside it, and the mask is reapplied on every fetch. This is not cryptographic secrecy — it
// exists so that (a) the bytes sitting in a cache line never equal the
// true coordinates of a table entry, and (b) selecting an entry always
// touches every entry (the access pattern is the same regardless of which
// index is wanted), per spec.md §3/§9.
package prot

import "curveware.dev/ecws/internal/limb"

// Entry is one masked table row: three limb vectors (X, Y, Z of a
// projective point), each XORed with mask.
type Entry struct {
	X, Y, Z []uint64
	mask    []uint64
}

// Table is an array of masked table entries sharing one word width.
// Immutable after New; safe for concurrent Select calls, since unmasking
// is a pure XOR with no shared mutable state.
type Table struct {
	words   int
	entries []Entry
}

// New builds a Table with n entries of the given word width. The caller
// fills each entry via Store before the table is used for Select.
func New(n, words int) *Table {
	return &Table{words: words, entries: make([]Entry, n)}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// Store masks (x, y, z) with the caller-supplied mask and writes it, with a
// copy of the mask, into entry i. x, y, z, and mask are copied, not aliased.
func (t *Table) Store(i int, x, y, z []uint64, mask []uint64) {
	e := Entry{
		X:    make([]uint64, t.words),
		Y:    make([]uint64, t.words),
		Z:    make([]uint64, t.words),
		mask: append([]uint64(nil), mask...),
	}
	xorInto(e.X, x, mask)
	xorInto(e.Y, y, mask)
	xorInto(e.Z, z, mask)
	t.entries[i] = e
}

// Select performs a full linear scan of every entry in the table,
// unmasking each one and accumulating it into (x, y, z) under a
// constant-time index-equality mask, so the memory-access pattern is
// identical no matter which index is requested. idx must be in
// [0, t.Len()).
func (t *Table) Select(x, y, z []uint64, idx int) {
	for i := range x {
		x[i], y[i], z[i] = 0, 0, 0
	}
	tmpX := make([]uint64, t.words)
	tmpY := make([]uint64, t.words)
	tmpZ := make([]uint64, t.words)
	for i, e := range t.entries {
		cond := constantTimeIntEq(i, idx)
		xorInto(tmpX, e.X, e.mask)
		xorInto(tmpY, e.Y, e.mask)
		xorInto(tmpZ, e.Z, e.mask)
		accumulate(x, tmpX, cond)
		accumulate(y, tmpY, cond)
		accumulate(z, tmpZ, cond)
	}
}

func xorInto(out, a, b []uint64) {
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
}

func accumulate(acc, v []uint64, cond int) {
	m := limb.SelectMask(cond)
	for i := range acc {
		acc[i] |= m & v[i]
	}
}

// constantTimeIntEq returns 1 if a == b, 0 otherwise, without branching on
// the comparison result.
func constantTimeIntEq(a, b int) int {
	diff := uint64(a) ^ uint64(b)
	return int(1 - ((diff | -diff) >> 63))
}

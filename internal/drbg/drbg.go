// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drbg turns a caller-supplied 64-bit seed into an arbitrary-length
// deterministic pseudorandom byte stream. The engine never reads a system
// entropy source directly (every randomized step — scalar blinding,
// ProtMemory masking — is driven by a seed the caller controls), so tests
// can reproduce a run exactly by fixing the seed, the same way
// github.com/drand/drand derives encryption keys from a DH shared secret
// with golang.org/x/crypto/hkdf rather than hand-rolling a stream cipher.
package drbg

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfChunkBytes is the most HKDF-Expand over SHA-256 can produce from a
// single (secret, info) pair: 255 rounds of a 32-byte hash output (RFC 5869
// §2.3). A P-256 generator table (80 windows of 16 masked entries, 4 words
// of 8 bytes each) needs far more mask material than that, so Generator
// re-keys into a fresh HKDF expansion — same secret, info extended with a
// chunk counter — every time one chunk's budget is used up, giving an
// effectively unbounded stream instead of failing past the first 8160
// bytes.
const hkdfChunkBytes = 255 * sha256.Size

// Generator produces a deterministic byte stream from a seed. It is not a
// cryptographically secure source of secrecy on its own — it is the
// counter-mode block function spec.md §6 calls for, used only to turn a
// reproducible seed into reproducible-but-well-distributed bytes for
// blinding factors and table masks.
type Generator struct {
	secret    [8]byte
	label     []byte
	chunk     uint64
	r         io.Reader
	chunkUsed int
}

// New returns a Generator deriving its stream from seed and the domain
// separation string label (e.g. "ecws/scalar-blind" vs "ecws/table-mask"),
// so two call sites fed the same seed never produce correlated output.
func New(seed uint64, label string) *Generator {
	g := &Generator{label: []byte(label)}
	binary.BigEndian.PutUint64(g.secret[:], seed)
	g.rekey()
	return g
}

// rekey starts a fresh HKDF-Expand reader over the same secret, with the
// label and the current chunk counter as HKDF's info parameter, then
// advances the counter. Every chunk is independent entropy (different
// info), so concatenating chunks never repeats or correlates output within
// a single Generator's lifetime.
func (g *Generator) rekey() {
	info := make([]byte, len(g.label)+8)
	copy(info, g.label)
	binary.BigEndian.PutUint64(info[len(g.label):], g.chunk)
	g.chunk++
	g.r = hkdf.New(sha256.New, g.secret[:], nil, info)
	g.chunkUsed = 0
}

// Read fills p with the next len(p) pseudorandom bytes, transparently
// rekeying into a new HKDF chunk whenever the current one's 8160-byte
// budget runs out, so arbitrarily long reads (e.g. masking every entry of
// an 80-window P-256 generator table) never fail.
func (g *Generator) Read(p []byte) {
	for len(p) > 0 {
		avail := hkdfChunkBytes - g.chunkUsed
		if avail == 0 {
			g.rekey()
			avail = hkdfChunkBytes
		}
		n := len(p)
		if n > avail {
			n = avail
		}
		if _, err := io.ReadFull(g.r, p[:n]); err != nil {
			// Only reachable if hkdfChunkBytes understates HKDF's real
			// per-chunk budget, which would be a bug in this file, not a
			// caller error.
			panic("drbg: hkdf expansion failed within its own chunk budget: " + err.Error())
		}
		g.chunkUsed += n
		p = p[n:]
	}
}

// Uint64 returns the next 64 bits of the stream.
func (g *Generator) Uint64() uint64 {
	var b [8]byte
	g.Read(b[:])
	return binary.BigEndian.Uint64(b[:])
}

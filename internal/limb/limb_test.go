// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package limb

import (
	"math/big"
	"math/rand"
	"testing"
)

func toBig(x []uint64) *big.Int {
	n := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		n.Lsh(n, 64)
		n.Or(n, new(big.Int).SetUint64(x[i]))
	}
	return n
}

func randLimbs(rnd *rand.Rand, n int) []uint64 {
	z := make([]uint64, n)
	for i := range z {
		z[i] = rnd.Uint64()
	}
	return z
}

func TestAddCarryMatchesBigInt(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	const n = 4
	mod := new(big.Int).Lsh(big.NewInt(1), n*64)
	for i := 0; i < 2000; i++ {
		x := randLimbs(rnd, n)
		y := randLimbs(rnd, n)
		z := make([]uint64, n)
		carry := AddCarry(z, x, y, 0)

		want := new(big.Int).Add(toBig(x), toBig(y))
		wantCarry := uint64(0)
		if want.Cmp(mod) >= 0 {
			want.Mod(want, mod)
			wantCarry = 1
		}
		if toBig(z).Cmp(want) != 0 || carry != wantCarry {
			t.Fatalf("AddCarry mismatch: x=%x y=%x got=%x/%d want=%x/%d", x, y, z, carry, want, wantCarry)
		}
	}
}

func TestSubBorrowMatchesBigInt(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	const n = 4
	mod := new(big.Int).Lsh(big.NewInt(1), n*64)
	for i := 0; i < 2000; i++ {
		x := randLimbs(rnd, n)
		y := randLimbs(rnd, n)
		z := make([]uint64, n)
		borrow := SubBorrow(z, x, y, 0)

		want := new(big.Int).Sub(toBig(x), toBig(y))
		wantBorrow := uint64(0)
		if want.Sign() < 0 {
			want.Add(want, mod)
			wantBorrow = 1
		}
		if toBig(z).Cmp(want) != 0 || borrow != wantBorrow {
			t.Fatalf("SubBorrow mismatch: x=%x y=%x got=%x/%d want=%x/%d", x, y, z, borrow, want, wantBorrow)
		}
	}
}

func TestMulAccMatchesBigInt(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	const n = 4
	for i := 0; i < 2000; i++ {
		x := randLimbs(rnd, n)
		y := rnd.Uint64()
		z := randLimbs(rnd, n)
		zBefore := toBig(z)
		carry := MulAcc(z, x, y, 0)

		want := new(big.Int).Add(zBefore, new(big.Int).Mul(toBig(x), new(big.Int).SetUint64(y)))
		got := new(big.Int).Lsh(new(big.Int).SetUint64(carry), n*64)
		got.Or(got, toBig(z))
		if got.Cmp(want) != 0 {
			t.Fatalf("MulAcc mismatch: x=%x y=%x got=%s want=%s", x, y, got, want)
		}
	}
}

func TestIsZeroAndEqual(t *testing.T) {
	zero := make([]uint64, 4)
	if IsZero(zero) != 1 {
		t.Fatal("IsZero(0) != 1")
	}
	one := []uint64{1, 0, 0, 0}
	if IsZero(one) != 0 {
		t.Fatal("IsZero(1) != 0")
	}
	if Equal(zero, one) != 0 {
		t.Fatal("Equal(0, 1) != 0")
	}
	if Equal(one, []uint64{1, 0, 0, 0}) != 1 {
		t.Fatal("Equal(1, 1) != 1")
	}
}

func TestSelect(t *testing.T) {
	a := []uint64{1, 2, 3, 4}
	b := []uint64{5, 6, 7, 8}
	z := make([]uint64, 4)
	Select(z, a, b, 1)
	if Equal(z, a) != 1 {
		t.Fatal("Select(cond=1) did not pick a")
	}
	Select(z, a, b, 0)
	if Equal(z, b) != 1 {
		t.Fatal("Select(cond=0) did not pick b")
	}
}

func TestCmpGE(t *testing.T) {
	a := []uint64{5, 0}
	b := []uint64{3, 0}
	if CmpGE(a, b) != 1 {
		t.Fatal("CmpGE(5,3) != 1")
	}
	if CmpGE(b, a) != 0 {
		t.Fatal("CmpGE(3,5) != 0")
	}
	if CmpGE(a, a) != 1 {
		t.Fatal("CmpGE(5,5) != 1")
	}
}

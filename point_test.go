// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import (
	"bytes"
	"testing"
)

func TestNewPointInfinityRoundTrip(t *testing.T) {
	ctx, params := p256Ctx(t)
	zero := make([]byte, params.ByteLen)
	o, err := NewPoint(ctx, zero, zero)
	if err != nil {
		t.Fatalf("NewPoint(O): %v", err)
	}
	x, y, err := o.XY()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(x, zero) || !bytes.Equal(y, zero) {
		t.Fatal("point at infinity did not round-trip to (0, 0)")
	}
}

func TestNewPointRejectsOffCurve(t *testing.T) {
	ctx, params := p256Ctx(t)
	badY := append([]byte(nil), params.Gy...)
	badY[len(badY)-1] ^= 1
	if _, err := NewPoint(ctx, params.Gx, badY); err != ErrNotOnCurve {
		t.Fatalf("NewPoint(off-curve): got %v, want ErrNotOnCurve", err)
	}
}

func TestNewPointRejectsShortCoordinates(t *testing.T) {
	ctx, params := p256Ctx(t)
	if _, err := NewPoint(ctx, params.Gx[:len(params.Gx)-1], params.Gy); err != ErrShortBuffer {
		t.Fatalf("NewPoint(short x): got %v, want ErrShortBuffer", err)
	}
	if _, err := NewPoint(ctx, params.Gx, params.Gy[:len(params.Gy)-1]); err != ErrShortBuffer {
		t.Fatalf("NewPoint(short y): got %v, want ErrShortBuffer", err)
	}
	if _, err := NewPoint(ctx, []byte{}, []byte{}); err != ErrShortBuffer {
		t.Fatalf("NewPoint(empty coordinates): got %v, want ErrShortBuffer", err)
	}
}

func TestNewPointRejectsOutOfRangeCoordinate(t *testing.T) {
	ctx, params := p256Ctx(t)
	tooBig := make([]byte, params.ByteLen)
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	if _, err := NewPoint(ctx, tooBig, params.Gy); err != ErrInvalidValue {
		t.Fatalf("NewPoint(out-of-range x): got %v, want ErrInvalidValue", err)
	}
}

func TestDoubleOfInfinityIsInfinity(t *testing.T) {
	ctx, params := p256Ctx(t)
	zero := make([]byte, params.ByteLen)
	o, err := NewPoint(ctx, zero, zero)
	if err != nil {
		t.Fatal(err)
	}
	doubled := o.Double()
	x, y, err := doubled.XY()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(x, zero) || !bytes.Equal(y, zero) {
		t.Fatal("double(O) != O")
	}
}

func TestAddWithInverseIsInfinity(t *testing.T) {
	ctx, params := p256Ctx(t)
	g := generatorPoint(t, ctx, params)
	negG := g.Negate()
	sum := g.Add(negG)
	x, y, err := sum.XY()
	if err != nil {
		t.Fatal(err)
	}
	zero := make([]byte, params.ByteLen)
	if !bytes.Equal(x, zero) || !bytes.Equal(y, zero) {
		t.Fatal("P + (-P) != O")
	}
}

func TestAddAndDoubleAgree(t *testing.T) {
	ctx, params := p256Ctx(t)
	g := generatorPoint(t, ctx, params)
	doubled := g.Double()
	added := g.Add(g)

	dx, dy, err := doubled.XY()
	if err != nil {
		t.Fatal(err)
	}
	ax, ay, err := added.XY()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dx, ax) || !bytes.Equal(dy, ay) {
		t.Fatal("Double(G) != Add(G, G)")
	}
}

func TestMixAddAndFullAddAgree(t *testing.T) {
	ctx, params := p256Ctx(t)
	g := generatorPoint(t, ctx, params)
	h := g.Double()

	m := ctx.m
	s := m.NewScratch()
	mixX, mixY, mixZ := ecMixAdd(m, s, h.x, h.y, h.z, g.x, g.y)
	fullX, fullY, fullZ := ecFullAdd(m, s, h.x, h.y, h.z, g.x, g.y, g.z)

	mixP := &Point{ctx: ctx, x: mixX, y: mixY, z: mixZ}
	fullP := &Point{ctx: ctx, x: fullX, y: fullY, z: fullZ}
	mx, my, err := mixP.XY()
	if err != nil {
		t.Fatal(err)
	}
	fx, fy, err := fullP.XY()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(mx, fx) || !bytes.Equal(my, fy) {
		t.Fatal("ecMixAdd and ecFullAdd disagree on H + G")
	}
}

func TestMixAddHonorsInfinityOnEitherSide(t *testing.T) {
	ctx, params := p256Ctx(t)
	g := generatorPoint(t, ctx, params)
	m := ctx.m
	s := m.NewScratch()
	zero := m.Element()
	one := m.One()

	// P1 at infinity: result should be the affine input (g.x, g.y, 1).
	x, y, z := ecMixAdd(m, s, zero, one, zero, g.x, g.y)
	got := &Point{ctx: ctx, x: x, y: y, z: z}
	gx, gy, err := got.XY()
	if err != nil {
		t.Fatal(err)
	}
	wx, wy, err := g.XY()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gx, wx) || !bytes.Equal(gy, wy) {
		t.Fatal("ecMixAdd(O, G) != G")
	}

	// Q at infinity (affine (0, 0)): result should be P1 unchanged.
	x, y, z = ecMixAdd(m, s, g.x, g.y, g.z, zero, zero)
	got = &Point{ctx: ctx, x: x, y: y, z: z}
	gx, gy, err = got.XY()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gx, wx) || !bytes.Equal(gy, wy) {
		t.Fatal("ecMixAdd(G, O) != G")
	}

	// Both at infinity: result should be O.
	x, y, z = ecMixAdd(m, s, zero, one, zero, zero, zero)
	got = &Point{ctx: ctx, x: x, y: y, z: z}
	gx, gy, err = got.XY()
	if err != nil {
		t.Fatal(err)
	}
	zeroBytes := make([]byte, params.ByteLen)
	if !bytes.Equal(gx, zeroBytes) || !bytes.Equal(gy, zeroBytes) {
		t.Fatal("ecMixAdd(O, O) != O")
	}
}

func TestResultStaysOnCurve(t *testing.T) {
	ctx, params := p256Ctx(t)
	g := generatorPoint(t, ctx, params)
	points := []*Point{g, g.Double(), g.Double().Add(g), g.Negate()}
	for i, p := range points {
		x, y, err := p.XY()
		if err != nil {
			t.Fatal(err)
		}
		if allZero(x) && allZero(y) {
			continue // point at infinity, trivially "on" the curve
		}
		xe, err := ctx.m.Element().SetBytes(ctx.m, x)
		if err != nil {
			t.Fatalf("point %d: %v", i, err)
		}
		ye, err := ctx.m.Element().SetBytes(ctx.m, y)
		if err != nil {
			t.Fatalf("point %d: %v", i, err)
		}
		if !onCurve(ctx.m, ctx.b, xe, ye) {
			t.Fatalf("point %d left the curve", i)
		}
	}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestP521DoubleStaysOnCurve(t *testing.T) {
	ctx, params := p521Ctx(t)
	g := generatorPoint(t, ctx, params)
	doubled := g.Double()
	x, y, err := doubled.XY()
	if err != nil {
		t.Fatal(err)
	}
	xe, err := ctx.m.Element().SetBytes(ctx.m, x)
	if err != nil {
		t.Fatal(err)
	}
	ye, err := ctx.m.Element().SetBytes(ctx.m, y)
	if err != nil {
		t.Fatal(err)
	}
	if !onCurve(ctx.m, ctx.b, xe, ye) {
		t.Fatal("2*G on P-521 left the curve")
	}
}

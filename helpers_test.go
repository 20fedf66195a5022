// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import (
	"testing"

	"curveware.dev/ecws/curve"
)

func p256Ctx(t *testing.T) (*Context, curve.Params) {
	t.Helper()
	params := curve.P256()
	ctx, err := NewContext(params.P, params.B, params.N)
	if err != nil {
		t.Fatalf("NewContext(P-256): %v", err)
	}
	return ctx, params
}

func p521Ctx(t *testing.T) (*Context, curve.Params) {
	t.Helper()
	params := curve.P521()
	ctx, err := NewContext(params.P, params.B, params.N)
	if err != nil {
		t.Fatalf("NewContext(P-521): %v", err)
	}
	return ctx, params
}

func generatorPoint(t *testing.T, ctx *Context, params curve.Params) *Point {
	t.Helper()
	g, err := NewPoint(ctx, params.Gx, params.Gy)
	if err != nil {
		t.Fatalf("NewPoint(G): %v", err)
	}
	return g
}

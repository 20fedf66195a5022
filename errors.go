// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ecws

import "errors"

// The package's sentinel errors replace the int error codes of the C
// interface this module generalizes (OK/NULL/NOT_ENOUGH_DATA/INVALID_VALUE/
// EC_POINT/MEMORY): every fallible constructor and operation here returns a
// Go error instead, following the teacher's extra.go convention of plain
// errors.New sentinels rather than a custom error type hierarchy.
var (
	// ErrNilArgument is returned when a required argument (a *Context, a
	// *GeneratorTable, or a byte slice) is nil (the NULL case).
	ErrNilArgument = errors.New("ecws: required argument is nil")

	// ErrShortBuffer is returned when a byte slice's length does not match
	// the context's canonical encoding length, whether shorter or longer
	// (the NOT_ENOUGH_DATA case).
	ErrShortBuffer = errors.New("ecws: buffer length does not match the curve's encoding length")

	// ErrInvalidValue is returned when an encoded field element, scalar,
	// or domain parameter is out of range or malformed (the INVALID_VALUE
	// case).
	ErrInvalidValue = errors.New("ecws: value is invalid for this context")

	// ErrNotOnCurve is returned by NewPoint when (x, y) does not satisfy
	// the curve equation (the EC_POINT case).
	ErrNotOnCurve = errors.New("ecws: point is not on the curve")

	// ErrAllocation is returned when a precomputed table cannot be built
	// at the requested size (the MEMORY case). Go's allocator panics
	// rather than returning an error on true exhaustion, so in practice
	// this guards internal size-consistency checks, such as
	// BuildGeneratorTableP256 rejecting a context whose field has no
	// limbs to store a table entry in.
	ErrAllocation = errors.New("ecws: allocation failed")
)

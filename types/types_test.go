// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestVec2_xy(tst *testing.T) {
	chk.PrintTitle("Vec2. x/y component access")
	v := NewVec2XY[Real](3, 4)
	chk.Scalar(tst, "x", 1e-15, v.X, 3)
	chk.Scalar(tst, "y", 1e-15, v.Y, 4)
	u := NewVec2[Index](7)
	if u.X != 7 || u.Y != 7 {
		tst.Errorf("NewVec2 should set both components equal, got %v", u)
	}
}

func TestCellType_roundtrip(tst *testing.T) {
	chk.PrintTitle("CellType. ASCII byte round-trip")
	cases := []byte{'.', '#', 'I', 'H', 'V', 'O', 'v', 'h'}
	for _, b := range cases {
		ct, ok := ParseCellType(b)
		if !ok {
			tst.Errorf("ParseCellType(%q) should succeed", b)
		}
		if byte(ct) != b {
			tst.Errorf("ParseCellType(%q) round-trip mismatch: got %q", b, byte(ct))
		}
	}
	if _, ok := ParseCellType('?'); ok {
		tst.Errorf("ParseCellType('?') should fail")
	}
}

func TestCellType_IsFluid(tst *testing.T) {
	chk.PrintTitle("CellType. IsFluid")
	if !Fluid.IsFluid() {
		tst.Errorf("Fluid.IsFluid() should be true")
	}
	if Obstacle.IsFluid() {
		tst.Errorf("Obstacle.IsFluid() should be false")
	}
}

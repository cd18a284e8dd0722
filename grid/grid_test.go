// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/types"
)

func TestGrid_constantPreservation(tst *testing.T) {
	chk.PrintTitle("Grid. finite-difference and donor-cell operators vanish on a constant field")
	sx, sy := types.Index(8), types.Index(8)
	u := New(sx, sy, 0.1, 0.1, OffsetU(0.1, 0.1))
	v := New(sx, sy, 0.1, 0.1, OffsetV(0.1, 0.1))
	u.Fill(2.0)
	v.Fill(2.0)

	it := u.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		chk.Scalar(tst, "Dxl", 1e-13, u.Dxl(it), 0)
		chk.Scalar(tst, "Dxr", 1e-13, u.Dxr(it), 0)
		chk.Scalar(tst, "Dyl", 1e-13, u.Dyl(it), 0)
		chk.Scalar(tst, "Dyr", 1e-13, u.Dyr(it), 0)
		chk.Scalar(tst, "Dxx", 1e-13, u.Dxx(it), 0)
		chk.Scalar(tst, "Dyy", 1e-13, u.Dyy(it), 0)
		chk.Scalar(tst, "DCVDUy", 1e-10, u.DCVDUy(it, 0.5, v), 0)
		chk.Scalar(tst, "DCUDVx", 1e-10, v.DCUDVx(it, 0.5, u), 0)
	}
}

func TestGrid_interpolateExact(tst *testing.T) {
	chk.PrintTitle("Grid. bilinear interpolation of a linear field at a half-cell offset")
	sx, sy := types.Index(6), types.Index(6)
	hx, hy := types.Real(1.0), types.Real(1.0)
	g := New(sx, sy, hx, hy, types.NewVec2XY[types.Real](0, 0))
	it := g.NewFullIterator()
	for it.First(); it.Valid(); it.Next() {
		g.Set(it, types.Real(it.X()+it.Y()))
	}
	got := g.Interpolate(0.5*hx, 0.5*hy)
	chk.Scalar(tst, "interpolate(0.5hx,0.5hy)", 1e-12, got, 1.0)
}

func TestGrid_haloRoundTrip(tst *testing.T) {
	chk.PrintTitle("Grid. GetRightBoundary/WriteLeftBoundary reproduce the sender's inner column")
	sx, sy := types.Index(5), types.Index(5)
	sender := New(sx, sy, 1, 1, OffsetP(1, 1))
	it := sender.NewFullIterator()
	for it.First(); it.Valid(); it.Next() {
		sender.Set(it, types.Real(it.Value()))
	}

	buf := sender.GetRightBoundary(true) // sender's last interior column

	receiver := New(sx, sy, 1, 1, OffsetP(1, 1))
	receiver.WriteLeftBoundary(buf)

	got := receiver.GetLeftBoundary(false)
	for i := range got {
		if got[i] != buf[i] {
			tst.Errorf("halo round-trip mismatch at %d: got %v want %v", i, got[i], buf[i])
		}
	}
}

func TestGrid_topBottomBoundariesIndependent(tst *testing.T) {
	chk.PrintTitle("Grid. GetTopBoundary and GetBottomBoundary return independent buffers")
	sx, sy := types.Index(4), types.Index(4)
	g := New(sx, sy, 1, 1, OffsetP(1, 1))
	top := g.GetTopBoundary(false)
	bottom := g.GetBottomBoundary(false)
	top[0] = 999
	if bottom[0] == 999 {
		tst.Errorf("GetTopBoundary and GetBottomBoundary must not share backing storage")
	}
}

func TestGrid_hasNaNOrInfAndAbsMax(tst *testing.T) {
	chk.PrintTitle("Grid. HasNaNOrInf and AbsMax aggregate checks")
	g := New(4, 4, 1, 1, OffsetP(1, 1))
	g.Fill(-3.5)
	if g.HasNaNOrInf() {
		tst.Errorf("finite grid flagged as NaN/Inf")
	}
	chk.Scalar(tst, "AbsMax", 1e-15, g.AbsMax(), 3.5)

	it := g.NewFullIterator()
	it.First()
	g.Set(it, math.NaN())
	if !g.HasNaNOrInf() {
		tst.Errorf("grid with a NaN cell should be flagged")
	}
}

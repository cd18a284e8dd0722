// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the owned, flat, row-major scalar field that
// backs every quantity in nsflow (U, V, P, each substance concentration),
// together with its finite-difference and donor-cell discrete operators
// and its halo scratch buffers.
package grid

import (
	"math"

	"github.com/cpmech/nsflow/iterator"
	"github.com/cpmech/nsflow/types"
)

// Grid is one Sx*Sy real-valued field with a staggering offset in physical
// space. Mutated in place by solver, substance and geometry boundary code;
// never resized after construction.
type Grid struct {
	sx, sy types.Index
	hx, hy types.Real
	offset types.MultiReal
	data   []types.Real

	haloH []types.Real // length Sx, horizontal (top/bottom row) scratch
	haloV []types.Real // length Sy, vertical (left/right column) scratch
}

// New allocates a zeroed grid of size sx*sy with mesh width (hx,hy) and
// staggering offset.
func New(sx, sy types.Index, hx, hy types.Real, offset types.MultiReal) *Grid {
	return &Grid{
		sx: sx, sy: sy, hx: hx, hy: hy, offset: offset,
		data:  make([]types.Real, int(sx)*int(sy)),
		haloH: make([]types.Real, sx),
		haloV: make([]types.Real, sy),
	}
}

// Offsets used by the four staggered field kinds, given the mesh width.
func OffsetU(hx, hy types.Real) types.MultiReal { return types.NewVec2XY(hx, hy/2) }
func OffsetV(hx, hy types.Real) types.MultiReal { return types.NewVec2XY(hx/2, hy) }
func OffsetP(hx, hy types.Real) types.MultiReal { return types.NewVec2XY(hx/2, hy/2) }
func OffsetDerived(hx, hy types.Real) types.MultiReal { return types.NewVec2XY(hx, hy) }

// Sx returns the grid width in cells, including the ghost ring.
func (g *Grid) Sx() types.Index { return g.sx }

// Sy returns the grid height in cells, including the ghost ring.
func (g *Grid) Sy() types.Index { return g.sy }

// Hx returns the mesh width in x.
func (g *Grid) Hx() types.Real { return g.hx }

// Hy returns the mesh width in y.
func (g *Grid) Hy() types.Real { return g.hy }

// Offset returns the staggering offset in physical space.
func (g *Grid) Offset() types.MultiReal { return g.offset }

// NewFullIterator returns a Full iterator sized for this grid.
func (g *Grid) NewFullIterator() iterator.Iterator { return iterator.New(g.sx, g.sy) }

// NewInteriorIterator returns an Interior iterator sized for this grid.
func (g *Grid) NewInteriorIterator() iterator.Iterator { return iterator.NewInterior(g.sx, g.sy) }

// NewBoundaryIterator returns a Boundary iterator over the given edge.
func (g *Grid) NewBoundaryIterator(edge int) iterator.Iterator {
	return iterator.NewBoundary(g.sx, g.sy, edge)
}

// At returns the value at the iterator's current position.
func (g *Grid) At(it iterator.Iterator) types.Real { return g.data[it.Value()] }

// Set overwrites the value at the iterator's current position.
func (g *Grid) Set(it iterator.Iterator, v types.Real) { g.data[it.Value()] = v }

// Add accumulates into the value at the iterator's current position.
func (g *Grid) Add(it iterator.Iterator, v types.Real) { g.data[it.Value()] += v }

// Fill sets every cell (including the ghost ring) to v.
func (g *Grid) Fill(v types.Real) {
	for i := range g.data {
		g.data[i] = v
	}
}

// InitCircle sets v at every cell whose physical-space distance from
// center is <= radius, leaving all other cells untouched.
func (g *Grid) InitCircle(center types.MultiReal, radius, v types.Real) {
	it := g.NewFullIterator()
	for it.First(); it.Valid(); it.Next() {
		px := types.Real(it.X())*g.hx - g.offset.X
		py := types.Real(it.Y())*g.hy - g.offset.Y
		dx, dy := px-center.X, py-center.Y
		if math.Sqrt(dx*dx+dy*dy) <= radius {
			g.Set(it, v)
		}
	}
}

// InitSquare sets v at every cell whose physical-space coordinates fall
// within the axis-aligned box [lo,hi], leaving all other cells untouched.
func (g *Grid) InitSquare(lo, hi types.MultiReal, v types.Real) {
	it := g.NewFullIterator()
	for it.First(); it.Valid(); it.Next() {
		px := types.Real(it.X())*g.hx - g.offset.X
		py := types.Real(it.Y())*g.hy - g.offset.Y
		if px >= lo.X && px <= hi.X && py >= lo.Y && py <= hi.Y {
			g.Set(it, v)
		}
	}
}

// ----- finite differences -------------------------------------------------

// Dxl returns the backward difference (C-L)/hx at it.
func (g *Grid) Dxl(it iterator.Iterator) types.Real {
	return (g.At(it) - g.At(it.Left())) / g.hx
}

// Dxr returns the forward difference (R-C)/hx at it.
func (g *Grid) Dxr(it iterator.Iterator) types.Real {
	return (g.At(it.Right()) - g.At(it)) / g.hx
}

// Dyl returns the backward difference (C-D)/hy at it.
func (g *Grid) Dyl(it iterator.Iterator) types.Real {
	return (g.At(it) - g.At(it.Down())) / g.hy
}

// Dyr returns the forward difference (T-C)/hy at it.
func (g *Grid) Dyr(it iterator.Iterator) types.Real {
	return (g.At(it.Top()) - g.At(it)) / g.hy
}

// Dxx returns the second difference (R+L-2C)/hx^2 at it.
func (g *Grid) Dxx(it iterator.Iterator) types.Real {
	return (g.At(it.Right()) + g.At(it.Left()) - 2*g.At(it)) / (g.hx * g.hx)
}

// Dyy returns the second difference (T+D-2C)/hy^2 at it.
func (g *Grid) Dyy(it iterator.Iterator) types.Real {
	return (g.At(it.Top()) + g.At(it.Down()) - 2*g.At(it)) / (g.hy * g.hy)
}

// Interpolate performs bilinear interpolation at physical-space (x,y),
// clamped to the domain extent implied by this grid's total size and
// staggering offset.
func (g *Grid) Interpolate(x, y types.Real) types.Real {
	lx := types.Real(g.sx-2) * g.hx
	ly := types.Real(g.sy-2) * g.hy
	x = clamp(x, -g.offset.X, lx-g.offset.X)
	y = clamp(y, -g.offset.Y, ly-g.offset.Y)

	fx := (x + g.offset.X) / g.hx
	fy := (y + g.offset.Y) / g.hy
	ix := types.Index(math.Floor(fx))
	iy := types.Index(math.Floor(fy))
	if ix >= g.sx-1 {
		ix = g.sx - 2
	}
	if iy >= g.sy-1 {
		iy = g.sy - 2
	}
	wx := fx - types.Real(ix)
	wy := fy - types.Real(iy)

	c := g.data[iy*g.sx+ix]
	r := g.data[iy*g.sx+ix+1]
	t := g.data[(iy+1)*g.sx+ix]
	tr := g.data[(iy+1)*g.sx+ix+1]

	w1 := (1 - wx) * (1 - wy)
	w2 := wx * (1 - wy)
	w3 := (1 - wx) * wy
	w4 := wx * wy
	return w1*c + w2*r + w3*t + w4*tr
}

func clamp(v, lo, hi types.Real) types.Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ----- donor-cell convective terms -----------------------------------------

// DCUDUx is the donor-cell discretization of u*du/dx at it, blending
// centered and upwind differencing by alpha.
func (g *Grid) DCUDUx(it iterator.Iterator, alpha types.Real) types.Real {
	c, l, r := g.At(it), g.At(it.Left()), g.At(it.Right())
	central := (c+r)*(c+r) - (l+c)*(l+c)
	upwind := math.Abs(c+r)*(c-r) - math.Abs(l+c)*(l-c)
	return (central + alpha*upwind) / (4 * g.hx)
}

// DCVDUy is the donor-cell discretization of v*du/dy at it. v is the
// companion V-grid sampled at the same iterator position.
func (g *Grid) DCVDUy(it iterator.Iterator, alpha types.Real, v *Grid) types.Real {
	c, t, d := g.At(it), g.At(it.Top()), g.At(it.Down())
	vC, vR, vD, vRD := v.At(it), v.At(it.Right()), v.At(it.Down()), v.At(it.Down().Right())
	central := (vC+vR)*(c+t) - (vD+vRD)*(d+c)
	upwind := math.Abs(vC+vR)*(c-t) - math.Abs(vD+vRD)*(d-c)
	return (central + alpha*upwind) / (4 * g.hy)
}

// DCUDVx is the donor-cell discretization of u*dv/dx at it. u is the
// companion U-grid sampled at the same iterator position.
func (g *Grid) DCUDVx(it iterator.Iterator, alpha types.Real, u *Grid) types.Real {
	c, r, l := g.At(it), g.At(it.Right()), g.At(it.Left())
	uC, uT, uL, uLT := u.At(it), u.At(it.Top()), u.At(it.Left()), u.At(it.Left().Top())
	central := (c+r)*(uC+uT) - (l+c)*(uL+uLT)
	upwind := math.Abs(uC+uT)*(c-r) - math.Abs(uL+uLT)*(l-c)
	return (central + alpha*upwind) / (4 * g.hx)
}

// DCVDVy is the donor-cell discretization of v*dv/dy at it.
func (g *Grid) DCVDVy(it iterator.Iterator, alpha types.Real) types.Real {
	c, t, d := g.At(it), g.At(it.Top()), g.At(it.Down())
	central := (c+t)*(c+t) - (d+c)*(d+c)
	upwind := math.Abs(c+t)*(c-t) - math.Abs(d+c)*(d-c)
	return (central + alpha*upwind) / (4 * g.hy)
}

// DCdCux is the donor-cell discretization of d(C*u)/dx at it, used for
// substance advection. u is the companion U-grid.
func (g *Grid) DCdCux(it iterator.Iterator, gamma types.Real, u *Grid) types.Real {
	c, r, l := g.At(it), g.At(it.Right()), g.At(it.Left())
	uC, uL := u.At(it), u.At(it.Left())
	central := uC*(r+c)/2 - uL*(c+l)/2
	upwind := gamma * (math.Abs(uC)*(c-r)/2 - math.Abs(uL)*(l-c)/2)
	return (central + upwind) / g.hx
}

// DCdCvy is the donor-cell discretization of d(C*v)/dy at it, used for
// substance advection. v is the companion V-grid.
func (g *Grid) DCdCvy(it iterator.Iterator, gamma types.Real, v *Grid) types.Real {
	c, t, d := g.At(it), g.At(it.Top()), g.At(it.Down())
	vC, vD := v.At(it), v.At(it.Down())
	central := vC*(t+c)/2 - vD*(c+d)/2
	upwind := gamma * (math.Abs(vC)*(c-t)/2 - math.Abs(vD)*(d-c)/2)
	return (central + upwind) / g.hy
}

// ----- aggregate queries ---------------------------------------------------

// Max returns the maximum value over the full buffer.
func (g *Grid) Max() types.Real { return reduce(g.data, math.Inf(-1), math.Max) }

// Min returns the minimum value over the full buffer.
func (g *Grid) Min() types.Real { return reduce(g.data, math.Inf(1), math.Min) }

// AbsMax returns the maximum absolute value over the full buffer.
func (g *Grid) AbsMax() types.Real {
	m := 0.0
	for _, v := range g.data {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func reduce(data []types.Real, init types.Real, op func(a, b types.Real) types.Real) types.Real {
	m := init
	for _, v := range data {
		m = op(m, v)
	}
	return m
}

// HasNaNOrInf reports whether any cell holds a NaN or infinite value; used
// by Compute to detect NumericFailure.
func (g *Grid) HasNaNOrInf() bool {
	for _, v := range g.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// ----- halo accessors -------------------------------------------------------

// GetLeftBoundary returns a copy of the leftmost cell column (offset=false)
// or the first interior column (offset=true).
func (g *Grid) GetLeftBoundary(offset bool) []types.Real {
	x := types.Index(0)
	if offset {
		x = 1
	}
	return g.copyColumn(x)
}

// GetRightBoundary returns a copy of the rightmost cell column (offset=false)
// or the last interior column (offset=true).
func (g *Grid) GetRightBoundary(offset bool) []types.Real {
	x := g.sx - 1
	if offset {
		x = g.sx - 2
	}
	return g.copyColumn(x)
}

// GetTopBoundary returns a copy of the topmost cell row (offset=false) or
// the last interior row (offset=true). Independent of GetBottomBoundary's
// buffer (each call allocates its own slice).
func (g *Grid) GetTopBoundary(offset bool) []types.Real {
	y := g.sy - 1
	if offset {
		y = g.sy - 2
	}
	return g.copyRow(y)
}

// GetBottomBoundary returns a copy of the bottommost cell row (offset=false)
// or the first interior row (offset=true). Independent of GetTopBoundary's
// buffer.
func (g *Grid) GetBottomBoundary(offset bool) []types.Real {
	y := types.Index(0)
	if offset {
		y = 1
	}
	return g.copyRow(y)
}

// WriteLeftBoundary overwrites the outermost cell column from buf.
func (g *Grid) WriteLeftBoundary(buf []types.Real) { g.writeColumn(0, buf) }

// WriteRightBoundary overwrites the outermost cell column from buf.
func (g *Grid) WriteRightBoundary(buf []types.Real) { g.writeColumn(g.sx-1, buf) }

// WriteTopBoundary overwrites the outermost cell row from buf.
func (g *Grid) WriteTopBoundary(buf []types.Real) { g.writeRow(g.sy-1, buf) }

// WriteBottomBoundary overwrites the outermost cell row from buf.
func (g *Grid) WriteBottomBoundary(buf []types.Real) { g.writeRow(0, buf) }

func (g *Grid) copyColumn(x types.Index) []types.Real {
	out := make([]types.Real, g.sy)
	for y := types.Index(0); y < g.sy; y++ {
		out[y] = g.data[y*g.sx+x]
	}
	return out
}

func (g *Grid) copyRow(y types.Index) []types.Real {
	out := make([]types.Real, g.sx)
	copy(out, g.data[y*g.sx:y*g.sx+g.sx])
	return out
}

func (g *Grid) writeColumn(x types.Index, buf []types.Real) {
	for y := types.Index(0); y < g.sy && int(y) < len(buf); y++ {
		g.data[y*g.sx+x] = buf[y]
	}
}

func (g *Grid) writeRow(y types.Index, buf []types.Real) {
	n := copy(g.data[y*g.sx:y*g.sx+g.sx], buf)
	_ = n
}

// HaloScratchH returns the grid's reusable horizontal (row) scratch buffer,
// of length Sx, owned jointly by the Grid/Communicator pair.
func (g *Grid) HaloScratchH() []types.Real { return g.haloH }

// HaloScratchV returns the grid's reusable vertical (column) scratch
// buffer, of length Sy.
func (g *Grid) HaloScratchV() []types.Real { return g.haloV }

// Data exposes the raw backing slice for output writers; callers must not
// retain it across a mutating call.
func (g *Grid) Data() []types.Real { return g.data }

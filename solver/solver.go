// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the Red/Black successive-over-relaxation
// smoother for the discrete pressure-Poisson equation.
package solver

import (
	"math"

	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/iterator"
	"github.com/cpmech/nsflow/types"
)

// Solver runs one Red/Black SOR half-sweep at a time; it holds no mutable
// state of its own beyond the relaxation factor, matching the spec's note
// that the virtual solver hierarchy collapses to one smoothing closure.
type Solver struct {
	Omega types.Real
}

// New returns a Solver with the given SOR relaxation factor.
func New(omega types.Real) *Solver {
	return &Solver{Omega: omega}
}

// harmonicH2 returns h^2 = (hx^2*hy^2) / (2*(hx^2+hy^2)), the effective
// squared mesh width in the discrete Poisson stencil.
func harmonicH2(hx, hy types.Real) types.Real {
	return (hx * hx * hy * hy) / (2 * (hx*hx + hy*hy))
}

// LocalResidual returns the discrete Poisson residual at it:
// (P_L+P_R)/hx^2 + (P_D+P_T)/hy^2 - P_C/h^2 - rhs_C.
func LocalResidual(p, rhs *grid.Grid, it iterator.Iterator) types.Real {
	hx, hy := p.Hx(), p.Hy()
	h2 := harmonicH2(hx, hy)
	lap := (p.At(it.Left())+p.At(it.Right()))/(hx*hx) + (p.At(it.Down())+p.At(it.Top()))/(hy*hy) - p.At(it)/h2
	return lap - rhs.At(it)
}

// RedCycle sweeps interior cells with (x+y) even, skipping non-Fluid
// cells, updating P += omega*h^2*residual. Returns sqrt(sum(res^2)/n).
func (s *Solver) RedCycle(geo *geometry.Geometry, p, rhs *grid.Grid) types.Real {
	return s.sweep(geo, p, rhs, 0)
}

// BlackCycle sweeps interior cells with (x+y) odd.
func (s *Solver) BlackCycle(geo *geometry.Geometry, p, rhs *grid.Grid) types.Real {
	return s.sweep(geo, p, rhs, 1)
}

func (s *Solver) sweep(geo *geometry.Geometry, p, rhs *grid.Grid, parity types.Index) types.Real {
	h2 := harmonicH2(p.Hx(), p.Hy())
	var sumSq types.Real
	var n int
	it := p.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		if (it.X()+it.Y())%2 != parity {
			continue
		}
		if !geo.CellAt(it.Value()).IsFluid() {
			continue
		}
		res := LocalResidual(p, rhs, it)
		p.Add(it, s.Omega*h2*res)
		sumSq += res * res
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sumSq / types.Real(n))
}

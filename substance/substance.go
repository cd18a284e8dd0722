// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package substance implements N coupled scalar transport fields with
// diffusion, donor-cell convection and logistic plus pairwise reaction
// terms (§4.5).
package substance

import (
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/types"
)

// Substance owns N species grids, their diffusion/population/donor-cell
// constants and the N x N reaction matrix.
type Substance struct {
	N     int
	C     []*grid.Grid  // species concentration grids, cell-centered like P
	D     []types.Real  // diffusion coefficient d_i
	L     []types.Real  // population limit L_i
	Gamma []types.Real  // donor-cell weight gamma_i
	R     [][]types.Real // N x N reaction coefficients; R[i][i] is logistic growth

	old [][]types.Real // scratch: snapshot of C before the step, for synchronous reaction evaluation
}

// New allocates a Substance with N species on grids shaped like the
// pressure grid (cell-centered offset, same mesh width).
func New(n int, sx, sy types.Index, hx, hy types.Real) *Substance {
	s := &Substance{
		N:     n,
		C:     make([]*grid.Grid, n),
		D:     make([]types.Real, n),
		L:     make([]types.Real, n),
		Gamma: make([]types.Real, n),
		R:     make([][]types.Real, n),
		old:   make([][]types.Real, n),
	}
	offset := grid.OffsetP(hx, hy)
	for i := 0; i < n; i++ {
		s.C[i] = grid.New(sx, sy, hx, hy, offset)
		s.R[i] = make([]types.Real, n)
	}
	return s
}

// Step advances every species one explicit-Euler time step dt, given the
// current velocity fields U,V, then enforces substance boundary
// conditions. All pairwise/logistic reaction terms are evaluated from the
// OLD concentration snapshot, matching the synchronous semantics mandated
// by §4.5 (no within-step feedback).
func (s *Substance) Step(geo *geometry.Geometry, dt types.Real, u, v *grid.Grid) {
	s.snapshot()
	for i := 0; i < s.N; i++ {
		s.stepSpecies(geo, i, dt, u, v)
	}
	for i := 0; i < s.N; i++ {
		geo.ApplyBoundaryC(s.C[i], i)
		geo.ApplyBoundaryObstaclesC(s.C[i])
	}
}

func (s *Substance) snapshot() {
	for i, g := range s.C {
		data := g.Data()
		if len(s.old[i]) != len(data) {
			s.old[i] = make([]types.Real, len(data))
		}
		copy(s.old[i], data)
	}
}

// oldAt returns species i's pre-step value at row-major index idx.
func (s *Substance) oldAt(i int, idx types.Index) types.Real { return s.old[i][idx] }

func (s *Substance) stepSpecies(geo *geometry.Geometry, i int, dt types.Real, u, v *grid.Grid) {
	c := s.C[i]
	di, li, gi := s.D[i], s.L[i], s.Gamma[i]
	out := append([]types.Real(nil), c.Data()...)
	it := c.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		if !geo.CellAt(it.Value()).IsFluid() {
			continue
		}
		diffusion := di * (c.Dxx(it) + c.Dyy(it))
		convection := c.DCdCux(it, gi, u) + c.DCdCvy(it, gi, v)

		cOld := s.oldAt(i, it.Value())
		var logistic types.Real
		if li != 0 {
			logistic = s.R[i][i] * cOld * (li - cOld) / li
		}
		var pairwise types.Real
		for j := 0; j < s.N; j++ {
			if j == i {
				continue
			}
			pairwise += s.R[i][j] * cOld * s.oldAt(j, it.Value())
		}

		next := cOld + dt*diffusion - dt*convection + dt*logistic + dt*pairwise
		out[it.Value()] = next
	}
	copy(c.Data(), out)
}

// InitCircle seeds species i at value v within radius of center.
func (s *Substance) InitCircle(i int, center types.MultiReal, radius, v types.Real) {
	s.C[i].InitCircle(center, radius, v)
}

// InitFreeBit seeds species i to 1.0 at cell idx when bit i of mask is set
// (the bit-encoded free-geometry initializer of §4.5).
func (s *Substance) InitFreeBit(mask byte, idx types.Index) {
	for i := 0; i < s.N; i++ {
		if mask&(1<<uint(i)) != 0 {
			s.C[i].Data()[idx] = 1.0
		}
	}
}

// MaxAbsAny returns the largest |C_i| across every species, used by Compute
// to detect NumericFailure (overflow).
func (s *Substance) MaxAbsAny() types.Real {
	var m types.Real
	for _, g := range s.C {
		if a := g.AbsMax(); a > m {
			m = a
		}
	}
	return m
}

// HasNaNOrInf reports whether any species grid holds a NaN or Inf value.
func (s *Substance) HasNaNOrInf() bool {
	for _, g := range s.C {
		if g.HasNaNOrInf() {
			return true
		}
	}
	return false
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substance

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
)

func TestSubstance_reactionBenchmarkStaysBounded(tst *testing.T) {
	chk.PrintTitle("Substance. two-species reaction-only benchmark stays bounded and finite")
	geo := geometry.NewDefault(3, 3, 1, 1, 0)
	h := geo.H()
	s := New(2, geo.S.X, geo.S.Y, h.X, h.Y)
	s.L[0], s.L[1] = 2, 10
	s.R[0][0], s.R[0][1] = -0.11, 0.018
	s.R[1][0], s.R[1][1] = -0.08, 0.1
	s.C[0].Fill(0.4)
	s.C[1].Fill(1.3)

	zeroU := grid.New(geo.S.X, geo.S.Y, h.X, h.Y, grid.OffsetU(h.X, h.Y))
	zeroV := grid.New(geo.S.X, geo.S.Y, h.X, h.Y, grid.OffsetV(h.X, h.Y))

	const dt = 0.05
	const tend = 500.0
	steps := int(tend / dt)
	for k := 0; k < steps; k++ {
		s.Step(geo, dt, zeroU, zeroV)
		if s.HasNaNOrInf() {
			tst.Fatalf("step %d: NaN or Inf encountered", k)
		}
		if s.MaxAbsAny() > 1000 {
			tst.Fatalf("step %d: concentration exceeded 1000 (got %v)", k, s.MaxAbsAny())
		}
	}

	it := s.C[0].NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		c0 := s.C[0].At(it)
		c1 := s.C[1].At(it)
		if math.IsNaN(c0) || c0 < 0 || c0 > 20 {
			tst.Errorf("species 0 left [0,20]: got %v", c0)
		}
		if math.IsNaN(c1) || c1 < 0 || c1 > 20 {
			tst.Errorf("species 1 left [0,20]: got %v", c1)
		}
	}
}

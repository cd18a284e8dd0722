// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
)

func TestSolver_redBlackGeometricConvergence(tst *testing.T) {
	chk.PrintTitle("Solver. Red/Black SOR residual shrinks geometrically from a point-indicator pressure")
	geo := geometry.NewDefault(8, 8, 1, 1, 0)
	h := geo.H()
	p := grid.New(geo.S.X, geo.S.Y, h.X, h.Y, grid.OffsetP(h.X, h.Y))
	rhs := grid.New(geo.S.X, geo.S.Y, h.X, h.Y, grid.OffsetP(h.X, h.Y))

	mid := int(geo.S.X)/2*int(geo.S.X) + int(geo.S.X)/2
	it := p.NewFullIterator()
	for it.First(); it.Valid(); it.Next() {
		if int(it.Value()) == mid {
			p.Set(it, 1.0)
			break
		}
	}

	sv := New(1.7)

	prevRes := math.Inf(1)
	for k := 0; k < 6; k++ {
		redRes := sv.RedCycle(geo, p, rhs)
		blackRes := sv.BlackCycle(geo, p, rhs)
		res := math.Max(redRes, blackRes)
		if k > 0 {
			if res > 0.95*prevRes {
				tst.Errorf("cycle %d: residual %.6e did not shrink by at least 5%% from %.6e", k, res, prevRes)
			}
		}
		prevRes = res
	}
}

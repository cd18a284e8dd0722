// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/types"
)

// TestExchangeBoundary_2x2Decomposition runs a 2x2 rank decomposition of an
// 18x18 global interior over an in-process SimCluster: each rank fills its
// own local subdomain's interior with its rank id and exchanges halos once,
// then every ghost cell is checked against the id of the rank that owns the
// physically adjacent subdomain.
func TestExchangeBoundary_2x2Decomposition(tst *testing.T) {
	chk.PrintTitle("Comm. ExchangeBoundary fills every ghost cell from the correct neighbor rank")
	const n = 4
	transports := NewSimCluster(n)

	grids := make([]*grid.Grid, n)
	comms := make([]*Communicator, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for r := 0; r < n; r++ {
		go func(r int) {
			defer wg.Done()
			c, err := New(transports[r], 18, 18)
			if err != nil {
				tst.Errorf("rank %d: New failed: %v", r, err)
				return
			}
			e := c.Extent()
			localSx := types.Index(e.X1-e.X0) + 2
			localSy := types.Index(e.Y1-e.Y0) + 2
			g := grid.New(localSx, localSy, 1, 1, grid.OffsetP(1, 1))
			it := g.NewInteriorIterator()
			for it.First(); it.Valid(); it.Next() {
				g.Set(it, types.Real(r))
			}
			c.ExchangeBoundary(g)
			comms[r] = c
			grids[r] = g
		}(r)
	}
	wg.Wait()

	ghostAt := func(g *grid.Grid, x, y types.Index) types.Real {
		return g.Data()[y*g.Sx()+x]
	}

	// rank 0 (bottom-left): right ghost <- rank 1, top ghost <- rank 2,
	// left/bottom ghosts stay zero (no neighbor there).
	sx0, sy0 := grids[0].Sx(), grids[0].Sy()
	chk.Scalar(tst, "rank0 right ghost from rank1", 1e-15, ghostAt(grids[0], sx0-1, 1), 1)
	chk.Scalar(tst, "rank0 top ghost from rank2", 1e-15, ghostAt(grids[0], 1, sy0-1), 2)
	chk.Scalar(tst, "rank0 left ghost untouched", 1e-15, ghostAt(grids[0], 0, 1), 0)
	chk.Scalar(tst, "rank0 bottom ghost untouched", 1e-15, ghostAt(grids[0], 1, 0), 0)

	// rank 3 (top-right): left ghost <- rank 2, bottom ghost <- rank 1.
	chk.Scalar(tst, "rank3 left ghost from rank2", 1e-15, ghostAt(grids[3], 0, 1), 2)
	chk.Scalar(tst, "rank3 bottom ghost from rank1", 1e-15, ghostAt(grids[3], 1, 0), 1)
}

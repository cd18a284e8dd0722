// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/iterator"
	"github.com/cpmech/nsflow/types"
)

// InitSubstanceEdges allocates one zero-valued Edges table per substance
// species. The zero value is Dirichlet with value 0, so every outer edge of
// every species is zero-Dirichlet; the substance file has no key that
// changes these tables.
func (g *Geometry) InitSubstanceEdges(n int) {
	g.C = make([]Edges, n)
}

// ObstacleForceFromPressure computes the tagged island's net pressure
// force by summing, over each obstacle cell's exposed Fluid-facing faces
// (per the baked neighbor code), the pressure at that face times the face
// area (mesh width in the orthogonal direction), oriented along the
// outward normal of the obstacle (into the fluid).
func (g *Geometry) ObstacleForceFromPressure(p *grid.Grid, tag int) (fx, fy types.Real) {
	it := iterator.NewObstacle(g.S.X, g.S.Y, g.Cells)
	for it.First(); it.Valid(); it.Next() {
		if int(g.ObstacleTag(it.Value())) != tag {
			continue
		}
		code := g.NeighborCode[it.Value()]
		if code&2 == 0 { // top face exposed to fluid
			fy += p.At(it.Top()) * g.h.X
		}
		if code&8 == 0 { // bottom face exposed to fluid
			fy -= p.At(it.Down()) * g.h.X
		}
		if code&4 == 0 { // right face exposed to fluid
			fx += p.At(it.Right()) * g.h.Y
		}
		if code&1 == 0 { // left face exposed to fluid
			fx -= p.At(it.Left()) * g.h.Y
		}
	}
	return fx, fy
}

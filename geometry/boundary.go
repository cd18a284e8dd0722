// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/iterator"
	"github.com/cpmech/nsflow/types"
)

// fieldKind distinguishes how a velocity component relates to one edge's
// outward normal; P and substance fields are always Scalar.
type fieldKind int

const (
	scalarField fieldKind = iota
	normalField
	tangentField
)

// innerOf returns the interior neighbor used as "inner" in the mirrored
// ghost formulas, for the given edge.
func innerOf(it iterator.Iterator, edge int) iterator.Iterator {
	switch edge {
	case iterator.EdgeBottom:
		return it.Top()
	case iterator.EdgeTop:
		return it.Down()
	case iterator.EdgeLeft:
		return it.Right()
	case iterator.EdgeRight:
		return it.Left()
	}
	return it
}

// hOf returns the mesh width normal to the given edge.
func hOf(g *Geometry, edge int) types.Real {
	switch edge {
	case iterator.EdgeBottom, iterator.EdgeTop:
		return g.h.Y
	default:
		return g.h.X
	}
}

// applyScalarEdge enforces P/C-style boundary conditions: the same
// mirrored ghost formula on every edge, second-order accurate.
func applyScalarEdge(g *Geometry, fld *grid.Grid, edge int, bc EdgeBC, t types.Real) {
	h := hOf(g, edge)
	be := iterator.NewBoundary(g.S.X, g.S.Y, edge)
	for be.First(); be.Valid(); be.Next() {
		if g.Cells[be.Value()].IsFluid() {
			continue
		}
		inner := innerOf(be, edge)
		v := bc.At(t)
		switch bc.Kind {
		case types.Dirichlet:
			fld.Set(be, 2*v-fld.At(inner))
		case types.Neumann:
			fld.Set(be, fld.At(inner)-h*v)
		}
	}
}

// applyVelocityEdge enforces a velocity component's boundary condition on
// one edge, given whether that component is normal or tangential there.
func applyVelocityEdge(g *Geometry, fld *grid.Grid, edge int, bc EdgeBC, kind fieldKind, t types.Real) {
	h := hOf(g, edge)
	be := iterator.NewBoundary(g.S.X, g.S.Y, edge)
	for be.First(); be.Valid(); be.Next() {
		if g.Cells[be.Value()].IsFluid() {
			continue
		}
		inner := innerOf(be, edge)
		v := bc.At(t)
		if bc.ProfileFunc != nil {
			v = bc.ProfileFunc(edgePosition(be, edge, g))
		}
		switch bc.Kind {
		case types.Dirichlet:
			if kind == normalField {
				fld.Set(be, v)
				fld.Set(inner, v)
			} else {
				fld.Set(be, 2*v-fld.At(inner))
			}
		case types.Neumann:
			fld.Set(be, fld.At(inner)-h*v)
		}
	}
}

// edgePosition returns the 0..1 relative position of a boundary cell along
// its edge, used by parabolic-profile boundary values.
func edgePosition(it iterator.Iterator, edge int, g *Geometry) types.Real {
	switch edge {
	case iterator.EdgeLeft, iterator.EdgeRight:
		return types.Real(it.Y()) / types.Real(g.S.Y-1)
	default:
		return types.Real(it.X()) / types.Real(g.S.X-1)
	}
}

// ParabolicProfile returns a ProfileFunc peaking at `peak` at the edge
// midpoint and vanishing at the two ends, matching the classic
// Poiseuille-style inflow used by the driven-channel fixtures.
func ParabolicProfile(peak types.Real) func(pos types.Real) types.Real {
	return func(pos types.Real) types.Real {
		return 4 * peak * pos * (1 - pos)
	}
}

// ApplyBoundaryU enforces the U boundary condition on all four edges.
// Interior obstacle cells are handled by ApplyBoundaryObstaclesUVP.
func (g *Geometry) ApplyBoundaryU(u, v, p *grid.Grid, t types.Real) {
	applyVelocityEdge(g, u, iterator.EdgeBottom, g.U[0], tangentField, t)
	applyVelocityEdge(g, u, iterator.EdgeRight, g.U[1], normalField, t)
	applyVelocityEdge(g, u, iterator.EdgeTop, g.U[2], tangentField, t)
	applyVelocityEdge(g, u, iterator.EdgeLeft, g.U[3], normalField, t)
}

// ApplyBoundaryV enforces the V boundary condition on all four edges.
func (g *Geometry) ApplyBoundaryV(u, v, p *grid.Grid, t types.Real) {
	applyVelocityEdge(g, v, iterator.EdgeBottom, g.V[0], normalField, t)
	applyVelocityEdge(g, v, iterator.EdgeRight, g.V[1], tangentField, t)
	applyVelocityEdge(g, v, iterator.EdgeTop, g.V[2], normalField, t)
	applyVelocityEdge(g, v, iterator.EdgeLeft, g.V[3], tangentField, t)
}

// ApplyBoundaryP enforces the P boundary condition on all four edges, then
// averages the four corner cells from their two interior neighbors.
func (g *Geometry) ApplyBoundaryP(p *grid.Grid, t types.Real) {
	for e := 1; e <= 4; e++ {
		applyScalarEdge(g, p, e, g.P[e-1], t)
	}
	g.averageCorners(p)
}

// ApplyBoundaryC enforces one condition per outer edge for substance
// species idx: the descriptors of g.C[idx] when that table exists (after
// InitSubstanceEdges: zero-Dirichlet on every edge), zero-Neumann on every
// edge otherwise. The condition is chosen per edge, not per cell type:
// Obstacle cells and other non-Fluid boundary cells on the same edge get
// the same treatment.
func (g *Geometry) ApplyBoundaryC(c *grid.Grid, idx int) {
	edges := Edges{
		{Value: 0, Kind: types.Neumann},
		{Value: 0, Kind: types.Neumann},
		{Value: 0, Kind: types.Neumann},
		{Value: 0, Kind: types.Neumann},
	}
	if idx < len(g.C) {
		edges = g.C[idx]
	}
	for e := 1; e <= 4; e++ {
		applyScalarEdge(g, c, e, edges[e-1], 0)
	}
}

// averageCorners sets each of P's four corner cells to the average of its
// two interior-facing neighbors.
func (g *Geometry) averageCorners(p *grid.Grid) {
	sx, sy := g.S.X, g.S.Y
	set := func(corner iterator.Iterator, a, b iterator.Iterator) {
		p.Set(corner, 0.5*(p.At(a)+p.At(b)))
	}
	bl := iterator.Corner(sx, sy, 1)
	set(bl, bl.Right(), bl.Top())
	br := iterator.Corner(sx, sy, 2)
	set(br, br.Left(), br.Top())
	tr := iterator.Corner(sx, sy, 3)
	set(tr, tr.Left(), tr.Down())
	tl := iterator.Corner(sx, sy, 4)
	set(tl, tl.Right(), tl.Down())
}

// ----- interior obstacles ---------------------------------------------------

// ApplyBoundaryObstaclesUVP applies the baked-neighbor-code treatment of
// §4.3 to every interior Obstacle cell.
func (g *Geometry) ApplyBoundaryObstaclesUVP(u, v, p *grid.Grid) {
	it := iterator.NewObstacle(g.S.X, g.S.Y, g.Cells)
	for it.First(); it.Valid(); it.Next() {
		code := g.NeighborCode[it.Value()]
		switch code {
		case 13: // N: top fluid
			u.Set(it, -u.At(it.Top()))
			v.Set(it, 0)
			p.Set(it, p.At(it.Top()))
		case 11: // E: right fluid
			v.Set(it, -v.At(it.Right()))
			u.Set(it, 0)
			p.Set(it, p.At(it.Right()))
		case 7: // S: down fluid
			u.Set(it, -u.At(it.Down()))
			v.Set(it, 0)
			v.Set(it.Down(), 0)
			p.Set(it, p.At(it.Down()))
		case 14: // W: left fluid
			u.Set(it, 0)
			u.Set(it.Left(), 0)
			v.Set(it, -v.At(it.Left()))
			p.Set(it, p.At(it.Left()))
		case 3: // SE: right+down fluid
			u.Set(it, 0)
			v.Set(it, -v.At(it.Right()))
			v.Set(it.Down(), 0)
			p.Set(it, 0.5*(p.At(it.Right())+p.At(it.Down())))
		case 9: // NE: right+top fluid
			p.Set(it, 0.5*(p.At(it.Right())+p.At(it.Top())))
		case 12: // NW: left+top fluid
			u.Set(it, -u.At(it.Top()))
			u.Set(it.Left(), 0)
			v.Set(it, 0)
			p.Set(it, 0.5*(p.At(it.Left())+p.At(it.Top())))
		case 6: // SW: left+down fluid
			u.Set(it, -u.At(it.Down()))
			u.Set(it.Left(), 0)
			v.Set(it, -v.At(it.Left()))
			v.Set(it.Down(), 0)
			p.Set(it, 0.5*(p.At(it.Left())+p.At(it.Down())))
		}
	}
}

// ApplyBoundaryObstaclesC applies reflective, sign-flipped treatment of a
// substance field at interior obstacle cells, using the same baked codes
// as the velocity/pressure treatment but always reflecting rather than
// enforcing no-slip.
func (g *Geometry) ApplyBoundaryObstaclesC(c *grid.Grid) {
	it := iterator.NewObstacle(g.S.X, g.S.Y, g.Cells)
	for it.First(); it.Valid(); it.Next() {
		code := g.NeighborCode[it.Value()]
		switch code {
		case 13:
			c.Set(it, -c.At(it.Top()))
		case 11:
			c.Set(it, -c.At(it.Right()))
		case 7:
			c.Set(it, -c.At(it.Down()))
		case 14:
			c.Set(it, -c.At(it.Left()))
		case 3:
			c.Set(it, 0.5*(-c.At(it.Right())-c.At(it.Down())))
		case 9:
			c.Set(it, 0.5*(-c.At(it.Right())-c.At(it.Top())))
		case 12:
			c.Set(it, 0.5*(-c.At(it.Left())-c.At(it.Top())))
		case 6:
			c.Set(it, 0.5*(-c.At(it.Left())-c.At(it.Down())))
		}
	}
}

// Validate reports InvalidConfig when an edge was configured with a
// V_Inflow/V_Slip condition on a horizontal edge or an H_Slip condition on
// a vertical edge -- geometrically impossible combinations.
func (g *Geometry) Validate() error {
	for e := 1; e <= 4; e++ {
		horizontal := e == iterator.EdgeBottom || e == iterator.EdgeTop
		be := iterator.NewBoundary(g.S.X, g.S.Y, e)
		for be.First(); be.Valid(); be.Next() {
			ct := g.Cells[be.Value()]
			if ct == types.VInflow && horizontal {
				return chk.Err("InvalidConfig: V_Inflow cell found on a horizontal edge")
			}
			if ct == types.VSlip && horizontal {
				return chk.Err("InvalidConfig: V_Slip cell found on a horizontal edge")
			}
			if ct == types.HSlip && !horizontal {
				return chk.Err("InvalidConfig: H_Slip cell found on a vertical edge")
			}
		}
	}
	return nil
}

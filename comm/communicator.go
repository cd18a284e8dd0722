// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/types"
)

// Extent is the {x0,x1,y0,y1} interior-cell range (in the GLOBAL index
// space, ghost ring excluded) a rank owns.
type Extent struct {
	X0, X1, Y0, Y1 int
}

// Communicator owns the process topology, neighbor resolution, halo
// exchange and global reductions for one rank's subdomain.
type Communicator struct {
	transport Transport
	rank      int
	size      int
	tidx      types.MultiIndex
	tdim      types.MultiIndex
	evenodd   bool
	extent    Extent
}

// layoutFor returns the process-grid dimensions for the supported total
// process counts {1,2,4}.
func layoutFor(size int) (types.MultiIndex, error) {
	switch size {
	case 1:
		return types.NewVec2XY[types.Index](1, 1), nil
	case 2:
		return types.NewVec2XY[types.Index](2, 1), nil
	case 4:
		return types.NewVec2XY[types.Index](2, 2), nil
	}
	return types.MultiIndex{}, chk.Err("InvalidConfig: unsupported process count %d (must be 1, 2 or 4)", size)
}

// New builds a Communicator from a Transport and the GLOBAL interior
// extent (nx,ny), splitting it evenly across the transport's process
// grid.
func New(transport Transport, nx, ny int) (*Communicator, error) {
	rank := transport.Rank()
	size := transport.Size()
	tdim, err := layoutFor(size)
	if err != nil {
		return nil, err
	}
	tidx := types.NewVec2XY(types.Index(rank)%tdim.X, types.Index(rank)/tdim.X)
	c := &Communicator{
		transport: transport,
		rank:      rank,
		size:      size,
		tidx:      tidx,
		tdim:      tdim,
		evenodd:   (tidx.X^tidx.Y)&1 == 1,
	}
	c.extent = splitExtent(nx, ny, tidx, tdim)
	return c, nil
}

// splitExtent partitions the global [0,nx)x[0,ny) interior index range
// into tdim.X * tdim.Y blocks, giving the remainder cells to the last
// block along each axis.
func splitExtent(nx, ny int, tidx, tdim types.MultiIndex) Extent {
	bx := nx / int(tdim.X)
	by := ny / int(tdim.Y)
	x0 := int(tidx.X) * bx
	x1 := x0 + bx
	if tidx.X == tdim.X-1 {
		x1 = nx
	}
	y0 := int(tidx.Y) * by
	y1 := y0 + by
	if tidx.Y == tdim.Y-1 {
		y1 = ny
	}
	return Extent{X0: x0, X1: x1, Y0: y0, Y1: y1}
}

// Rank returns this process's rank.
func (c *Communicator) Rank() int { return c.rank }

// Size returns the total process count.
func (c *Communicator) Size() int { return c.size }

// ThreadIdx returns the subdomain index (tidx) in the process grid.
func (c *Communicator) ThreadIdx() types.MultiIndex { return c.tidx }

// ThreadDim returns the process-grid dimensions (tdim).
func (c *Communicator) ThreadDim() types.MultiIndex { return c.tdim }

// EvenOdd returns the parity bit used to interleave halo sends/receives.
func (c *Communicator) EvenOdd() bool { return c.evenodd }

// Extent returns this rank's owned interior index range.
func (c *Communicator) Extent() Extent { return c.extent }

// IsLeft reports whether this rank owns the global left edge.
func (c *Communicator) IsLeft() bool { return c.tidx.X == 0 }

// IsRight reports whether this rank owns the global right edge.
func (c *Communicator) IsRight() bool { return c.tidx.X == c.tdim.X-1 }

// IsBottom reports whether this rank owns the global bottom edge.
func (c *Communicator) IsBottom() bool { return c.tidx.Y == 0 }

// IsTop reports whether this rank owns the global top edge.
func (c *Communicator) IsTop() bool { return c.tidx.Y == c.tdim.Y-1 }

// IsMaster reports whether this is the master rank (rank 0).
func (c *Communicator) IsMaster() bool { return c.rank == 0 }

func (c *Communicator) leftRank() int   { return c.rank - 1 }
func (c *Communicator) rightRank() int  { return c.rank + 1 }
func (c *Communicator) topRank() int    { return c.rank + int(c.tdim.X) }
func (c *Communicator) bottomRank() int { return c.rank - int(c.tdim.X) }

// ----- reductions -----------------------------------------------------------

// AllSum returns the sum of val across all ranks.
func (c *Communicator) AllSum(val types.Real) types.Real {
	orig, dest := []types.Real{val}, make([]types.Real, 1)
	c.transport.AllReduceSum(dest, orig)
	return dest[0]
}

// AllMin returns the minimum of val across all ranks.
func (c *Communicator) AllMin(val types.Real) types.Real {
	orig, dest := []types.Real{val}, make([]types.Real, 1)
	c.transport.AllReduceMin(dest, orig)
	return dest[0]
}

// AllMax returns the maximum of val across all ranks.
func (c *Communicator) AllMax(val types.Real) types.Real {
	orig, dest := []types.Real{val}, make([]types.Real, 1)
	c.transport.AllReduceMax(dest, orig)
	return dest[0]
}

// ----- halo exchange ---------------------------------------------------------

// ExchangeBoundary exchanges g's halo with every neighbor rank: the X axis
// (left then right direction) followed by the Y axis (bottom then top),
// each direction using the even/odd two-phase send/receive discipline of
// §4.7 so that no two neighbors block on a simultaneous send.
func (c *Communicator) ExchangeBoundary(g *grid.Grid) {
	c.exchangeLeft(g)
	c.exchangeRight(g)
	c.exchangeBottom(g)
	c.exchangeTop(g)
}

// exchangeLeft sends each rank's left inner column to its left neighbor,
// filling that neighbor's right ghost column.
func (c *Communicator) exchangeLeft(g *grid.Grid) {
	send := func() { c.transport.Send(c.leftRank(), g.GetLeftBoundary(true)) }
	recv := func() {
		buf := g.HaloScratchV()
		c.transport.Recv(c.rightRank(), buf)
		g.WriteRightBoundary(buf)
	}
	c.twoPhase(!c.IsLeft(), send, !c.IsRight(), recv)
}

// exchangeRight sends each rank's right inner column to its right
// neighbor, filling that neighbor's left ghost column.
func (c *Communicator) exchangeRight(g *grid.Grid) {
	send := func() { c.transport.Send(c.rightRank(), g.GetRightBoundary(true)) }
	recv := func() {
		buf := g.HaloScratchV()
		c.transport.Recv(c.leftRank(), buf)
		g.WriteLeftBoundary(buf)
	}
	c.twoPhase(!c.IsRight(), send, !c.IsLeft(), recv)
}

// exchangeBottom sends each rank's bottom inner row to its bottom
// neighbor, filling that neighbor's top ghost row.
func (c *Communicator) exchangeBottom(g *grid.Grid) {
	send := func() { c.transport.Send(c.bottomRank(), g.GetBottomBoundary(true)) }
	recv := func() {
		buf := g.HaloScratchH()
		c.transport.Recv(c.topRank(), buf)
		g.WriteTopBoundary(buf)
	}
	c.twoPhase(!c.IsBottom(), send, !c.IsTop(), recv)
}

// exchangeTop sends each rank's top inner row to its top neighbor, filling
// that neighbor's bottom ghost row.
func (c *Communicator) exchangeTop(g *grid.Grid) {
	send := func() { c.transport.Send(c.topRank(), g.GetTopBoundary(true)) }
	recv := func() {
		buf := g.HaloScratchH()
		c.transport.Recv(c.bottomRank(), buf)
		g.WriteBottomBoundary(buf)
	}
	c.twoPhase(!c.IsTop(), send, !c.IsBottom(), recv)
}

// twoPhase runs one direction's even/odd interleaved send/receive: in
// phase 1, evenodd ranks send (if canSend) while !evenodd ranks receive
// (if canRecv); a barrier separates phase 1 from phase 2, where the roles
// swap. This guarantees a rank and its neighbor along this direction never
// issue a blocking send at the same time, since two ranks adjacent along
// one axis always have opposite evenodd parity.
func (c *Communicator) twoPhase(canSend bool, send func(), canRecv bool, recv func()) {
	if c.evenodd {
		if canSend {
			send()
		}
	} else {
		if canRecv {
			recv()
		}
	}
	c.transport.Barrier()
	if !c.evenodd {
		if canSend {
			send()
		}
	} else {
		if canRecv {
			recv()
		}
	}
}

// CollectExtent gathers every rank's Extent to the master rank only,
// returning nil on non-master ranks.
func (c *Communicator) CollectExtent() []Extent {
	if !c.IsMaster() {
		buf := []types.Real{
			types.Real(c.extent.X0), types.Real(c.extent.X1),
			types.Real(c.extent.Y0), types.Real(c.extent.Y1),
		}
		c.transport.Send(0, buf)
		return nil
	}
	out := make([]Extent, c.size)
	out[0] = c.extent
	for r := 1; r < c.size; r++ {
		buf := make([]types.Real, 4)
		c.transport.Recv(r, buf)
		out[r] = Extent{X0: int(buf[0]), X1: int(buf[1]), Y0: int(buf[2]), Y1: int(buf[3])}
	}
	return out
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm implements the process topology, neighbor resolution, halo
// exchange and global reductions that glue per-rank subdomains into one
// simulation. Every blocking operation funnels through the Transport
// interface so that a single process, an in-memory multi-goroutine
// cluster (used by tests) and a real gosl/mpi-backed cluster can all
// drive the same Communicator logic.
package comm

import "github.com/cpmech/nsflow/types"

// Transport is the minimal point-to-point plus collective surface the
// Communicator needs. It mirrors gosl/mpi's Rank/Size/Barrier/AllReduce*
// free functions behind an interface so the solver never imports mpi
// directly.
type Transport interface {
	Rank() int
	Size() int
	Barrier()
	Send(toProc int, vals []types.Real)
	Recv(fromProc int, vals []types.Real)
	AllReduceSum(dest, orig []types.Real)
	AllReduceMin(dest, orig []types.Real)
	AllReduceMax(dest, orig []types.Real)
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import "github.com/cpmech/nsflow/types"

// LocalTransport is the single-process Transport: rank 0 of size 1, every
// collective a pass-through, every send/recv unreachable because a
// single-subdomain topology has no neighbors.
type LocalTransport struct{}

// NewLocalTransport returns a Transport for a non-distributed run.
func NewLocalTransport() *LocalTransport { return &LocalTransport{} }

func (LocalTransport) Rank() int { return 0 }
func (LocalTransport) Size() int { return 1 }
func (LocalTransport) Barrier()  {}

func (LocalTransport) Send(toProc int, vals []types.Real) {}
func (LocalTransport) Recv(fromProc int, vals []types.Real) {}

func (LocalTransport) AllReduceSum(dest, orig []types.Real) { copy(dest, orig) }
func (LocalTransport) AllReduceMin(dest, orig []types.Real) { copy(dest, orig) }
func (LocalTransport) AllReduceMax(dest, orig []types.Real) { copy(dest, orig) }

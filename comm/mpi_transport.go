// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/nsflow/types"
)

// MPITransport drives the Communicator's Transport interface on top of
// gosl/mpi, exactly as the teacher's main.go uses mpi.Start/Stop/Rank/Size
// to bracket a simulation run.
type MPITransport struct{}

// NewMPITransport returns a Transport backed by the process's MPI
// environment. Callers must have already invoked mpi.Start.
func NewMPITransport() *MPITransport { return &MPITransport{} }

func (MPITransport) Rank() int { return mpi.Rank() }
func (MPITransport) Size() int { return mpi.Size() }
func (MPITransport) Barrier()  { mpi.Barrier() }

func (MPITransport) Send(toProc int, vals []types.Real) {
	mpi.SendOne(vals, toProc)
}

func (MPITransport) Recv(fromProc int, vals []types.Real) {
	mpi.ReceiveOne(vals, fromProc)
}

func (MPITransport) AllReduceSum(dest, orig []types.Real) { mpi.AllReduceSum(dest, orig) }
func (MPITransport) AllReduceMin(dest, orig []types.Real) { mpi.AllReduceMin(dest, orig) }
func (MPITransport) AllReduceMax(dest, orig []types.Real) { mpi.AllReduceMax(dest, orig) }

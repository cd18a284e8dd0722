// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import "github.com/cpmech/gosl/mpi"

// StartMPI brackets a run the way the teacher's main.go does with
// mpi.Start/mpi.Stop; a no-op when enabled is false.
func StartMPI(enabled bool) {
	if enabled {
		mpi.Start(false)
	}
}

// StopMPI tears down the MPI environment started by StartMPI.
func StopMPI(enabled bool) {
	if enabled {
		mpi.Stop(false)
	}
}

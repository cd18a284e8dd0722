// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"github.com/cpmech/nsflow/checkpoint"
	"github.com/cpmech/nsflow/types"
)

// Snapshot captures the full restartable state of this rank's subdomain.
func (c *Compute) Snapshot() *checkpoint.State {
	st := &checkpoint.State{
		Step: c.Step, T: c.T,
		Sx: c.U.Sx(), Sy: c.U.Sy(),
		U: append([]types.Real(nil), c.U.Data()...),
		V: append([]types.Real(nil), c.V.Data()...),
		P: append([]types.Real(nil), c.P.Data()...),
		StreakPos: append([]types.MultiReal(nil), c.tracer.streakPos...),
		TracePos:  append([]types.MultiReal(nil), c.tracer.tracePos...),
	}
	if c.Subst != nil {
		st.C = make([][]types.Real, c.Subst.N)
		for i, g := range c.Subst.C {
			st.C[i] = append([]types.Real(nil), g.Data()...)
		}
	}
	return st
}

// Restore overwrites U, V, P, substance and particle state from st.
func (c *Compute) Restore(st *checkpoint.State) {
	c.Step, c.T = st.Step, st.T
	copy(c.U.Data(), st.U)
	copy(c.V.Data(), st.V)
	copy(c.P.Data(), st.P)
	if c.Subst != nil {
		for i, g := range c.Subst.C {
			if i < len(st.C) {
				copy(g.Data(), st.C[i])
			}
		}
	}
	copy(c.tracer.streakPos, st.StreakPos)
	copy(c.tracer.tracePos, st.TracePos)
}

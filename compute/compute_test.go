// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/comm"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/param"
	"github.com/cpmech/nsflow/solver"
)

func newSingleRankCompute(geo *geometry.Geometry, p *param.Parameter) *Compute {
	t := comm.NewLocalTransport()
	c, err := comm.New(t, int(geo.S.X)-2, int(geo.S.Y)-2)
	if err != nil {
		panic(err)
	}
	sv := solver.New(p.Omega)
	return New(geo, p, c, sv, nil)
}

func TestCompute_drivenCavityLidSetsInteriorFlow(tst *testing.T) {
	chk.PrintTitle("Compute. driven-cavity lid flow develops positive U below the lid")
	geo := geometry.NewDefault(8, 8, 1, 1, 1)
	p := param.Default()
	p.Re, p.Omega, p.Eps, p.Tend, p.FixedDt, p.DtLimit = 1000, 1.7, 1e-3, 10, 0.1, 0.1
	p.InvRe = 1 / p.Re
	co := newSingleRankCompute(geo, p)

	for k := 0; k < 100; k++ {
		if _, err := co.Step(); err != nil && !isConvergenceWarning(err) {
			tst.Fatalf("step %d failed: %v", k, err)
		}
	}

	if co.U.HasNaNOrInf() || co.V.HasNaNOrInf() {
		tst.Fatalf("U or V contains NaN/Inf after 100 steps")
	}

	// column x=4, near the lid: U should be positive there.
	uAt46 := valueAt(co.U, 4, 6)
	if uAt46 <= 0 {
		tst.Errorf("U at interior column x=4 near the lid should be positive, got %v", uAt46)
	}
	maxAbsU := co.U.AbsMax()
	if maxAbsU < 0.95 || maxAbsU > 1.05 {
		tst.Errorf("max|U| should stay close to the lid speed 1.0, got %v", maxAbsU)
	}
}

func valueAt(g interface {
	Sx() uint32
	Data() []float64
}, x, y uint32) float64 {
	return g.Data()[y*g.Sx()+x]
}

func isConvergenceWarning(err error) bool {
	return err != nil && len(err.Error()) >= 18 && err.Error()[:18] == "ConvergenceWarning"
}

func TestCompute_zeroInitZeroBoundaryStaysZero(tst *testing.T) {
	chk.PrintTitle("Compute. zero initial field with zero boundaries stays exactly zero")
	geo := geometry.NewDefault(6, 6, 1, 1, 0) // lidSpeed=0: every wall no-slip
	p := param.Default()
	co := newSingleRankCompute(geo, p)

	for k := 0; k < 20; k++ {
		if _, err := co.Step(); err != nil && !isConvergenceWarning(err) {
			tst.Fatalf("step %d failed: %v", k, err)
		}
	}

	chk.Scalar(tst, "U stays zero", 1e-15, co.U.AbsMax(), 0)
	chk.Scalar(tst, "V stays zero", 1e-15, co.V.AbsMax(), 0)
}

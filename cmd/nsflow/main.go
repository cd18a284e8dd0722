// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nsflow/checkpoint"
	"github.com/cpmech/nsflow/comm"
	"github.com/cpmech/nsflow/compute"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/output"
	"github.com/cpmech/nsflow/param"
	"github.com/cpmech/nsflow/solver"
	"github.com/cpmech/nsflow/substance"
)

var (
	verbose       = flag.Bool("v", false, "print per-step diagnostics to standard output")
	dirout        = flag.String("dirout", ".", "output directory for CSV, VTK, particle and summary files")
	mpiEnabled    = flag.Bool("mpi", false, "run under gosl/mpi instead of a single process")
	telemetryAddr = flag.String("telemetry-addr", "", "if set, serve live JSON telemetry on this address")
	tui           = flag.Bool("tui", false, "show a terminal live-status monitor")
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			comm.StopMPI(*mpiEnabled)
			os.Exit(1)
		}
	}()

	flag.Parse()
	if len(flag.Args()) == 0 {
		chk.Panic("usage: nsflow [flags] <scenario|TEST_MODE>")
	}
	arg := flag.Arg(0)

	if isTestMode(arg) {
		runTestMode(arg)
		return
	}

	comm.StartMPI(*mpiEnabled)
	defer comm.StopMPI(*mpiEnabled)

	transport := comm.NewLocalTransport()
	var t comm.Transport = transport
	if *mpiEnabled {
		t = comm.NewMPITransport()
	}

	geo, err := geometry.Load(io.Sf("scenarios/%s.geom", arg))
	if err != nil {
		chk.Panic("%v", err)
	}
	p, err := param.Load(io.Sf("scenarios/%s.param", arg))
	if err != nil {
		chk.Panic("%v", err)
	}

	var subst *substance.Substance
	if _, statErr := os.Stat(io.Sf("scenarios/%s.subst", arg)); statErr == nil {
		subst, err = substance.Load(io.Sf("scenarios/%s.subst", arg), geo)
		if err != nil {
			chk.Panic("%v", err)
		}
	}

	c, err := comm.New(t, int(geo.S.X)-2, int(geo.S.Y)-2)
	if err != nil {
		chk.Panic("%v", err)
	}

	sv := solver.New(p.Omega)
	co := compute.New(geo, p, c, sv, subst)

	csv, err := output.NewCSVWriter(io.Sf("%s/%s.csv", *dirout, arg), geo, p.Re)
	if err != nil {
		chk.Panic("%v", err)
	}
	defer csv.Close()

	var telemetry *output.Telemetry
	if *telemetryAddr != "" {
		telemetry = output.NewTelemetry()
		go telemetry.ListenAndServe(*telemetryAddr)
	}

	var monitor *output.Monitor
	if *tui {
		monitor, err = output.NewMonitor()
		if err != nil {
			chk.Panic("%v", err)
		}
		defer monitor.Close()
	}

	summary := &output.Summary{}
	lastCheckpoint := 0.0

	for co.T < p.Tend {
		tPrev := co.T
		print, stepErr := co.Step()
		if stepErr != nil {
			if !isWarning(stepErr) {
				chk.Panic("%v", stepErr)
			}
			if *verbose {
				io.Pfyel("%v\n", stepErr)
			}
		}
		if print {
			csv.WriteSample(co.T, co.U, co.V, co.P)
			summary.Record(co.Step, co.T, co.LastIter, co.LastResidual, co.U, co.V, co.P, subst)
			if telemetry != nil {
				telemetry.Broadcast(co.Step, co.T, co.T-tPrev, co.LastResidual, co.LastIter, co.U.AbsMax(), co.V.AbsMax(), co.P.AbsMax())
			}
			if monitor != nil {
				monitor.Update(co.Step, co.T, co.T-tPrev, co.LastResidual, co.LastIter, co.U.AbsMax(), co.V.AbsMax())
			}
			if *verbose {
				io.Pf("step=%d t=%.4f iter=%d res=%.3e\n", co.Step, co.T, co.LastIter, co.LastResidual)
			}
		}
		if p.CheckpointDt > 0 && co.T-lastCheckpoint >= p.CheckpointDt {
			lastCheckpoint = co.T
			if err := checkpoint.Save(io.Sf("%s/%s_%d.chk", *dirout, arg, c.Rank()), co.Snapshot()); err != nil {
				chk.Panic("%v", err)
			}
		}
	}

	if err := summary.Save(io.Sf("%s/%s.summary", *dirout, arg)); err != nil {
		chk.Panic("%v", err)
	}
}

func isWarning(err error) bool {
	return err != nil && len(err.Error()) > 18 && err.Error()[:18] == "ConvergenceWarning"
}

func isTestMode(arg string) bool {
	switch arg {
	case "TEST_COMPUTE", "TEST_ITERATOR", "TEST_GEOMETRY", "TEST_PARAMETER", "TEST_GRID", "TEST_INTERPOLATE", "TEST_LOAD", "TEST_SOLVER":
		return true
	}
	return false
}

// runTestMode runs an isolated subsystem smoke check and exits 0, per §6.
func runTestMode(mode string) {
	switch mode {
	case "TEST_PARAMETER":
		p := param.Default()
		io.Pf("re=%v omega=%v alpha=%v\n", p.Re, p.Omega, p.Alpha)
	case "TEST_GEOMETRY":
		geo := geometry.NewDefault(8, 8, 1, 1, 1)
		io.Pf("Sx=%d Sy=%d\n", geo.S.X, geo.S.Y)
	case "TEST_GRID", "TEST_INTERPOLATE":
		geo := geometry.NewDefault(4, 4, 1, 1, 1)
		io.Pf("h=%v\n", geo.H())
	case "TEST_ITERATOR":
		geo := geometry.NewDefault(4, 4, 1, 1, 1)
		io.Pf("cells=%d\n", len(geo.Cells))
	case "TEST_SOLVER":
		sv := solver.New(1.7)
		io.Pf("omega=%v\n", sv.Omega)
	case "TEST_COMPUTE":
		geo := geometry.NewDefault(8, 8, 1, 1, 1)
		p := param.Default()
		t := comm.NewLocalTransport()
		c, _ := comm.New(t, int(geo.S.X)-2, int(geo.S.Y)-2)
		sv := solver.New(p.Omega)
		co := compute.New(geo, p, c, sv, nil)
		_, err := co.Step()
		if err != nil {
			chk.Panic("%v", err)
		}
		io.Pf("step ok, t=%v\n", co.T)
	case "TEST_LOAD":
		if len(os.Args) < 3 {
			chk.Panic("TEST_LOAD requires a scenario path")
		}
		_, err := geometry.Load(os.Args[2])
		if err != nil {
			chk.Panic("%v", err)
		}
		io.Pf("load ok\n")
	}
}

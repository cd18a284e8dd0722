// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param holds the simulation constants read from a parameter file:
// Reynolds number, SOR relaxation, donor-cell weights, CFL safety factor,
// pressure-iteration bounds, and the fixed CSV output cadence.
package param

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nsflow/types"
)

// Parameter is a plain record of simulation constants. Immutable after
// Load; Compute and Solver hold a read-only reference.
type Parameter struct {
	Re      types.Real // Reynolds number
	InvRe   types.Real // 1/Re, cached
	Omega   types.Real // SOR relaxation, in (1,2)
	Alpha   types.Real // donor-cell weight for velocity, in [0,1]
	Gamma   types.Real // donor-cell weight for substance transport, in [0,1]
	Tau     types.Real // CFL safety factor, in (0,1]
	IterMax int        // maximum pressure-iteration count
	Eps     types.Real // residual target for pressure iteration
	DtLimit types.Real // upper bound on the adaptive time step
	Tend    types.Real // simulation end time
	FixedDt types.Real // fixed CSV output cadence

	// CheckpointDt is a supplemented feature (SPEC_FULL): cadence, in
	// simulation time, at which a full-state checkpoint is written. 0
	// disables checkpointing.
	CheckpointDt types.Real
}

// Default returns the driven-cavity defaults used by the original
// benchmark fixtures when no parameter file is supplied.
func Default() *Parameter {
	p := &Parameter{
		Re:      1e3,
		Omega:   1.7,
		Alpha:   0.9,
		Gamma:   0.9,
		Tau:     0.5,
		IterMax: 100,
		Eps:     1e-3,
		DtLimit: 0.1,
		Tend:    10,
		FixedDt: 0.1,
	}
	p.InvRe = 1 / p.Re
	return p
}

// Load overwrites p from a text key-value parameter file (see SPEC_FULL.md
// §6). Unknown keys are reported but non-fatal, matching the original
// fixture's tolerant parser.
func Load(path string) (*Parameter, error) {
	p := Default()
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read parameter file %q:\n%v", path, err)
	}
	lines := strings.Split(string(buf), "\n")
	for _, line := range lines {
		key, val, ok := splitKV(line)
		if !ok {
			continue
		}
		f, ferr := strconv.ParseFloat(val, 64)
		if ferr != nil {
			continue
		}
		switch {
		case strings.Contains(key, "checkpointdt"):
			p.CheckpointDt = f
		case strings.Contains(key, "fixeddt"):
			p.FixedDt = f
		case strings.Contains(key, "itermax") || strings.Contains(key, "iter"):
			p.IterMax = int(f)
		case strings.Contains(key, "re"):
			p.Re = f
		case strings.Contains(key, "omg") || strings.Contains(key, "omega"):
			p.Omega = f
		case strings.Contains(key, "alpha"):
			p.Alpha = f
		case strings.Contains(key, "gamma"):
			p.Gamma = f
		case strings.Contains(key, "dt"):
			p.DtLimit = f
		case strings.Contains(key, "tend"):
			p.Tend = f
		case strings.Contains(key, "eps"):
			p.Eps = f
		case strings.Contains(key, "tau"):
			p.Tau = f
		default:
			io.Pfyel("param: unknown key %q ignored\n", key)
		}
	}
	if p.Re <= 0 {
		return nil, chk.Err("InvalidConfig: re must be > 0, got %v", p.Re)
	}
	p.InvRe = 1 / p.Re
	return p, nil
}

// splitKV parses one "name = value" or "name value" line, skipping blank
// and comment ("#"-prefixed) lines.
func splitKV(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.ToLower(line)
	var fields []string
	if strings.Contains(line, "=") {
		parts := strings.SplitN(line, "=", 2)
		fields = []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
	} else {
		fields = strings.Fields(line)
	}
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

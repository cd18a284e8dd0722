// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/substance"
	"github.com/cpmech/nsflow/types"
)

// StepStats is one print step's global diagnostics: min/max of U, V, P,
// each substance (no mean is recorded), plus the pressure iteration's final count and
// residual (a supplemented feature, grounded on the teacher's fem.Summary
// record-of-outputs pattern).
type StepStats struct {
	Step    int
	T       types.Real
	Iter    int
	Resid   types.Real
	UMin    types.Real
	UMax    types.Real
	VMin    types.Real
	VMax    types.Real
	PMin    types.Real
	PMax    types.Real
	CMinMax [][2]types.Real // per-species [min,max]
}

// Summary accumulates one StepStats per print step and can persist the
// whole run to a gob-encoded `.summary` file.
type Summary struct {
	Steps []StepStats
}

// Record computes and appends one StepStats snapshot.
func (s *Summary) Record(step int, t types.Real, iter int, resid types.Real, u, v, p *grid.Grid, subst *substance.Substance) {
	st := StepStats{
		Step: step, T: t, Iter: iter, Resid: resid,
		UMin: u.Min(), UMax: u.Max(),
		VMin: v.Min(), VMax: v.Max(),
		PMin: p.Min(), PMax: p.Max(),
	}
	if subst != nil {
		st.CMinMax = make([][2]types.Real, subst.N)
		for i, c := range subst.C {
			st.CMinMax[i] = [2]types.Real{c.Min(), c.Max()}
		}
	}
	s.Steps = append(s.Steps, st)
}

// Save gob-encodes the accumulated steps to path.
func (s *Summary) Save(path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return chk.Err("IOFailure: cannot encode summary:\n%v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("IOFailure: cannot create summary file %q:\n%v", path, err)
	}
	defer f.Close()
	_, err = f.Write(buf.Bytes())
	return err
}

// LoadSummary reads back a .summary file written by Summary.Save.
func LoadSummary(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("IOFailure: cannot open summary file %q:\n%v", path, err)
	}
	defer f.Close()
	var s Summary
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, chk.Err("IOFailure: cannot decode summary file %q:\n%v", path, err)
	}
	return &s, nil
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checkpoint implements full-state restart dumps at a cadence
// distinct from the CSV output cadence (a supplemented feature, grounded
// on the teacher's gob-based Domain.SaveSol/ReadSol pair).
package checkpoint

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/types"
)

// State is the full restartable simulation state for one rank.
type State struct {
	Step int
	T    types.Real

	Sx, Sy types.Index
	U, V, P []types.Real
	C       [][]types.Real // one slice per substance species; nil if none

	StreakPos []types.MultiReal
	TracePos  []types.MultiReal
}

// Save gob-encodes st to path, truncating any existing file.
func Save(path string, st *State) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return chk.Err("IOFailure: cannot encode checkpoint:\n%v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("IOFailure: cannot create checkpoint file %q:\n%v", path, err)
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return chk.Err("IOFailure: cannot write checkpoint file %q:\n%v", path, err)
	}
	return nil
}

// Load reads back a checkpoint written by Save.
func Load(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("IOFailure: cannot open checkpoint file %q:\n%v", path, err)
	}
	defer f.Close()
	var st State
	if err := gob.NewDecoder(f).Decode(&st); err != nil {
		return nil, chk.Err("IOFailure: cannot decode checkpoint file %q:\n%v", path, err)
	}
	return &st, nil
}

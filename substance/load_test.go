// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/geometry"
)

func TestLoad_parsesSpeciesAndReactionMatrix(tst *testing.T) {
	chk.PrintTitle("Substance. Load parses species count, D/L/Gamma and the R matrix")
	geo := geometry.NewDefault(6, 6, 1, 1, 0)
	dir := tst.TempDir()
	path := filepath.Join(dir, "two_species.subst")
	content := "" +
		"n 2\n" +
		"d 0.01 0.02\n" +
		"l 2 10\n" +
		"gamma 0.9 0.9\n" +
		"r -0.11 0.018\n" +
		"r -0.08 0.1\n" +
		"init circle 0.5 0.5 0.1 0.4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}
	s, err := Load(path, geo)
	if err != nil {
		tst.Errorf("Load failed: %v", err)
		return
	}
	if s.N != 2 {
		tst.Errorf("N: got %d want 2", s.N)
	}
	chk.Scalar(tst, "D[0]", 1e-15, s.D[0], 0.01)
	chk.Scalar(tst, "L[1]", 1e-15, s.L[1], 10)
	chk.Scalar(tst, "R[0][1]", 1e-15, s.R[0][1], 0.018)
	chk.Scalar(tst, "R[1][0]", 1e-15, s.R[1][0], -0.08)
}

func TestLoad_rejectsMissingSpeciesCount(tst *testing.T) {
	chk.PrintTitle("Substance. Load rejects a file with no 'n' declaration")
	geo := geometry.NewDefault(4, 4, 1, 1, 0)
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.subst")
	if err := os.WriteFile(path, []byte("d 0.1\n"), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}
	_, err := Load(path, geo)
	if err == nil {
		tst.Errorf("Load should reject a file without 'n N'")
	}
}

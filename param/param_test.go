// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestParameter_defaults(tst *testing.T) {
	chk.PrintTitle("Parameter. driven-cavity defaults")
	p := Default()
	chk.Scalar(tst, "re", 1e-15, p.Re, 1e3)
	chk.Scalar(tst, "invre", 1e-15, p.InvRe, 1e-3)
	chk.Scalar(tst, "omega", 1e-15, p.Omega, 1.7)
	chk.Scalar(tst, "alpha", 1e-15, p.Alpha, 0.9)
	chk.Scalar(tst, "gamma", 1e-15, p.Gamma, 0.9)
	chk.Scalar(tst, "eps", 1e-15, p.Eps, 1e-3)
	if p.IterMax != 100 {
		tst.Errorf("IterMax should default to 100, got %d", p.IterMax)
	}
}

func TestParameter_loadKeyValue(tst *testing.T) {
	chk.PrintTitle("Parameter. Load parses a key-value parameter file")
	dir := tst.TempDir()
	path := filepath.Join(dir, "cavity.param")
	content := "# comment\nre = 500\nomega 1.9\nalpha=0.8\niter 250\ncheckpointdt 2.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		tst.Errorf("Load failed: %v", err)
		return
	}
	chk.Scalar(tst, "re", 1e-15, p.Re, 500)
	chk.Scalar(tst, "invre", 1e-15, p.InvRe, 1.0/500.0)
	chk.Scalar(tst, "omega", 1e-15, p.Omega, 1.9)
	chk.Scalar(tst, "alpha", 1e-15, p.Alpha, 0.8)
	chk.Scalar(tst, "checkpointdt", 1e-15, p.CheckpointDt, 2.0)
	if p.IterMax != 250 {
		tst.Errorf("IterMax: got %d want 250", p.IterMax)
	}
}

func TestParameter_loadRejectsNonPositiveRe(tst *testing.T) {
	chk.PrintTitle("Parameter. Load rejects re <= 0 as InvalidConfig")
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.param")
	if err := os.WriteFile(path, []byte("re = -1\n"), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		tst.Errorf("Load should reject re <= 0")
	}
}

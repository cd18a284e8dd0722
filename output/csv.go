// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output writes the simulation's persisted state: the CSV probe
// table, per-rank structured-grid VTK pieces plus a master .pvts index,
// particle PolyData files, a per-step diagnostics summary, and two
// optional ambient surfaces (a websocket telemetry broadcaster and a
// terminal live-monitor) (§6).
package output

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/iterator"
	"github.com/cpmech/nsflow/types"
)

// CSVWriter appends one row per emitted sample to a CSV probe table, with
// header `ID, RE, T, X00,Y00,U00,V00,P00,...` (§6). Samples are taken at
// every interior Fluid cell's pressure-grid (cell-centered) position, with
// U and V bilinearly interpolated there.
type CSVWriter struct {
	f     *os.File
	re    types.Real
	cells []types.Index // row-major P-grid indices sampled, fixed at construction
	id    int           // row counter, replaces the source's global static
}

// NewCSVWriter creates path (truncating any existing file), writes the
// header row, and fixes the set of sampled interior Fluid cells from geo.
func NewCSVWriter(path string, geo *geometry.Geometry, re types.Real) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, chk.Err("IOFailure: cannot create CSV file %q:\n%v", path, err)
	}
	w := &CSVWriter{f: f, re: re}
	it := iterator.NewInterior(geo.S.X, geo.S.Y)
	for it.First(); it.Valid(); it.Next() {
		if geo.CellAt(it.Value()).IsFluid() {
			w.cells = append(w.cells, it.Value())
		}
	}
	io.Ff(f, "ID, RE, T")
	for i := range w.cells {
		io.Ff(f, ", X%02d,Y%02d,U%02d,V%02d,P%02d", i, i, i, i, i)
	}
	io.Ff(f, "\n")
	return w, nil
}

// WriteSample appends one row at simulation time t.
func (w *CSVWriter) WriteSample(t types.Real, u, v, p *grid.Grid) {
	hx, hy := p.Hx(), p.Hy()
	off := p.Offset()
	io.Ff(w.f, "%d, %.6e, %.6e", w.id, w.re, t)
	sx := p.Sx()
	for _, idx := range w.cells {
		x := types.Real(idx%sx)*hx - off.X
		y := types.Real(idx/sx)*hy - off.Y
		io.Ff(w.f, ", %.6e,%.6e,%.6e,%.6e,%.6e", x, y, u.Interpolate(x, y), v.Interpolate(x, y), p.Data()[idx])
	}
	io.Ff(w.f, "\n")
	w.id++
}

// Close flushes and closes the underlying file.
func (w *CSVWriter) Close() error { return w.f.Close() }

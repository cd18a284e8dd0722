// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nsflow/comm"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/substance"
	"github.com/cpmech/nsflow/types"
)

// WriteVTS writes one rank's piece of the structured grid to
// `<dirout>/<fnkey>_<step>_<rank>.vts`, with U,V interpolated and P sampled
// at each cell-centered point, plus one array per substance species.
func WriteVTS(dirout, fnkey string, step, rank int, geo *geometry.Geometry, u, v, p *grid.Grid, subst *substance.Substance) error {
	sx, sy := int(geo.S.X), int(geo.S.Y)
	var buf bytes.Buffer
	io.Ff(&buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"StructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	io.Ff(&buf, "<StructuredGrid WholeExtent=\"0 %d 0 %d 0 0\">\n", sx-1, sy-1)
	io.Ff(&buf, "<Piece Extent=\"0 %d 0 %d 0 0\">\n", sx-1, sy-1)

	io.Ff(&buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	hx, hy := p.Hx(), p.Hy()
	off := p.Offset()
	for j := 0; j < sy; j++ {
		for i := 0; i < sx; i++ {
			x := types.Real(i)*hx - off.X
			y := types.Real(j)*hy - off.Y
			io.Ff(&buf, "%23.15e %23.15e 0.0 ", x, y)
		}
	}
	io.Ff(&buf, "\n</DataArray>\n</Points>\n")

	io.Ff(&buf, "<PointData Scalars=\"p\">\n")
	writeScalarArray(&buf, "p", p.Data())
	writeVectorXY(&buf, "velocity", sx, sy, hx, hy, off, u, v)
	if subst != nil {
		for i, c := range subst.C {
			writeScalarArray(&buf, io.Sf("c%d", i), c.Data())
		}
	}
	io.Ff(&buf, "</PointData>\n")

	io.Ff(&buf, "</Piece>\n</StructuredGrid>\n</VTKFile>\n")
	io.WriteFileV(io.Sf("%s/%s_%06d_%d.vts", dirout, fnkey, step, rank), &buf)
	return nil
}

func writeScalarArray(buf *bytes.Buffer, name string, data []types.Real) {
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"1\" format=\"ascii\">\n", name)
	for _, v := range data {
		io.Ff(buf, "%23.15e ", v)
	}
	io.Ff(buf, "\n</DataArray>\n")
}

func writeVectorXY(buf *bytes.Buffer, name string, sx, sy int, hx, hy types.Real, off types.MultiReal, u, v *grid.Grid) {
	io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"3\" format=\"ascii\">\n", name)
	for j := 0; j < sy; j++ {
		for i := 0; i < sx; i++ {
			x := types.Real(i)*hx - off.X
			y := types.Real(j)*hy - off.Y
			io.Ff(buf, "%23.15e %23.15e 0.0 ", u.Interpolate(x, y), v.Interpolate(x, y))
		}
	}
	io.Ff(buf, "\n</DataArray>\n")
}

// WritePVTS writes the master-only .pvts index referencing every rank's
// piece by its global WholeExtent, from the Extents collected by
// Communicator.CollectExtent.
func WritePVTS(dirout, fnkey string, step int, globalSx, globalSy int, extents []comm.Extent) error {
	var buf bytes.Buffer
	io.Ff(&buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"PStructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	io.Ff(&buf, "<PStructuredGrid WholeExtent=\"0 %d 0 %d 0 0\" GhostLevel=\"1\">\n", globalSx-1, globalSy-1)
	io.Ff(&buf, "<PPointData Scalars=\"p\">\n<PDataArray type=\"Float64\" Name=\"p\" NumberOfComponents=\"1\"/>\n")
	io.Ff(&buf, "<PDataArray type=\"Float64\" Name=\"velocity\" NumberOfComponents=\"3\"/>\n</PPointData>\n")
	io.Ff(&buf, "<PPoints><PDataArray type=\"Float64\" NumberOfComponents=\"3\"/></PPoints>\n")
	for r, e := range extents {
		io.Ff(&buf, "<Piece Extent=\"%d %d %d %d 0 0\" Source=\"%s_%06d_%d.vts\"/>\n", e.X0, e.X1+1, e.Y0, e.Y1+1, fnkey, step, r)
	}
	io.Ff(&buf, "</PStructuredGrid>\n</VTKFile>\n")
	io.WriteFileV(io.Sf("%s/%s_%06d.pvts", dirout, fnkey, step), &buf)
	return nil
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nsflow/compute"
)

// WriteParticles writes every streakline's and trace's recorded points to
// `<dirout>/<fnkey>_<step>.particles`, a VTK PolyData container with one
// polyline per series.
func WriteParticles(dirout, fnkey string, step int, streaklines, traces []compute.ParticleSeries) error {
	all := make([]compute.ParticleSeries, 0, len(streaklines)+len(traces))
	all = append(all, streaklines...)
	all = append(all, traces...)

	npts := 0
	for _, s := range all {
		npts += len(s.Points)
	}

	var buf bytes.Buffer
	io.Ff(&buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">\n<PolyData>\n")
	io.Ff(&buf, "<Piece NumberOfPoints=\"%d\" NumberOfVerts=\"0\" NumberOfLines=\"%d\" NumberOfStrips=\"0\" NumberOfPolys=\"0\">\n", npts, len(all))

	io.Ff(&buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, s := range all {
		for _, p := range s.Points {
			io.Ff(&buf, "%23.15e %23.15e 0.0 ", p.Pos.X, p.Pos.Y)
		}
	}
	io.Ff(&buf, "\n</DataArray>\n</Points>\n")

	io.Ff(&buf, "<Lines>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	idx := 0
	for _, s := range all {
		for range s.Points {
			io.Ff(&buf, "%d ", idx)
			idx++
		}
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	offset := 0
	for _, s := range all {
		offset += len(s.Points)
		io.Ff(&buf, "%d ", offset)
	}
	io.Ff(&buf, "\n</DataArray>\n</Lines>\n")

	io.Ff(&buf, "</Piece>\n</PolyData>\n</VTKFile>\n")
	io.WriteFileV(io.Sf("%s/%s_%06d.particles", dirout, fnkey, step), &buf)
	return nil
}

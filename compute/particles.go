// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compute

import (
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/types"
)

// traceRingSize bounds how many trailing positions a trace particle keeps,
// per the streakline-vs-trace dual accumulation mode.
const traceRingSize = 20

// ParticlePoint is one recorded particle position.
type ParticlePoint struct {
	Pos types.MultiReal
}

// ParticleSeries is one seed's recorded path: the full history for a
// streakline particle, or the last traceRingSize positions for a trace
// particle.
type ParticleSeries struct {
	Seed   types.MultiReal
	Points []ParticlePoint
}

// particleTracer advances two independent populations of massless tracer
// particles through the velocity field: streakline particles, which
// accumulate their entire path, and trace particles, which keep only a
// trailing window.
type particleTracer struct {
	streakPos   []types.MultiReal
	streaklines []ParticleSeries

	tracePos []types.MultiReal
	traces   []ParticleSeries
}

func newParticleTracer(geo *geometry.Geometry) *particleTracer {
	t := &particleTracer{}
	for _, s := range geo.Streaklines {
		t.streakPos = append(t.streakPos, s.Pos)
		t.streaklines = append(t.streaklines, ParticleSeries{Seed: s.Pos})
	}
	for _, s := range geo.Traces {
		t.tracePos = append(t.tracePos, s.Pos)
		t.traces = append(t.traces, ParticleSeries{Seed: s.Pos})
	}
	return t
}

// advance integrates both particle populations forward by dt using an
// explicit-Euler step sampled from u,v by bilinear interpolation, then, if
// record is set (i.e. this step lands on a fixed output instant), appends
// the new position to every series.
func (t *particleTracer) advance(u, v *grid.Grid, dt types.Real, record bool) {
	advanceSet(u, v, dt, t.streakPos)
	advanceSet(u, v, dt, t.tracePos)
	if !record {
		return
	}
	for i, p := range t.streakPos {
		t.streaklines[i].Points = append(t.streaklines[i].Points, ParticlePoint{Pos: p})
	}
	for i, p := range t.tracePos {
		pts := append(t.traces[i].Points, ParticlePoint{Pos: p})
		if len(pts) > traceRingSize {
			pts = pts[len(pts)-traceRingSize:]
		}
		t.traces[i].Points = pts
	}
}

func advanceSet(u, v *grid.Grid, dt types.Real, pos []types.MultiReal) {
	for i, p := range pos {
		vx := u.Interpolate(p.X, p.Y)
		vy := v.Interpolate(p.X, p.Y)
		pos[i] = types.NewVec2XY(p.X+dt*vx, p.Y+dt*vy)
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compute implements the time-stepping driver: adaptive Δt,
// momentum prediction, pressure-Poisson solution, velocity correction,
// boundary enforcement and optional substance transport (§4.6).
package compute

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/comm"
	"github.com/cpmech/nsflow/geometry"
	"github.com/cpmech/nsflow/grid"
	"github.com/cpmech/nsflow/param"
	"github.com/cpmech/nsflow/solver"
	"github.com/cpmech/nsflow/substance"
	"github.com/cpmech/nsflow/types"
)

// overflowThreshold bounds |U|,|V|,|C| before Compute reports a
// NumericFailure, per §7.
const overflowThreshold = 1e6

// Compute owns the velocity, pressure, momentum-prediction and
// right-hand-side grids for one rank's subdomain and drives one time step
// at a time.
type Compute struct {
	Geo    *geometry.Geometry
	Param  *param.Parameter
	Comm   *comm.Communicator
	Solver *solver.Solver
	Subst  *substance.Substance // nil if the scenario has no substance file

	U, V, P, F, G, Rhs *grid.Grid

	T    types.Real
	Step int

	LastResidual types.Real
	LastIter     int

	DynamicDt bool // adaptive Δt (CFL); false pins Δt to Param.DtLimit

	tracer *particleTracer
}

// New allocates a Compute for geo/p, wiring c and sv as the
// communication and pressure-smoothing strategies.
func New(geo *geometry.Geometry, p *param.Parameter, c *comm.Communicator, sv *solver.Solver, subst *substance.Substance) *Compute {
	h := geo.H()
	sx, sy := geo.S.X, geo.S.Y
	co := &Compute{
		Geo: geo, Param: p, Comm: c, Solver: sv, Subst: subst,
		U:         grid.New(sx, sy, h.X, h.Y, grid.OffsetU(h.X, h.Y)),
		V:         grid.New(sx, sy, h.X, h.Y, grid.OffsetV(h.X, h.Y)),
		P:         grid.New(sx, sy, h.X, h.Y, grid.OffsetP(h.X, h.Y)),
		F:         grid.New(sx, sy, h.X, h.Y, grid.OffsetU(h.X, h.Y)),
		G:         grid.New(sx, sy, h.X, h.Y, grid.OffsetV(h.X, h.Y)),
		Rhs:       grid.New(sx, sy, h.X, h.Y, grid.OffsetP(h.X, h.Y)),
		DynamicDt: true,
	}
	co.tracer = newParticleTracer(geo)
	return co
}

// Step advances the simulation by one adaptive time step, returning
// whether this step landed on a fixed CSV-output instant and any fatal or
// warning-level error encountered.
func (c *Compute) Step() (print bool, err error) {
	dt := c.computeDt()
	dt = c.Comm.AllMin(dt)
	if dt <= 0 || math.IsNaN(dt) {
		return false, chk.Err("NumericFailure: dt became non-positive (%v)", dt)
	}

	print, dt = c.applyCsvCadence(dt)

	c.momentumEquation(dt)
	c.Geo.ApplyBoundaryU(c.F, c.V, c.P, c.T)
	c.Geo.ApplyBoundaryV(c.U, c.G, c.P, c.T)
	c.Comm.ExchangeBoundary(c.F)
	c.Comm.ExchangeBoundary(c.G)

	c.computeRhs(dt)

	warn := c.pressureIteration()

	c.newVelocities(dt)
	c.Comm.ExchangeBoundary(c.U)
	c.Comm.ExchangeBoundary(c.V)
	c.Geo.ApplyBoundaryU(c.U, c.V, c.P, c.T)
	c.Geo.ApplyBoundaryV(c.U, c.V, c.P, c.T)
	c.Geo.ApplyBoundaryObstaclesUVP(c.U, c.V, c.P)

	if c.Subst != nil {
		c.Subst.Step(c.Geo, dt, c.U, c.V)
	}

	c.tracer.advance(c.U, c.V, dt, print)

	c.T += dt
	c.Step++

	if c.overflowed() {
		return print, chk.Err("NumericFailure: velocity or substance field overflowed or became NaN")
	}
	if warn != nil {
		return print, warn
	}
	return print, nil
}

// computeDt returns the locally-bounded Δt for this rank, per §4.6 step 1-2.
func (c *Compute) computeDt() types.Real {
	h := c.Geo.H()
	if !c.DynamicDt {
		return c.Param.DtLimit
	}
	cflX := safeDiv(h.X, c.U.AbsMax())
	cflY := safeDiv(h.Y, c.V.AbsMax())
	diff := c.Param.Re * (h.X * h.X * h.Y * h.Y) / (4 * (h.X*h.X + h.Y*h.Y))
	dt := math.Min(c.Param.DtLimit, math.Min(cflX, math.Min(cflY, diff)))
	return c.Param.Tau * dt
}

func safeDiv(num, den types.Real) types.Real {
	if den == 0 {
		return math.Inf(1)
	}
	return num / den
}

// applyCsvCadence shortens dt, when needed, to land exactly on the next
// fixed-output instant, per §4.6 step 4.
func (c *Compute) applyCsvCadence(dt types.Real) (print bool, outDt types.Real) {
	if c.Param.FixedDt <= 0 {
		return false, dt
	}
	invDt := 1 / c.Param.FixedDt
	cur := math.Floor(c.T * invDt)
	next := math.Floor((c.T + dt) * invDt)
	if cur < next {
		target := (cur + 1) * c.Param.FixedDt
		return true, target - c.T
	}
	return false, dt
}

// momentumEquation fills F and G on interior Fluid cells, per §4.6.
func (c *Compute) momentumEquation(dt types.Real) {
	alpha := c.Param.Alpha
	invRe := c.Param.InvRe
	it := c.U.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		if !c.Geo.CellAt(it.Value()).IsFluid() {
			c.F.Set(it, c.U.At(it))
			continue
		}
		diff := invRe * (c.U.Dxx(it) + c.U.Dyy(it))
		conv := c.U.DCUDUx(it, alpha) + c.U.DCVDUy(it, alpha, c.V)
		c.F.Set(it, c.U.At(it)+dt*(diff-conv))
	}
	it = c.V.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		if !c.Geo.CellAt(it.Value()).IsFluid() {
			c.G.Set(it, c.V.At(it))
			continue
		}
		diff := invRe * (c.V.Dxx(it) + c.V.Dyy(it))
		conv := c.V.DCUDVx(it, alpha, c.U) + c.V.DCVDVy(it, alpha)
		c.G.Set(it, c.V.At(it)+dt*(diff-conv))
	}
}

// computeRhs fills Rhs = (dx_l(F) + dy_l(G)) / dt on the interior.
func (c *Compute) computeRhs(dt types.Real) {
	it := c.Rhs.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		c.Rhs.Set(it, (c.F.Dxl(it)+c.G.Dyl(it))/dt)
	}
}

// pressureIteration runs the Red/Black SOR loop until convergence or
// IterMax, returning a non-nil ConvergenceWarning when it never converged.
func (c *Compute) pressureIteration() error {
	it := 0
	res := c.Param.Eps + 1
	for it < c.Param.IterMax && res >= c.Param.Eps {
		redRes := c.Solver.RedCycle(c.Geo, c.P, c.Rhs)
		c.Comm.ExchangeBoundary(c.P)
		blackRes := c.Solver.BlackCycle(c.Geo, c.P, c.Rhs)
		c.Comm.ExchangeBoundary(c.P)
		res = c.Comm.AllMax(math.Max(redRes, blackRes))
		c.Geo.ApplyBoundaryP(c.P, c.T)
		it++
	}
	c.LastIter, c.LastResidual = it, res
	if it >= c.Param.IterMax && res >= c.Param.Eps {
		return chk.Err("ConvergenceWarning: pressure iteration hit IterMax=%d with residual %v (eps=%v)", c.Param.IterMax, res, c.Param.Eps)
	}
	return nil
}

// newVelocities updates U,V from F,G and the converged pressure field.
func (c *Compute) newVelocities(dt types.Real) {
	it := c.U.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		if !c.Geo.CellAt(it.Value()).IsFluid() {
			continue
		}
		c.U.Set(it, c.F.At(it)-dt*c.P.Dxr(it))
	}
	it = c.V.NewInteriorIterator()
	for it.First(); it.Valid(); it.Next() {
		if !c.Geo.CellAt(it.Value()).IsFluid() {
			continue
		}
		c.V.Set(it, c.G.At(it)-dt*c.P.Dyr(it))
	}
}

func (c *Compute) overflowed() bool {
	if c.U.HasNaNOrInf() || c.V.HasNaNOrInf() || c.P.HasNaNOrInf() {
		return true
	}
	if c.U.AbsMax() > overflowThreshold || c.V.AbsMax() > overflowThreshold {
		return true
	}
	if c.Subst != nil && (c.Subst.HasNaNOrInf() || c.Subst.MaxAbsAny() > overflowThreshold) {
		return true
	}
	return false
}

// Streaklines exposes the particle tracer's streakline series for output.
func (c *Compute) Streaklines() []ParticleSeries { return c.tracer.streaklines }

// Traces exposes the particle tracer's trace series for output.
func (c *Compute) Traces() []ParticleSeries { return c.tracer.traces }

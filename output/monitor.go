// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/gdamore/tcell/v2"
)

// Monitor is an optional terminal live-status dashboard: one line per
// print step showing t, Δt, iteration count, residual and the velocity
// extrema, refreshed in place.
type Monitor struct {
	screen tcell.Screen
	row    int
}

// NewMonitor initializes a tcell screen for the monitor. Callers must call
// Close when the run ends.
func NewMonitor() (*Monitor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, chk.Err("cannot create terminal screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, chk.Err("cannot initialize terminal screen: %v", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	return &Monitor{screen: screen}, nil
}

// Update draws one status line for the given print step and flushes the
// screen.
func (m *Monitor) Update(step int, t, dt, resid float64, iter int, uMax, vMax float64) {
	line := fmt.Sprintf("step=%-6d t=%-10.4f dt=%-10.4f iter=%-4d res=%-10.3e |U|max=%-8.3f |V|max=%-8.3f",
		step, t, dt, iter, resid, uMax, vMax)
	m.screen.Clear()
	drawText(m.screen, 0, 0, line)
	m.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// Close shuts down the terminal screen, restoring the prior terminal
// state.
func (m *Monitor) Close() {
	m.screen.Fini()
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/nsflow/types"
)

// Load reads a scenario file (see SPEC_FULL.md §6) into a fresh Geometry,
// then calls Recalculate. IOFailure on a missing file, InvalidConfig on a
// malformed cell-type byte or boundary-type combination.
func Load(path string) (*Geometry, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("IOFailure: cannot read scenario file %q:\n%v", path, err)
	}
	g := &Geometry{}
	lines := strings.Split(string(buf), "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		i++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		args := fields[1:]
		switch key {
		case "size":
			nx, ny, err := parseTwoInts(args)
			if err != nil {
				return nil, err
			}
			g.S = types.NewVec2XY(types.Index(nx+2), types.Index(ny+2))
		case "length":
			lx, ly, err := parseTwoFloats(args)
			if err != nil {
				return nil, err
			}
			g.L = types.NewVec2XY(lx, ly)
		case "velocity":
			vals, err := parseFloats(args, 8)
			if err != nil {
				return nil, err
			}
			setVelocityValues(g, vals)
		case "pressure":
			vals, err := parseFloats(args, 4)
			if err != nil {
				return nil, err
			}
			for e := 0; e < 4; e++ {
				g.P[e].Value = vals[e]
			}
		case "v_type":
			kinds, err := parseKinds(args, 8)
			if err != nil {
				return nil, err
			}
			setVelocityKinds(g, kinds)
		case "p_type":
			kinds, err := parseKinds(args, 4)
			if err != nil {
				return nil, err
			}
			for e := 0; e < 4; e++ {
				g.P[e].Kind = kinds[e]
			}
		case "trace":
			x, y, err := parseTwoFloats(args)
			if err != nil {
				return nil, err
			}
			g.Traces = append(g.Traces, ParticleSeed{Pos: types.NewVec2XY(x, y)})
		case "streakline":
			x, y, err := parseTwoFloats(args)
			if err != nil {
				return nil, err
			}
			g.Streaklines = append(g.Streaklines, ParticleSeed{Pos: types.NewVec2XY(x, y)})
		case "geometry":
			if len(args) > 0 && strings.ToLower(args[0]) == "free" {
				n, err := readFreeGeometry(g, lines, i)
				if err != nil {
					return nil, err
				}
				i += n
			}
		default:
			io.Pfyel("geometry: unknown key %q ignored\n", key)
		}
	}
	if g.S.X < 3 || g.S.Y < 3 {
		return nil, chk.Err("InvalidConfig: grid size must be at least 3x3 including ghosts")
	}
	if len(g.Cells) == 0 {
		g.Cells = make([]types.CellType, int(g.S.X)*int(g.S.Y))
		for i := range g.Cells {
			g.Cells[i] = types.Fluid
		}
		sealOuterRing(g)
	}
	g.Recalculate()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// sealOuterRing marks the outer ring Obstacle when no `geometry free`
// block was supplied, matching the invariant that the outer ring is
// always non-Fluid.
func sealOuterRing(g *Geometry) {
	for x := types.Index(0); x < g.S.X; x++ {
		g.Cells[x] = types.Obstacle
		g.Cells[(g.S.Y-1)*g.S.X+x] = types.Obstacle
	}
	for y := types.Index(0); y < g.S.Y; y++ {
		g.Cells[y*g.S.X] = types.Obstacle
		g.Cells[y*g.S.X+g.S.X-1] = types.Obstacle
	}
}

// ObstacleTag returns the per-cell integer tag baked from the optional
// second character of a `geometry free` row (SPEC_FULL supplemented
// feature: multiple obstacle islands for force reporting). 0 when the
// scenario omitted tags.
func (g *Geometry) ObstacleTag(i types.Index) int {
	if g.tags == nil {
		return 0
	}
	return int(g.tags[i])
}

// readFreeGeometry reads Sy rows of Sx ASCII cell-type characters, top-down,
// storing them reversed into the row-major map. A row either lists the type
// bytes alone or follows each one with a second character, an ASCII-digit
// tag or any separator. Returns the number of lines consumed.
func readFreeGeometry(g *Geometry, lines []string, start int) (int, error) {
	sy := int(g.S.Y)
	sx := int(g.S.X)
	g.Cells = make([]types.CellType, sx*sy)
	g.tags = make([]byte, sx*sy)
	row := 0
	consumed := 0
	for idx := start; idx < len(lines) && row < sy; idx++ {
		line := lines[idx]
		consumed++
		if strings.TrimSpace(line) == "" {
			continue
		}
		// file row 0 is the TOP row (y = Sy-1); store reversed.
		y := sy - 1 - row
		stride := 1
		if len(strings.TrimRight(line, " \t\r")) >= 2*sx-1 {
			stride = 2 // type byte plus tag or separator per cell
		}
		for x := 0; x < sx && stride*x < len(line); x++ {
			b := line[stride*x]
			ct, ok := types.ParseCellType(b)
			if !ok {
				return consumed, chk.Err("InvalidConfig: unknown cell type byte %q at row %d col %d", b, row, x)
			}
			g.Cells[y*sx+x] = ct
			if stride == 2 && 2*x+1 < len(line) {
				if tag := line[2*x+1]; tag >= '0' && tag <= '9' {
					g.tags[y*sx+x] = tag - '0'
				}
			}
		}
		row++
	}
	return consumed, nil
}

func setVelocityValues(g *Geometry, v []types.Real) {
	g.U[0].Value, g.V[0].Value = v[0], v[1]
	g.U[1].Value, g.V[1].Value = v[2], v[3]
	g.U[2].Value, g.V[2].Value = v[4], v[5]
	g.U[3].Value, g.V[3].Value = v[6], v[7]
}

func setVelocityKinds(g *Geometry, k []types.BCKind) {
	g.U[0].Kind, g.V[0].Kind = k[0], k[1]
	g.U[1].Kind, g.V[1].Kind = k[2], k[3]
	g.U[2].Kind, g.V[2].Kind = k[4], k[5]
	g.U[3].Kind, g.V[3].Kind = k[6], k[7]
}

func parseTwoInts(args []string) (a, b int, err error) {
	if len(args) < 2 {
		return 0, 0, chk.Err("InvalidConfig: expected two integers")
	}
	ai, e1 := strconv.Atoi(args[0])
	bi, e2 := strconv.Atoi(args[1])
	if e1 != nil || e2 != nil {
		return 0, 0, chk.Err("InvalidConfig: cannot parse integers %v", args[:2])
	}
	return ai, bi, nil
}

func parseTwoFloats(args []string) (a, b types.Real, err error) {
	vals, err := parseFloats(args, 2)
	if err != nil {
		return 0, 0, err
	}
	return vals[0], vals[1], nil
}

func parseFloats(args []string, n int) ([]types.Real, error) {
	if len(args) < n {
		return nil, chk.Err("InvalidConfig: expected %d numbers, got %d", n, len(args))
	}
	out := make([]types.Real, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, chk.Err("InvalidConfig: cannot parse number %q", args[i])
		}
		out[i] = f
	}
	return out, nil
}

func parseKinds(args []string, n int) ([]types.BCKind, error) {
	if len(args) < n {
		return nil, chk.Err("InvalidConfig: expected %d boundary tags, got %d", n, len(args))
	}
	out := make([]types.BCKind, n)
	for i := 0; i < n; i++ {
		switch strings.ToLower(args[i]) {
		case "d":
			out[i] = types.Dirichlet
		case "n":
			out[i] = types.Neumann
		default:
			return nil, chk.Err("InvalidConfig: boundary tag must be 'd' or 'n', got %q", args[i])
		}
	}
	return out, nil
}

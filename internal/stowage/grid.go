package stowage

import (
	"context"
	"fmt"
)

// emptyCell is the sentinel stored in a grid cell with no occupant.
const emptyCell = ""

// grid is the container-sized 3D occupancy array mapping each unit cell to
// an item id or emptyCell. Only ids are stored — no back-pointers to
// catalogue records — per spec.md §9's "cyclic structures" note.
type grid struct {
	dims Dimensions
	// cells is flattened row-major over (x, y, z): index = x*D*H + y*H + z.
	cells []string
}

func newGrid(dims Dimensions) (*grid, error) {
	if err := validateDimensions(dims); err != nil {
		return nil, err
	}
	return &grid{
		dims:  dims,
		cells: make([]string, dims.W*dims.D*dims.H),
	}, nil
}

func (g *grid) index(pos Coordinate) int {
	return pos.X*g.dims.D*g.dims.H + pos.Y*g.dims.H + pos.Z
}

func (g *grid) inBounds(pos Coordinate) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.Z >= 0 &&
		pos.X < g.dims.W && pos.Y < g.dims.D && pos.Z < g.dims.H
}

func (g *grid) containerBox() Box {
	return Box{Pos: Coordinate{}, Dims: g.dims}
}

// cellAt returns the id occupying pos, or "" if empty. pos must be in bounds.
func (g *grid) cellAt(pos Coordinate) string {
	return g.cells[g.index(pos)]
}

// isFree reports whether every cell of the box at pos with dims is inside
// the container and unoccupied.
func (g *grid) isFree(pos Coordinate, dims Dimensions) bool {
	box := Box{Pos: pos, Dims: dims}
	if !contains(g.containerBox(), box) {
		return false
	}
	for x := pos.X; x < pos.X+dims.W; x++ {
		for y := pos.Y; y < pos.Y+dims.D; y++ {
			for z := pos.Z; z < pos.Z+dims.H; z++ {
				if g.cells[g.index(Coordinate{x, y, z})] != emptyCell {
					return false
				}
			}
		}
	}
	return true
}

// occupy fills the box at pos with id. Precondition: isFree(pos, dims).
func (g *grid) occupy(pos Coordinate, dims Dimensions, id string) error {
	if !g.isFree(pos, dims) {
		return newErr(CodeConflict, fmt.Sprintf("cannot occupy %+v/%+v for %q: not free", pos, dims, id))
	}
	g.paint(pos, dims, id)
	return nil
}

func (g *grid) paint(pos Coordinate, dims Dimensions, id string) {
	for x := pos.X; x < pos.X+dims.W; x++ {
		for y := pos.Y; y < pos.Y+dims.D; y++ {
			for z := pos.Z; z < pos.Z+dims.H; z++ {
				g.cells[g.index(Coordinate{x, y, z})] = id
			}
		}
	}
}

// release clears every cell holding id. Returns false (not an error) if id
// was not found, per spec.md §4.3's idempotent-for-unknown-id contract.
func (g *grid) release(id string) bool {
	found := false
	for i, v := range g.cells {
		if v == id {
			g.cells[i] = emptyCell
			found = true
		}
	}
	return found
}

// findEmptyPositions visits, in row-major (x, y, z) order, every position
// at which a box of dims would be free, until visit returns false. This
// ordering is part of the contract: it determines placement-search tie-breaks.
func (g *grid) findEmptyPositions(dims Dimensions, visit func(Coordinate) bool) {
	if dims.W > g.dims.W || dims.D > g.dims.D || dims.H > g.dims.H {
		return
	}
	for x := 0; x <= g.dims.W-dims.W; x++ {
		for y := 0; y <= g.dims.D-dims.D; y++ {
			for z := 0; z <= g.dims.H-dims.H; z++ {
				pos := Coordinate{x, y, z}
				if g.isFree(pos, dims) {
					if !visit(pos) {
						return
					}
				}
			}
		}
	}
}

// collectEmptyPositions is findEmptyPositions collected into a slice.
func (g *grid) collectEmptyPositions(dims Dimensions) []Coordinate {
	var out []Coordinate
	g.findEmptyPositions(dims, func(c Coordinate) bool {
		out = append(out, c)
		return true
	})
	return out
}

// findLargestEmptyBox returns a maximal empty axis-aligned box, or false if
// the grid is fully occupied. The result is a pure function of the current
// grid only (spec.md §4.3). ctx is polled between candidate corners so a
// caller can cancel a scan over a very large container.
func (g *grid) findLargestEmptyBox(ctx context.Context) (Box, bool, error) {
	var (
		best    Box
		bestSet bool
	)

	for x := 0; x < g.dims.W; x++ {
		if err := ctx.Err(); err != nil {
			return Box{}, false, wrapErr(CodeCancelled, "findLargestEmptyBox cancelled", err)
		}
		for y := 0; y < g.dims.D; y++ {
			for z := 0; z < g.dims.H; z++ {
				start := Coordinate{x, y, z}
				if g.cellAt(start) != emptyCell {
					continue
				}
				cand := g.expandFrom(start)
				if !bestSet || betterBox(cand, best) {
					best = cand
					bestSet = true
				}
			}
		}
	}
	if !bestSet {
		return Box{}, false, nil
	}
	return best, true, nil
}

// expandFrom greedily grows an empty box whose minimal corner is start:
// first the run along x, then the deepest slab that run supports, then the
// tallest box that slab supports. The result cannot be extended further
// along x, y or z, but it is not necessarily the largest-volume box with
// that corner (a shorter x run may allow a deeper or taller box). This is the "straightforward
// implementation scans candidate upper-left cells and expands" strategy
// spec.md §4.3 explicitly sanctions over an optimised histogram technique.
func (g *grid) expandFrom(start Coordinate) Box {
	maxW := 0
	for x := start.X; x < g.dims.W; x++ {
		if g.cellAt(Coordinate{x, start.Y, start.Z}) != emptyCell {
			break
		}
		maxW++
	}

	maxD := 0
	for y := start.Y; y < g.dims.D; y++ {
		rowClear := true
		for x := start.X; x < start.X+maxW; x++ {
			if g.cellAt(Coordinate{x, y, start.Z}) != emptyCell {
				rowClear = false
				break
			}
		}
		if !rowClear {
			break
		}
		maxD++
	}

	maxH := 0
	for z := start.Z; z < g.dims.H; z++ {
		sliceClear := true
		for x := start.X; x < start.X+maxW && sliceClear; x++ {
			for y := start.Y; y < start.Y+maxD; y++ {
				if g.cellAt(Coordinate{x, y, z}) != emptyCell {
					sliceClear = false
					break
				}
			}
		}
		if !sliceClear {
			break
		}
		maxH++
	}

	return Box{Pos: start, Dims: Dimensions{W: maxW, D: maxD, H: maxH}}
}

// betterBox reports whether candidate beats current under spec.md §4.3's
// tie-break: larger volume wins; ties broken by smallest (x,y,z), then
// largest width, then depth, then height.
func betterBox(candidate, current Box) bool {
	cv, ov := candidate.Volume(), current.Volume()
	if cv != ov {
		return cv > ov
	}
	if candidate.Pos != current.Pos {
		return lessCoordinate(candidate.Pos, current.Pos)
	}
	if candidate.Dims.W != current.Dims.W {
		return candidate.Dims.W > current.Dims.W
	}
	if candidate.Dims.D != current.Dims.D {
		return candidate.Dims.D > current.Dims.D
	}
	return candidate.Dims.H > current.Dims.H
}

func lessCoordinate(a, b Coordinate) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// clone returns a deep copy of the grid for scratch computations that must
// not disturb the live occupancy state (e.g. ranker candidate evaluation).
func (g *grid) clone() *grid {
	cp := make([]string, len(g.cells))
	copy(cp, g.cells)
	return &grid{dims: g.dims, cells: cp}
}

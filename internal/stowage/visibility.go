package stowage

import "fmt"

// Face is the single side of a container through which items enter and leave.
type Face string

const (
	FaceFront  Face = "front"
	FaceBack   Face = "back"
	FaceLeft   Face = "left"
	FaceRight  Face = "right"
	FaceTop    Face = "top"
	FaceBottom Face = "bottom"
)

func validateFace(f Face) error {
	switch f {
	case FaceFront, FaceBack, FaceLeft, FaceRight, FaceTop, FaceBottom:
		return nil
	default:
		return newErr(CodeInvalidArgument, fmt.Sprintf("unknown open face %q", f))
	}
}

// axis indices into Dimensions/Coordinate triples.
const (
	axisX = 0
	axisY = 1
	axisZ = 2
)

// faceAxisDir returns the extraction axis and outward direction for a face,
// per spec.md §4.5: front -> -y, back -> +y, left -> -x, right -> +x,
// bottom -> -z, top -> +z.
func faceAxisDir(f Face) (axis int, dir int) {
	switch f {
	case FaceFront:
		return axisY, -1
	case FaceBack:
		return axisY, +1
	case FaceLeft:
		return axisX, -1
	case FaceRight:
		return axisX, +1
	case FaceBottom:
		return axisZ, -1
	case FaceTop:
		return axisZ, +1
	}
	return axisY, -1
}

func coordAxis(c Coordinate, axis int) int {
	switch axis {
	case axisX:
		return c.X
	case axisY:
		return c.Y
	default:
		return c.Z
	}
}

func dimsAxis(d Dimensions, axis int) int {
	switch axis {
	case axisX:
		return d.W
	case axisY:
		return d.D
	default:
		return d.H
	}
}

func withAxis(c Coordinate, axis, v int) Coordinate {
	switch axis {
	case axisX:
		c.X = v
	case axisY:
		c.Y = v
	default:
		c.Z = v
	}
	return c
}

// axisSize returns the container's extent along axis.
func axisSize(containerDims Dimensions, axis int) int {
	return dimsAxis(containerDims, axis)
}

// nearFaceCoord returns the coordinate of box's extraction-side face along
// axis in the given direction: the min coordinate for dir=-1 (items leave
// toward 0), the exclusive max coordinate for dir=+1 (items leave toward
// axisSize). Per DESIGN.md's Open Question resolution, "touches the open
// face" is always read against this single extraction-side face, for every
// face including back/right/top.
func nearFaceCoord(box Box, axis, dir int) int {
	if dir < 0 {
		return coordAxis(box.Pos, axis)
	}
	return coordAxis(box.Max(), axis)
}

// isItemVisible reports whether box touches the open face.
func isItemVisible(box Box, face Face, containerDims Dimensions) bool {
	axis, dir := faceAxisDir(face)
	size := axisSize(containerDims, axis)
	near := nearFaceCoord(box, axis, dir)
	if dir < 0 {
		return near == 0
	}
	return near == size
}

// isCellVisible reports whether every cell strictly between cell and the
// open face along the extraction axis (holding the other two coordinates
// fixed) is empty or owned by id itself. This permits an item to partially
// shadow itself.
func (g *grid) isCellVisible(cell Coordinate, id string, face Face) bool {
	axis, dir := faceAxisDir(face)
	size := axisSize(g.dims, axis)
	at := coordAxis(cell, axis)

	if dir < 0 {
		for v := at - 1; v >= 0; v-- {
			occ := g.cellAt(withAxis(cell, axis, v))
			if occ != emptyCell && occ != id {
				return false
			}
		}
		return true
	}
	for v := at + 1; v < size; v++ {
		occ := g.cellAt(withAxis(cell, axis, v))
		if occ != emptyCell && occ != id {
			return false
		}
	}
	return true
}

// visibilityScore is 100 * visibleCells / totalCells over the item's box.
func (g *grid) visibilityScore(box Box, id string, face Face) float64 {
	total := 0
	visible := 0
	for x := box.Pos.X; x < box.Pos.X+box.Dims.W; x++ {
		for y := box.Pos.Y; y < box.Pos.Y+box.Dims.D; y++ {
			for z := box.Pos.Z; z < box.Pos.Z+box.Dims.H; z++ {
				total++
				if g.isCellVisible(Coordinate{x, y, z}, id, face) {
					visible++
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(visible) / float64(total)
}

// findBlockingItems scans the rectangular corridor between box and the open
// face — box's footprint on the two perpendicular axes, extruded from the
// box's near face to the open face — and returns every distinct id other
// than excludeID found in that corridor. A direct-shadow model: only items
// within the target's own projected footprint block it.
func (g *grid) findBlockingItems(box Box, excludeID string, face Face) []string {
	axis, dir := faceAxisDir(face)
	size := axisSize(g.dims, axis)
	near := nearFaceCoord(box, axis, dir)

	var lo, hi int // corridor range on axis, half-open [lo, hi)
	if dir < 0 {
		lo, hi = 0, near
	} else {
		lo, hi = near, size
	}

	seen := make(map[string]struct{})
	for v := lo; v < hi; v++ {
		for o1 := perpLo(box, axis, 0); o1 < perpHi(box, axis, 0); o1++ {
			for o2 := perpLo(box, axis, 1); o2 < perpHi(box, axis, 1); o2++ {
				cell := corridorCoordinate(axis, v, o1, o2)
				occ := g.cellAt(cell)
				if occ != emptyCell && occ != excludeID {
					seen[occ] = struct{}{}
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out
}

// perpAxes returns the two axes perpendicular to axis, in a fixed order.
func perpAxes(axis int) (int, int) {
	switch axis {
	case axisX:
		return axisY, axisZ
	case axisY:
		return axisX, axisZ
	default:
		return axisX, axisY
	}
}

func perpLo(box Box, axis, which int) int {
	a1, a2 := perpAxes(axis)
	if which == 0 {
		return coordAxis(box.Pos, a1)
	}
	return coordAxis(box.Pos, a2)
}

func perpHi(box Box, axis, which int) int {
	a1, a2 := perpAxes(axis)
	if which == 0 {
		return coordAxis(box.Max(), a1)
	}
	return coordAxis(box.Max(), a2)
}

func corridorCoordinate(axis, v, o1, o2 int) Coordinate {
	a1, a2 := perpAxes(axis)
	c := Coordinate{}
	c = withAxis(c, axis, v)
	c = withAxis(c, a1, o1)
	c = withAxis(c, a2, o2)
	return c
}

// accessibilityScore is the weighted sum from spec.md §4.5: 0.40 visibility
// + 0.40 blocker-count term + 0.20 distance-to-face term, all in [0,100].
func (g *grid) accessibilityScore(box Box, id string, face Face, blockers []string) float64 {
	v := g.visibilityScore(box, id, face)

	blockerTerm := maxFloat(0, 40-10*float64(len(blockers))) / 40 * 100

	axis, dir := faceAxisDir(face)
	size := axisSize(g.dims, axis)
	near := nearFaceCoord(box, axis, dir)
	var distance int
	if dir < 0 {
		distance = near
	} else {
		distance = size - near
	}
	axisMax := size - 1
	if axisMax < 1 {
		axisMax = 1
	}
	distanceTerm := maxFloat(0, 20-20*float64(distance)/float64(axisMax)) / 20 * 100

	return 0.40*v + 0.40*blockerTerm + 0.20*distanceTerm
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

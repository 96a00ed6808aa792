package stowage

// Placement is one feasible (position, orientation, effective-dimensions)
// candidate for placing an item of some original dimensions.
type Placement struct {
	Position    Coordinate
	Orientation Orientation
	EffDims     Dimensions
}

// findValidPlacements enumerates, for each of the six orientations in
// allOrientations order, every free position for the corresponding
// effective dimensions (positions in the grid's row-major order). The
// sequence is the concatenation in orientation order (spec.md §4.6).
func (g *grid) findValidPlacements(origDims Dimensions) []Placement {
	var out []Placement
	for _, orient := range allOrientations() {
		eff := apply(orient, origDims)
		if eff.W > g.dims.W || eff.D > g.dims.D || eff.H > g.dims.H {
			continue
		}
		g.findEmptyPositions(eff, func(pos Coordinate) bool {
			out = append(out, Placement{Position: pos, Orientation: orient, EffDims: eff})
			return true
		})
	}
	return out
}

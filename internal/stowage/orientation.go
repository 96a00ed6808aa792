package stowage

import "fmt"

// Orientation is a permutation (aw, ad, ah) of (0,1,2) giving, for each of
// an item's original dimensions, which container axis it lies along.
type Orientation struct {
	AW, AD, AH int
}

// allOrientations returns the six valid orientations in a fixed order; this
// order is part of the placement-search contract (spec.md §4.6).
func allOrientations() []Orientation {
	return []Orientation{
		{0, 1, 2},
		{0, 2, 1},
		{1, 0, 2},
		{1, 2, 0},
		{2, 0, 1},
		{2, 1, 0},
	}
}

// validateOrientation rejects any triple that is not a permutation of {0,1,2}.
func validateOrientation(o Orientation) error {
	seen := [3]bool{}
	for _, v := range []int{o.AW, o.AD, o.AH} {
		if v < 0 || v > 2 || seen[v] {
			return newErr(CodeInvalidArgument, fmt.Sprintf("orientation %+v is not a permutation of {0,1,2}", o))
		}
		seen[v] = true
	}
	return nil
}

// apply returns the effective dimensions of origDims under orientation o.
func apply(o Orientation, origDims Dimensions) Dimensions {
	orig := [3]int{origDims.W, origDims.D, origDims.H}
	return Dimensions{W: orig[o.AW], D: orig[o.AD], H: orig[o.AH]}
}

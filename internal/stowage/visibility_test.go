package stowage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSeedScenario1LoneItemAtOpenFaceIsFullyAccessible pins a 10x8x5
// front-open container holding a single 3x2x2 item at the origin: fully
// visible, no blockers, zero distance from the face.
func TestSeedScenario1LoneItemAtOpenFaceIsFullyAccessible(t *testing.T) {
	g, err := newGrid(Dimensions{W: 10, D: 8, H: 5})
	require.NoError(t, err)

	box := Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{3, 2, 2}}
	require.NoError(t, g.occupy(box.Pos, box.Dims, "ITEM001"))

	assert.True(t, isItemVisible(box, FaceFront, g.dims))
	assert.Equal(t, 100.0, g.visibilityScore(box, "ITEM001", FaceFront))

	blockers := g.findBlockingItems(box, "ITEM001", FaceFront)
	assert.Empty(t, blockers)
	assert.Equal(t, 100.0, g.accessibilityScore(box, "ITEM001", FaceFront, blockers))
}

// TestSeedScenario2ItemSetBackFromFaceIsNotVisibleWithNoBlockers pins the
// companion scenario: an item placed with clear corridor to the face (no
// other occupant in front of it) is inaccessible-by-visibility alone but
// carries zero blockers, since nothing stands between it and the face.
func TestSeedScenario2ItemSetBackFromFaceIsNotVisibleWithNoBlockers(t *testing.T) {
	g, err := newGrid(Dimensions{W: 10, D: 8, H: 5})
	require.NoError(t, err)

	// orig dims 2x3x1 under orientation (1,0,2) -> effDims 3x2x1.
	eff := apply(Orientation{AW: 1, AD: 0, AH: 2}, Dimensions{W: 2, D: 3, H: 1})
	require.Equal(t, Dimensions{W: 3, D: 2, H: 1}, eff)

	box := Box{Pos: Coordinate{4, 2, 0}, Dims: eff}
	require.NoError(t, g.occupy(box.Pos, box.Dims, "ITEM002"))

	assert.False(t, isItemVisible(box, FaceFront, g.dims))

	blockers := g.findBlockingItems(box, "ITEM002", FaceFront)
	assert.Empty(t, blockers, "nothing occupies the corridor between ITEM002 and the open face")
}

// TestSeedScenario3StackedItemIsBlockedByItsNeighbour pins the two-item
// blocking example with two 4x2x4 slabs: ITEM_A sits against the open face of
// a 4x4x4 front-open container, ITEM_B sits directly behind it sharing the
// same footprint, so
// ITEM_A is the sole entry of ITEM_B's blocker list.
func TestSeedScenario3StackedItemIsBlockedByItsNeighbour(t *testing.T) {
	g, err := newGrid(Dimensions{W: 4, D: 4, H: 4})
	require.NoError(t, err)

	boxA := Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{4, 2, 4}}
	boxB := Box{Pos: Coordinate{0, 2, 0}, Dims: Dimensions{4, 2, 4}}
	require.NoError(t, g.occupy(boxA.Pos, boxA.Dims, "ITEM_A"))
	require.NoError(t, g.occupy(boxB.Pos, boxB.Dims, "ITEM_B"))

	assert.True(t, isItemVisible(boxA, FaceFront, g.dims))
	assert.False(t, isItemVisible(boxB, FaceFront, g.dims))

	blockers := g.findBlockingItems(boxB, "ITEM_B", FaceFront)
	assert.Equal(t, []string{"ITEM_A"}, blockers)

	aBlockers := g.findBlockingItems(boxA, "ITEM_A", FaceFront)
	assert.Empty(t, aBlockers, "the item nearest the face has nothing ahead of it")
}

func TestIsCellVisibleAllowsSelfShadowing(t *testing.T) {
	g, err := newGrid(Dimensions{W: 4, D: 4, H: 4})
	require.NoError(t, err)

	box := Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{1, 3, 1}}
	require.NoError(t, g.occupy(box.Pos, box.Dims, "A"))

	// The cell farthest from the face belongs to the same item as the cells
	// in front of it, so it must still read as visible.
	assert.True(t, g.isCellVisible(Coordinate{0, 2, 0}, "A", FaceFront))
}

func TestAccessibilityScoreDegradesWithEachBlocker(t *testing.T) {
	g, err := newGrid(Dimensions{W: 4, D: 4, H: 4})
	require.NoError(t, err)

	box := Box{Pos: Coordinate{0, 3, 0}, Dims: Dimensions{4, 1, 4}}
	require.NoError(t, g.occupy(box.Pos, box.Dims, "TARGET"))

	zero := g.accessibilityScore(box, "TARGET", FaceFront, nil)
	one := g.accessibilityScore(box, "TARGET", FaceFront, []string{"X"})
	two := g.accessibilityScore(box, "TARGET", FaceFront, []string{"X", "Y"})

	assert.Greater(t, zero, one)
	assert.Greater(t, one, two)
}

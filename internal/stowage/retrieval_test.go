package stowage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRetrievalPlanOrdersMovesThenRetrieve(t *testing.T) {
	plan := buildRetrievalPlan("TARGET", []string{"A", "B"})
	require.Len(t, plan.Steps, 3)
	assert.Equal(t, RetrievalStep{Kind: StepMove, ID: "A"}, plan.Steps[0])
	assert.Equal(t, RetrievalStep{Kind: StepMove, ID: "B"}, plan.Steps[1])
	assert.Equal(t, RetrievalStep{Kind: StepRetrieve, ID: "TARGET"}, plan.Steps[2])
}

func TestBuildRetrievalPlanWithNoBlockersIsJustRetrieve(t *testing.T) {
	plan := buildRetrievalPlan("TARGET", nil)
	assert.Equal(t, []RetrievalStep{{Kind: StepRetrieve, ID: "TARGET"}}, plan.Steps)
}

// TestRetrievalPlanDoesNotRecurseIntoABlockersOwnBlockers pins spec.md
// §4.8/§9's non-recursive planner: TARGET is blocked only by MID, but MID
// is itself blocked by DEEP (outside TARGET's own extraction corridor).
// RetrievalPlan(TARGET) must name MID and stop there — DEEP must never
// appear, since resolving it is left to a caller that plans MID's own
// retrieval separately.
func TestRetrievalPlanDoesNotRecurseIntoABlockersOwnBlockers(t *testing.T) {
	c, err := NewContainer("C1", "zone-a", Dimensions{6, 4, 4}, FaceFront, DefaultConfig())
	require.NoError(t, err)

	place := func(id string, pos Coordinate, dims Dimensions) {
		_, err := c.PlaceItem(context.Background(), highPriorityItem(id, dims),
			ModeRanked, PlacementHint{PreferredPos: &pos, PreferredOrient: &Orientation{0, 1, 2}})
		require.NoError(t, err)
	}

	// DEEP sits against the open face but off to the side of TARGET's own
	// footprint; MID spans both its own width and TARGET's, one step back
	// from the face; TARGET sits deepest, directly behind MID only.
	place("DEEP", Coordinate{2, 0, 0}, Dimensions{2, 1, 4})
	place("MID", Coordinate{0, 1, 0}, Dimensions{4, 1, 4})
	place("TARGET", Coordinate{0, 2, 0}, Dimensions{2, 2, 4})

	plan, err := c.RetrievalPlan("TARGET")
	require.NoError(t, err)
	assert.Equal(t, []RetrievalStep{
		{Kind: StepMove, ID: "MID"},
		{Kind: StepRetrieve, ID: "TARGET"},
	}, plan.Steps, "DEEP blocks MID, not TARGET directly, and must not appear here")

	midBlockers, err := c.BlockingItems("MID")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEEP"}, midBlockers, "DEEP is MID's own blocker, resolved only by a separate call")
}

package stowage

import (
	"context"
	"time"
)

const scratchOccupantID = "__fragmentation_scratch__"

// FragmentationReport is the result of fragmentationAnalysis (C9):
// the fragmentation index (largest empty box volume / total free volume)
// and the collected boxes, largest first.
type FragmentationReport struct {
	Index float64
	Boxes []Box
}

func countEmptyCells(g *grid) int {
	n := 0
	for _, v := range g.cells {
		if v == emptyCell {
			n++
		}
	}
	return n
}

// fragmentationAnalysis iteratively extracts the largest empty box from a
// scratch copy of g, marking it temporarily occupied, until either the
// remaining empty volume is covered or maxBoxes boxes are collected. It
// never mutates g: all work happens on a clone, which is the "immutable
// view" alternative spec.md §9 offers to a save/restore guard, so the
// operation is a pure query by construction and every exit path — normal
// return, cancellation, or a future panic — leaves g untouched.
func fragmentationAnalysis(ctx context.Context, g *grid, maxBoxes int) (FragmentationReport, error) {
	totalFree := countEmptyCells(g)
	if totalFree == 0 {
		return FragmentationReport{Index: 0}, nil
	}

	working := g.clone()
	var boxes []Box
	firstVolume := 0
	covered := 0

	for i := 0; i < maxBoxes; i++ {
		if err := ctx.Err(); err != nil {
			return FragmentationReport{}, wrapErr(CodeCancelled, "fragmentationAnalysis cancelled", err)
		}
		box, found, err := working.findLargestEmptyBox(ctx)
		if err != nil {
			return FragmentationReport{}, err
		}
		if !found {
			break
		}
		if i == 0 {
			firstVolume = box.Volume()
		}
		boxes = append(boxes, box)
		working.paint(box.Pos, box.Dims, scratchOccupantID)
		covered += box.Volume()
		if covered >= totalFree {
			break
		}
	}

	index := 0.0
	if totalFree > 0 {
		index = float64(firstVolume) / float64(totalFree)
	}
	return FragmentationReport{Index: index, Boxes: boxes}, nil
}

// utilizationRatio is sum(volume of placed items) / container volume.
func utilizationRatio(placed []*PlacedItem, containerVolume int) float64 {
	if containerVolume == 0 {
		return 0
	}
	used := 0
	for _, p := range placed {
		used += p.Box().Volume()
	}
	return float64(used) / float64(containerVolume)
}

// ExpiringItem is one entry of ExpiringWithin, annotated with its current
// accessibility score.
type ExpiringItem struct {
	ID            string
	Expiry        time.Time
	Accessibility float64
}

// RecommendationCategory names the advisory tags recommendations() can emit.
type RecommendationCategory string

const (
	RecAccessibility RecommendationCategory = "accessibility"
	RecExpiry        RecommendationCategory = "expiry"
	RecFragmentation RecommendationCategory = "fragmentation"
	RecUtilization   RecommendationCategory = "utilization"
)

// Severity is the advisory level of a Recommendation.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Recommendation is one advisory tag from spec.md §4.9.
type Recommendation struct {
	Category RecommendationCategory
	Severity Severity
}

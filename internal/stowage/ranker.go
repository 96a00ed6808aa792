package stowage

import (
	"context"
	"math"
	"time"
)

// PlacementMode selects how findValidPlacements candidates are chosen.
type PlacementMode string

const (
	// ModeRanked scores every candidate on accessibility, fragmentation and
	// zone affinity, weighted by priority/expiry, and picks the best.
	ModeRanked PlacementMode = "ranked"
	// ModeAccessibilityOnly picks argmax accessibility directly.
	ModeAccessibilityOnly PlacementMode = "accessibility"
	// ModeFirstFit returns the first enumerated candidate.
	ModeFirstFit PlacementMode = "firstFit"
)

// PlacementScore is the breakdown behind a ranked placement decision.
type PlacementScore struct {
	Accessibility float64
	Fragmentation float64
	ZoneAffinity  float64
	Multiplier    float64
	Total         float64
}

// priorityMultiplier returns μ for a placement: the tier's base multiplier
// plus cfg.ExpiryBoost if the item expires within cfg.ExpiryBoostWindow days.
func priorityMultiplier(item Item, cfg Config, now time.Time) float64 {
	mu := cfg.PriorityMultipliers.forTier(item.Priority)
	if item.Expiry != nil {
		cutoff := truncateDay(now).AddDate(0, 0, cfg.ExpiryBoostWindow)
		if !truncateDay(*item.Expiry).After(cutoff) {
			mu += cfg.ExpiryBoost
		}
	}
	return mu
}

// zoneAffinity implements spec.md §4.7's Z component.
func zoneAffinity(item Item, placed []*PlacedItem, pos Coordinate, containerDims Dimensions) float64 {
	if item.PreferredZone == "" {
		return 50
	}
	best := math.Inf(1)
	for _, p := range placed {
		if p.PreferredZone != item.PreferredZone {
			continue
		}
		d := euclidean(pos, p.Position)
		if d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return 50
	}
	diag := math.Sqrt(float64(containerDims.W*containerDims.W + containerDims.D*containerDims.D + containerDims.H*containerDims.H))
	if diag == 0 {
		return 50
	}
	z := 100 - 100*best/diag
	if z < 0 {
		z = 0
	}
	return z
}

func euclidean(a, b Coordinate) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// candidateEvaluation is everything computed for one placement candidate.
type candidateEvaluation struct {
	placement Placement
	score     PlacementScore
}

// rankCandidates scores every candidate per spec.md §4.7 and returns them
// alongside their score, in original enumeration order, for the caller to
// pick a winner from according to mode.
func rankCandidates(ctx context.Context, base *grid, cat *catalogue, face Face, containerDims Dimensions, item Item, candidates []Placement, cfg Config, now time.Time) ([]candidateEvaluation, error) {
	v0Box, v0Found, err := base.findLargestEmptyBox(ctx)
	if err != nil {
		return nil, err
	}
	v0 := 0
	if v0Found {
		v0 = v0Box.Volume()
	}

	placedBefore := cat.all()
	mu := priorityMultiplier(item, cfg, now)

	out := make([]candidateEvaluation, 0, len(candidates))
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, wrapErr(CodeCancelled, "rankCandidates cancelled", err)
		}

		scratch := base.clone()
		box := Box{Pos: cand.Position, Dims: cand.EffDims}
		if err := scratch.occupy(cand.Position, cand.EffDims, item.ID); err != nil {
			continue
		}

		blockers := scratch.findBlockingItems(box, item.ID, face)
		a := scratch.accessibilityScore(box, item.ID, face, blockers)

		v1Box, v1Found, err := scratch.findLargestEmptyBox(ctx)
		if err != nil {
			return nil, err
		}
		f := 100.0
		if v0 > 0 {
			v1 := 0
			if v1Found {
				v1 = v1Box.Volume()
			}
			f = math.Min(100, 100*float64(v1)/float64(v0))
		}

		z := zoneAffinity(item, placedBefore, cand.Position, containerDims)

		w := cfg.RankerWeights
		total := mu * (w.Accessibility*a + w.Fragmentation*f + w.ZoneAffinity*z)

		out = append(out, candidateEvaluation{
			placement: cand,
			score: PlacementScore{
				Accessibility: a,
				Fragmentation: f,
				ZoneAffinity:  z,
				Multiplier:    mu,
				Total:         total,
			},
		})
	}
	return out, nil
}

// choosePlacement applies mode's selection rule over evaluated candidates.
// Ties are broken by enumeration order: later candidates only replace the
// current best on a strictly greater key.
func choosePlacement(evaluated []candidateEvaluation, mode PlacementMode) (candidateEvaluation, bool) {
	if len(evaluated) == 0 {
		return candidateEvaluation{}, false
	}
	if mode == ModeFirstFit {
		return evaluated[0], true
	}

	best := evaluated[0]
	for _, cand := range evaluated[1:] {
		var better bool
		switch mode {
		case ModeAccessibilityOnly:
			better = cand.score.Accessibility > best.score.Accessibility
		default: // ModeRanked
			better = cand.score.Total > best.score.Total
		}
		if better {
			best = cand
		}
	}
	return best, true
}

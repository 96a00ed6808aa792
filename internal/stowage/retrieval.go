package stowage

// StepKind distinguishes a retrieval-plan step.
type StepKind string

const (
	StepMove     StepKind = "move"
	StepRetrieve StepKind = "retrieve"
)

// RetrievalStep is one entry of a RetrievalPlan.
type RetrievalStep struct {
	Kind StepKind
	ID   string
}

// RetrievalPlan is the ordered list of items to extract to reach a target.
//
// It does not recursively resolve blockers of blockers: spec.md §4.8 and §9
// pin this as the intended first-version behaviour, so a blocker that is
// itself blocked is still emitted as a single "move" step here; a caller
// wanting a fully resolved multi-layer extraction iterates by calling
// RetrievalPlan again on each blocker.
type RetrievalPlan struct {
	Steps []RetrievalStep
}

// buildRetrievalPlan implements spec.md §4.8 exactly.
func buildRetrievalPlan(targetID string, blockers []string) RetrievalPlan {
	plan := RetrievalPlan{}
	for _, b := range blockers {
		plan.Steps = append(plan.Steps, RetrievalStep{Kind: StepMove, ID: b})
	}
	plan.Steps = append(plan.Steps, RetrievalStep{Kind: StepRetrieve, ID: targetID})
	return plan
}

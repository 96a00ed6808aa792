package stowage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Container is a single rectangular cargo container: dimensions, zone, a
// designated open face, and the occupancy grid + catalogue it owns. Per
// spec.md §5 it is single-threaded and synchronous — a caller requiring
// concurrent access must serialize externally (e.g. a sync.RWMutex around
// the Container), the engine itself takes no locks.
type Container struct {
	ID       string
	Zone     string
	Dims     Dimensions
	OpenFace Face

	grid *grid
	cat  *catalogue
	cfg  Config

	logger  *decisionLogger
	cache   *resultCache
	metrics *MetricsRegistry

	generation uint64
}

// Option customizes Container construction beyond the required fields.
type Option func(*Container)

// WithLogger attaches a zap.Logger for structured decision logging.
func WithLogger(z *zap.Logger) Option {
	return func(c *Container) { c.logger = &decisionLogger{z: z} }
}

// WithMetricsRegistry attaches a MetricsRegistry that PlaceItem/RemoveItem/
// Utilization/FragmentationAnalysis update as a side effect.
func WithMetricsRegistry(m *MetricsRegistry) Option {
	return func(c *Container) { c.metrics = m }
}

// NewContainer constructs a Container. cfg is validated; pass DefaultConfig()
// for spec.md's literal constants.
func NewContainer(id, zone string, dims Dimensions, openFace Face, cfg Config, opts ...Option) (*Container, error) {
	if id == "" {
		return nil, newErr(CodeInvalidArgument, "container id must not be empty")
	}
	if err := validateDimensions(dims); err != nil {
		return nil, err
	}
	if err := validateFace(openFace); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := newGrid(dims)
	if err != nil {
		return nil, err
	}
	cache, err := newResultCache(cfg.CacheMaxCost)
	if err != nil {
		return nil, err
	}

	c := &Container{
		ID:       id,
		Zone:     zone,
		Dims:     dims,
		OpenFace: openFace,
		grid:     g,
		cat:      newCatalogue(),
		cfg:      cfg,
		logger:   newNopLogger(),
		cache:    cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Container) bumpGeneration() {
	c.generation++
}

// PlacementHint is the closed options record from spec.md §9: preferred
// position/orientation are optional but there is no room for unknown keys.
type PlacementHint struct {
	PreferredPos    *Coordinate
	PreferredOrient *Orientation
}

// PlacementResult is the outcome of a successful PlaceItem.
type PlacementResult struct {
	Position    Coordinate
	Orientation Orientation
	EffDims     Dimensions
	Score       PlacementScore
}

// PlaceItem enumerates feasible placements (or the hinted subset), ranks
// them per mode, commits the winner to the grid and catalogue, and updates
// indexes and attached instrumentation.
func (c *Container) PlaceItem(ctx context.Context, item Item, mode PlacementMode, hint PlacementHint) (PlacementResult, error) {
	if err := item.validate(); err != nil {
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}
	if _, exists := c.cat.get(item.ID); exists {
		err := newErr(CodeConflict, fmt.Sprintf("item %q already placed in container %q", item.ID, c.ID))
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}

	candidates, err := c.candidatesFor(item.Dims, hint)
	if err != nil {
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}
	if len(candidates) == 0 {
		err := newErr(CodeConflict, fmt.Sprintf("no valid placement for item %q in container %q", item.ID, c.ID))
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}

	evaluated, err := rankCandidates(ctx, c.grid, c.cat, c.OpenFace, c.Dims, item, candidates, c.cfg, time.Now())
	if err != nil {
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}
	chosen, ok := choosePlacement(evaluated, mode)
	if !ok {
		err := newErr(CodeConflict, fmt.Sprintf("no valid placement for item %q in container %q", item.ID, c.ID))
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}

	if err := c.grid.occupy(chosen.placement.Position, chosen.placement.EffDims, item.ID); err != nil {
		c.logger.rejected(c.ID, item.ID, err)
		c.metrics.observePlacement(c.ID, c.Zone, false)
		return PlacementResult{}, err
	}

	placed := &PlacedItem{
		ID:            item.ID,
		Name:          item.Name,
		OrigDims:      item.Dims,
		Orientation:   chosen.placement.Orientation,
		EffDims:       chosen.placement.EffDims,
		Position:      chosen.placement.Position,
		Mass:          item.Mass,
		Priority:      item.Priority,
		Expiry:        item.Expiry,
		UsageLimit:    item.UsageLimit,
		PreferredZone: item.PreferredZone,
	}
	c.cat.add(placed)
	c.bumpGeneration()

	c.logger.placed(c.ID, *placed, chosen.score.Total)
	c.metrics.observePlacement(c.ID, c.Zone, true)
	c.updateUtilizationMetric()

	return PlacementResult{
		Position:    placed.Position,
		Orientation: placed.Orientation,
		EffDims:     placed.EffDims,
		Score:       chosen.score,
	}, nil
}

// candidatesFor applies an optional PlacementHint to narrow the full
// findValidPlacements enumeration down to the hinted subset.
func (c *Container) candidatesFor(origDims Dimensions, hint PlacementHint) ([]Placement, error) {
	if hint.PreferredOrient != nil {
		if err := validateOrientation(*hint.PreferredOrient); err != nil {
			return nil, err
		}
	}
	if hint.PreferredPos != nil {
		if err := validateCoordinate(*hint.PreferredPos); err != nil {
			return nil, err
		}
	}

	all := c.grid.findValidPlacements(origDims)
	if hint.PreferredPos == nil && hint.PreferredOrient == nil {
		return all, nil
	}

	var out []Placement
	for _, cand := range all {
		if hint.PreferredOrient != nil && cand.Orientation != *hint.PreferredOrient {
			continue
		}
		if hint.PreferredPos != nil && cand.Position != *hint.PreferredPos {
			continue
		}
		out = append(out, cand)
	}
	return out, nil
}

// RemoveItem extracts id, freeing its cells, if it is unblocked. If blocked,
// it returns a CodeNotAccessible error carrying the retrieval plan in
// Details["plan"].
func (c *Container) RemoveItem(ctx context.Context, id string) (PlacedItem, error) {
	if err := ctx.Err(); err != nil {
		return PlacedItem{}, wrapErr(CodeCancelled, "RemoveItem cancelled", err)
	}
	item, ok := c.cat.get(id)
	if !ok {
		return PlacedItem{}, newErr(CodeNotFound, fmt.Sprintf("item %q not found in container %q", id, c.ID))
	}

	blockers := c.grid.findBlockingItems(item.Box(), id, c.OpenFace)
	if len(blockers) > 0 {
		plan := buildRetrievalPlan(id, blockers)
		c.logger.blocked(c.ID, id, blockers)
		err := newErr(CodeNotAccessible, fmt.Sprintf("item %q is blocked by %d item(s)", id, len(blockers)))
		err.WithDetail("plan", plan)
		return PlacedItem{}, err
	}

	c.grid.release(id)
	removed, _ := c.cat.remove(id)
	c.bumpGeneration()
	c.logger.removed(c.ID, id)
	c.updateUtilizationMetric()
	return *removed, nil
}

// FindValidPlacements enumerates feasible (position, orientation, effDims)
// candidates for dims without committing any of them.
func (c *Container) FindValidPlacements(dims Dimensions) ([]Placement, error) {
	if err := validateDimensions(dims); err != nil {
		return nil, err
	}
	return c.grid.findValidPlacements(dims), nil
}

// VisibilityScore is cached per (item, generation) so repeated polling
// between mutations is cheap.
func (c *Container) VisibilityScore(id string) (float64, error) {
	item, ok := c.cat.get(id)
	if !ok {
		return 0, newErr(CodeNotFound, fmt.Sprintf("item %q not found in container %q", id, c.ID))
	}
	key := c.cache.key(c.ID, id, c.generation, "vis")
	if v, ok := c.cache.getFloat(key); ok {
		return v, nil
	}
	v := c.grid.visibilityScore(item.Box(), id, c.OpenFace)
	c.cache.setFloat(key, v)
	return v, nil
}

// BlockingItems returns the ids blocking id's extraction corridor.
func (c *Container) BlockingItems(id string) ([]string, error) {
	item, ok := c.cat.get(id)
	if !ok {
		return nil, newErr(CodeNotFound, fmt.Sprintf("item %q not found in container %q", id, c.ID))
	}
	key := c.cache.key(c.ID, id, c.generation, "blockers")
	if v, ok := c.cache.getStrings(key); ok {
		return v, nil
	}
	blockers := c.grid.findBlockingItems(item.Box(), id, c.OpenFace)
	sort.Strings(blockers)
	c.cache.setStrings(key, blockers)
	return blockers, nil
}

// AccessibilityScore is the weighted sum from spec.md §4.5.
func (c *Container) AccessibilityScore(id string) (float64, error) {
	item, ok := c.cat.get(id)
	if !ok {
		return 0, newErr(CodeNotFound, fmt.Sprintf("item %q not found in container %q", id, c.ID))
	}
	key := c.cache.key(c.ID, id, c.generation, "access")
	if v, ok := c.cache.getFloat(key); ok {
		return v, nil
	}
	blockers, err := c.BlockingItems(id)
	if err != nil {
		return 0, err
	}
	v := c.grid.accessibilityScore(item.Box(), id, c.OpenFace, blockers)
	c.cache.setFloat(key, v)
	return v, nil
}

// RetrievalPlan orders the items to extract to reach id. Its move list
// always equals BlockingItems(id) (testable property 7).
func (c *Container) RetrievalPlan(id string) (RetrievalPlan, error) {
	if _, ok := c.cat.get(id); !ok {
		return RetrievalPlan{}, newErr(CodeNotFound, fmt.Sprintf("item %q not found in container %q", id, c.ID))
	}
	blockers, err := c.BlockingItems(id)
	if err != nil {
		return RetrievalPlan{}, err
	}
	return buildRetrievalPlan(id, blockers), nil
}

// CheckSpaceAvailability reports whether any orientation of dims fits
// somewhere in the container right now.
func (c *Container) CheckSpaceAvailability(dims Dimensions) bool {
	if err := validateDimensions(dims); err != nil {
		return false
	}
	for _, orient := range allOrientations() {
		eff := apply(orient, dims)
		found := false
		c.grid.findEmptyPositions(eff, func(Coordinate) bool {
			found = true
			return false
		})
		if found {
			return true
		}
	}
	return false
}

// Utilization is sum(volume of placed items) / container volume.
func (c *Container) Utilization() float64 {
	u := utilizationRatio(c.cat.all(), c.Dims.W*c.Dims.D*c.Dims.H)
	c.metrics.observeUtilization(c.ID, c.Zone, u)
	return u
}

func (c *Container) updateUtilizationMetric() {
	c.metrics.observeUtilization(c.ID, c.Zone, utilizationRatio(c.cat.all(), c.Dims.W*c.Dims.D*c.Dims.H))
}

// FragmentationAnalysis is a pure query: the grid before and after any
// invocation is bit-identical.
func (c *Container) FragmentationAnalysis(ctx context.Context) (FragmentationReport, error) {
	report, err := fragmentationAnalysis(ctx, c.grid, c.cfg.MaxFragmentationBoxes)
	if err != nil {
		c.logger.cancelled(c.ID, "FragmentationAnalysis")
		return FragmentationReport{}, err
	}
	c.metrics.observeFragmentation(c.ID, c.Zone, report.Index)
	return report, nil
}

// ExpiringWithin returns items expiring within days of now, sorted
// ascending by expiry, each annotated with current accessibility.
func (c *Container) ExpiringWithin(days int, now time.Time) []ExpiringItem {
	var out []ExpiringItem
	for _, p := range c.cat.all() {
		if p.Expiry == nil {
			continue
		}
		if !p.expiresWithin(days, now) {
			continue
		}
		acc, _ := c.AccessibilityScore(p.ID)
		out = append(out, ExpiringItem{ID: p.ID, Expiry: *p.Expiry, Accessibility: acc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Expiry.Before(out[j].Expiry) })
	return out
}

// Recommendations produces the advisory tags from spec.md §4.9.
func (c *Container) Recommendations(now time.Time) []Recommendation {
	var recs []Recommendation

	for _, id := range c.cat.idsByPriority(PriorityHigh) {
		acc, err := c.AccessibilityScore(id)
		if err == nil && acc < c.cfg.LowAccessibilityThreshold {
			recs = append(recs, Recommendation{Category: RecAccessibility, Severity: SeverityHigh})
			break
		}
	}

	for _, p := range c.cat.all() {
		if p.Expiry == nil || !p.expiresWithin(c.cfg.ExpiryBoostWindow, now) {
			continue
		}
		acc, err := c.AccessibilityScore(p.ID)
		if err == nil && acc < c.cfg.LowAccessibilityThreshold {
			recs = append(recs, Recommendation{Category: RecExpiry, Severity: SeverityHigh})
			break
		}
	}

	util := c.Utilization()
	report, err := c.FragmentationAnalysis(context.Background())
	if err == nil && report.Index < 0.5 && util < 0.8 {
		recs = append(recs, Recommendation{Category: RecFragmentation, Severity: SeverityMedium})
	}
	if util > 0.9 {
		recs = append(recs, Recommendation{Category: RecUtilization, Severity: SeverityMedium})
	}

	return recs
}

// Use decrements an item's usage budget, transitioning it to waste once
// exhausted, and returns CodeExhausted on any use after the limit.
func (c *Container) Use(id string) error {
	item, ok := c.cat.get(id)
	if !ok {
		return newErr(CodeNotFound, fmt.Sprintf("item %q not found in container %q", id, c.ID))
	}
	if item.UsageLimit == nil {
		item.UsageCount++
		c.bumpGeneration()
		return nil
	}
	if item.UsageCount >= *item.UsageLimit {
		return newErr(CodeExhausted, fmt.Sprintf("item %q has exhausted its usage budget", id))
	}
	item.UsageCount++
	if item.UsageCount >= *item.UsageLimit {
		c.cat.markWaste(id)
		c.logger.wasteMarked(c.ID, id, "usage exhausted")
	}
	c.bumpGeneration()
	return nil
}

// IdentifyWaste marks any unflagged expired item as waste and returns the
// ids newly transitioned. Once isWaste becomes true it never returns to
// false (invariant 6): calling this repeatedly is idempotent.
func (c *Container) IdentifyWaste(now time.Time) []string {
	var newlyWaste []string
	for _, p := range c.cat.all() {
		if p.IsWaste {
			continue
		}
		if p.isExpired(now) {
			c.cat.markWaste(p.ID)
			c.logger.wasteMarked(c.ID, p.ID, "expired")
			newlyWaste = append(newlyWaste, p.ID)
		}
	}
	if len(newlyWaste) > 0 {
		c.bumpGeneration()
		c.metrics.observeWasteCount(c.ID, c.Zone, c.wasteCount())
	}
	return newlyWaste
}

func (c *Container) wasteCount() int {
	n := 0
	for _, p := range c.cat.all() {
		if p.IsWaste {
			n++
		}
	}
	return n
}

// Item exposes the placed-item record for id, for callers that need the
// full catalogue entry rather than a single derived score.
func (c *Container) Item(id string) (PlacedItem, bool) {
	item, ok := c.cat.get(id)
	if !ok {
		return PlacedItem{}, false
	}
	return *item, true
}

// Items returns every placed item, ordered by id.
func (c *Container) Items() []PlacedItem {
	all := c.cat.all()
	out := make([]PlacedItem, len(all))
	for i, p := range all {
		out[i] = *p
	}
	return out
}

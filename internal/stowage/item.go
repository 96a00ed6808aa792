package stowage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PriorityTier is the normalized three-level priority used throughout the
// ranker and indexes. spec.md §6 maps an integer 1-100 onto these tiers:
// >=67 -> high, >=34 -> medium, else low.
type PriorityTier string

const (
	PriorityHigh   PriorityTier = "high"
	PriorityMedium PriorityTier = "medium"
	PriorityLow    PriorityTier = "low"
)

// NormalizePriority maps a raw 1-100 priority onto its tier.
func NormalizePriority(raw int) (PriorityTier, error) {
	if raw < 1 || raw > 100 {
		return "", newErr(CodeInvalidArgument, fmt.Sprintf("priority %d out of range [1,100]", raw))
	}
	switch {
	case raw >= 67:
		return PriorityHigh, nil
	case raw >= 34:
		return PriorityMedium, nil
	default:
		return PriorityLow, nil
	}
}

func validateTier(t PriorityTier) error {
	switch t {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	default:
		return newErr(CodeInvalidArgument, fmt.Sprintf("unknown priority tier %q", t))
	}
}

// Item is the caller-supplied description of a box to be stowed.
//
// Priority carries the normalized tier the ranker and catalogue indexes
// reason about. RawPriority is non-nil only when the item was constructed
// from an integer 1-100 rather than a tier directly (§6): both forms
// coexist on the type, but RawPriority is never consulted by the engine
// itself, only ever carried for callers that want to recover the original
// number (e.g. to redisplay it).
type Item struct {
	ID            string
	Name          string
	Dims          Dimensions
	Mass          float64
	Priority      PriorityTier
	RawPriority   *int
	Expiry        *time.Time
	UsageLimit    *int
	PreferredZone string
}

// NewID mints a caller-convenience id backed by github.com/google/uuid; the
// engine itself never requires it — callers may supply any non-empty string.
func NewID() string {
	return uuid.NewString()
}

// NewItem constructs an Item, accepting priority as either a PriorityTier
// ("high"/"medium"/"low") or a raw int in [1,100], normalized via
// NormalizePriority. This is the one place the dual priority representation
// is resolved; everything downstream of construction only ever sees Priority.
func NewItem(id, name string, dims Dimensions, mass float64, priority interface{}, opts ...ItemOption) (Item, error) {
	it := Item{ID: id, Name: name, Dims: dims, Mass: mass}
	switch p := priority.(type) {
	case PriorityTier:
		it.Priority = p
	case int:
		tier, err := NormalizePriority(p)
		if err != nil {
			return Item{}, err
		}
		it.Priority = tier
		raw := p
		it.RawPriority = &raw
	default:
		return Item{}, newErr(CodeInvalidArgument, fmt.Sprintf("priority must be a PriorityTier or int, got %T", priority))
	}
	for _, opt := range opts {
		opt(&it)
	}
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// ItemOption customizes NewItem construction beyond the required fields.
type ItemOption func(*Item)

// WithExpiry sets the item's expiry date.
func WithExpiry(t time.Time) ItemOption {
	return func(it *Item) { it.Expiry = &t }
}

// WithUsageLimit sets the item's usage budget.
func WithUsageLimit(limit int) ItemOption {
	return func(it *Item) { it.UsageLimit = &limit }
}

// WithPreferredZone sets the item's zone-affinity target.
func WithPreferredZone(zone string) ItemOption {
	return func(it *Item) { it.PreferredZone = zone }
}

func (it Item) validate() error {
	if it.ID == "" {
		return newErr(CodeInvalidArgument, "item id must not be empty")
	}
	if err := validateDimensions(it.Dims); err != nil {
		return err
	}
	if it.Mass <= 0 {
		return newErr(CodeInvalidArgument, fmt.Sprintf("item %q mass must be positive, got %v", it.ID, it.Mass))
	}
	if err := validateTier(it.Priority); err != nil {
		return err
	}
	if it.UsageLimit != nil && *it.UsageLimit <= 0 {
		return newErr(CodeInvalidArgument, fmt.Sprintf("item %q usage limit must be positive", it.ID))
	}
	return nil
}

// PlacedItem is the catalogue's owned record for an item placed in a
// container: position, chosen orientation, effective dimensions, and the
// source item attributes it was placed with.
type PlacedItem struct {
	ID            string
	Name          string
	OrigDims      Dimensions
	Orientation   Orientation
	EffDims       Dimensions
	Position      Coordinate
	Mass          float64
	Priority      PriorityTier
	Expiry        *time.Time
	UsageLimit    *int
	UsageCount    int
	PreferredZone string
	IsWaste       bool
}

// Box returns the placed item's occupied region.
func (p PlacedItem) Box() Box {
	return Box{Pos: p.Position, Dims: p.EffDims}
}

// expiresWithin reports whether the item's expiry falls on or before
// now + days (calendar-day comparison truncated to UTC midnight).
func (p PlacedItem) expiresWithin(days int, now time.Time) bool {
	if p.Expiry == nil {
		return false
	}
	cutoff := truncateDay(now).AddDate(0, 0, days)
	return !truncateDay(*p.Expiry).After(cutoff)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p PlacedItem) isExpired(now time.Time) bool {
	if p.Expiry == nil {
		return false
	}
	return truncateDay(*p.Expiry).Before(truncateDay(now))
}

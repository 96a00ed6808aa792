package stowage

import (
	"fmt"

	"github.com/spf13/viper"
)

// RankerWeights are the A/F/Z weights from spec.md §4.7's S formula.
type RankerWeights struct {
	Accessibility float64 `mapstructure:"accessibility" yaml:"accessibility"`
	Fragmentation float64 `mapstructure:"fragmentation" yaml:"fragmentation"`
	ZoneAffinity  float64 `mapstructure:"zone_affinity" yaml:"zone_affinity"`
}

// PriorityMultipliers are the μ values from spec.md §4.7.
type PriorityMultipliers struct {
	High   float64 `mapstructure:"high" yaml:"high"`
	Medium float64 `mapstructure:"medium" yaml:"medium"`
	Low    float64 `mapstructure:"low" yaml:"low"`
}

func (pm PriorityMultipliers) forTier(tier PriorityTier) float64 {
	switch tier {
	case PriorityHigh:
		return pm.High
	case PriorityMedium:
		return pm.Medium
	default:
		return pm.Low
	}
}

// Config is the closed, validated set of tuning knobs for the ranker,
// recommendations, fragmentation analysis and cache (C10). There is no "options bag" with unknown
// keys silently ignored, per spec.md §9: every field is named and typed.
type Config struct {
	RankerWeights             RankerWeights       `mapstructure:"ranker_weights" yaml:"ranker_weights"`
	PriorityMultipliers       PriorityMultipliers `mapstructure:"priority_multipliers" yaml:"priority_multipliers"`
	ExpiryBoost               float64             `mapstructure:"expiry_boost" yaml:"expiry_boost"`
	ExpiryBoostWindow         int                 `mapstructure:"expiry_boost_window_days" yaml:"expiry_boost_window_days"`
	LowAccessibilityThreshold float64             `mapstructure:"low_accessibility_threshold" yaml:"low_accessibility_threshold"`
	MaxFragmentationBoxes     int                 `mapstructure:"max_fragmentation_boxes" yaml:"max_fragmentation_boxes"`
	CacheMaxCost              int64               `mapstructure:"cache_max_cost" yaml:"cache_max_cost"`
}

// DefaultConfig returns the literal constants spec.md §4.7 and §4.9 specify.
func DefaultConfig() Config {
	return Config{
		RankerWeights: RankerWeights{
			Accessibility: 0.5,
			Fragmentation: 0.3,
			ZoneAffinity:  0.2,
		},
		PriorityMultipliers: PriorityMultipliers{
			High:   1.5,
			Medium: 1.0,
			Low:    0.8,
		},
		ExpiryBoost:               0.5,
		ExpiryBoostWindow:         30,
		LowAccessibilityThreshold: 40,
		MaxFragmentationBoxes:     10,
		CacheMaxCost:              16 << 20, // 16MiB, mirrors the teacher's QueryCache default order of magnitude
	}
}

// Validate rejects a Config whose weights, multipliers or bounds cannot
// produce a sane ranked score.
func (c Config) Validate() error {
	wSum := c.RankerWeights.Accessibility + c.RankerWeights.Fragmentation + c.RankerWeights.ZoneAffinity
	if wSum <= 0 {
		return newErr(CodeInvalidArgument, fmt.Sprintf("ranker weights must sum to a positive value, got %v", wSum))
	}
	for name, v := range map[string]float64{
		"accessibility weight": c.RankerWeights.Accessibility,
		"fragmentation weight": c.RankerWeights.Fragmentation,
		"zone affinity weight": c.RankerWeights.ZoneAffinity,
		"high multiplier":      c.PriorityMultipliers.High,
		"medium multiplier":    c.PriorityMultipliers.Medium,
		"low multiplier":       c.PriorityMultipliers.Low,
		"expiry boost":         c.ExpiryBoost,
	} {
		if v < 0 {
			return newErr(CodeInvalidArgument, fmt.Sprintf("%s must be non-negative, got %v", name, v))
		}
	}
	if c.MaxFragmentationBoxes <= 0 {
		return newErr(CodeInvalidArgument, "max fragmentation boxes must be positive")
	}
	if c.ExpiryBoostWindow < 0 {
		return newErr(CodeInvalidArgument, "expiry boost window must be non-negative")
	}
	return nil
}

// LoadConfig reads a Config from a YAML/JSON/TOML file at path, layering it
// over DefaultConfig, in the style of the teacher's cmd/config viper loader.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, wrapErr(CodeInvalidArgument, "reading stowage config", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, wrapErr(CodeInvalidArgument, "decoding stowage config", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Weights are the relative contributions of the scoring factors. They are
// normalized at load time so callers can supply any positive ratios.
type Weights struct {
	Energy        float64 `yaml:"energy"`
	Priority      float64 `yaml:"priority"`
	Fragmentation float64 `yaml:"fragmentation"`
}

// GeneratorConfig controls candidate slot enumeration.
type GeneratorConfig struct {
	GranularityMin int `yaml:"granularity_min"`

	// Candidate windows by flexibility. Low flexibility restricts candidates
	// to the core window; medium uses business hours; high extends into edge
	// hours. Hours are local to the horizon's location.
	CoreStartHour     int `yaml:"core_start_hour"`
	CoreEndHour       int `yaml:"core_end_hour"`
	BusinessStartHour int `yaml:"business_start_hour"`
	BusinessEndHour   int `yaml:"business_end_hour"`
	ExtendedStartHour int `yaml:"extended_start_hour"`
	ExtendedEndHour   int `yaml:"extended_end_hour"`

	// FocusOverridePriority is the minimum priority allowed to claim a slot
	// inside a focus_time block.
	FocusOverridePriority int `yaml:"focus_override_priority"`

	// MinUsableGapMin is the smallest gap around commitments still worth
	// keeping; shorter leftovers are penalized as fragmentation.
	MinUsableGapMin int `yaml:"min_usable_gap_min"`
}

// EnergyConfig controls pattern analysis and prediction.
type EnergyConfig struct {
	AnalysisDays       int           `yaml:"analysis_days"`
	PatternCacheTTLMin int           `yaml:"pattern_cache_ttl_min"`
	PatternCacheTTL    time.Duration `yaml:"-"`
}

type Config struct {
	Weights      Weights         `yaml:"weights"`
	Generator    GeneratorConfig `yaml:"generator"`
	Energy       EnergyConfig    `yaml:"energy"`
	DefaultTopK  int             `yaml:"default_top_k"`
	ReviewWindow int             `yaml:"review_window_days"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Weights: Weights{
			Energy:        0.5,
			Priority:      0.3,
			Fragmentation: 0.2,
		},
		Generator: GeneratorConfig{
			GranularityMin:        30,
			CoreStartHour:         9,
			CoreEndHour:           17,
			BusinessStartHour:     8,
			BusinessEndHour:       18,
			ExtendedStartHour:     7,
			ExtendedEndHour:       20,
			FocusOverridePriority: 8,
			MinUsableGapMin:       15,
		},
		Energy: EnergyConfig{
			AnalysisDays:       30,
			PatternCacheTTLMin: 15,
			PatternCacheTTL:    15 * time.Minute,
		},
		DefaultTopK:  3,
		ReviewWindow: 7,
	}
}

// Load reads configuration from an optional yaml file, applies HORAE_* env
// overrides, and validates the result. An empty path skips the file step.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	cfg.Energy.PatternCacheTTL = time.Duration(cfg.Energy.PatternCacheTTLMin) * time.Minute
	cfg.Weights = cfg.Weights.normalized()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	applyFloatEnv(&cfg.Weights.Energy, "HORAE_WEIGHT_ENERGY")
	applyFloatEnv(&cfg.Weights.Priority, "HORAE_WEIGHT_PRIORITY")
	applyFloatEnv(&cfg.Weights.Fragmentation, "HORAE_WEIGHT_FRAGMENTATION")
	applyIntEnv(&cfg.Generator.GranularityMin, "HORAE_GRANULARITY_MIN")
	applyIntEnv(&cfg.Generator.FocusOverridePriority, "HORAE_FOCUS_OVERRIDE_PRIORITY")
	applyIntEnv(&cfg.Energy.AnalysisDays, "HORAE_ENERGY_ANALYSIS_DAYS")
	applyIntEnv(&cfg.Energy.PatternCacheTTLMin, "HORAE_PATTERN_CACHE_TTL_MIN")
	applyIntEnv(&cfg.DefaultTopK, "HORAE_DEFAULT_TOP_K")
}

func applyIntEnv(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*dst = n
	}
}

func applyFloatEnv(dst *float64, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
		*dst = f
	}
}

func (c Config) validate() error {
	if c.Weights.Energy+c.Weights.Priority+c.Weights.Fragmentation <= 0 {
		return fmt.Errorf("scoring weights must sum to a positive value")
	}
	g := c.Generator
	if g.GranularityMin <= 0 {
		return fmt.Errorf("granularity must be positive, got %d", g.GranularityMin)
	}
	for _, w := range []struct {
		name       string
		start, end int
	}{
		{"core", g.CoreStartHour, g.CoreEndHour},
		{"business", g.BusinessStartHour, g.BusinessEndHour},
		{"extended", g.ExtendedStartHour, g.ExtendedEndHour},
	} {
		if w.start < 0 || w.end > 24 || w.start >= w.end {
			return fmt.Errorf("%s window [%d,%d) is not a valid hour range", w.name, w.start, w.end)
		}
	}
	return nil
}

func (w Weights) normalized() Weights {
	total := w.Energy + w.Priority + w.Fragmentation
	return Weights{
		Energy:        w.Energy / total,
		Priority:      w.Priority / total,
		Fragmentation: w.Fragmentation / total,
	}
}

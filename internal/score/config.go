// Package score implements the two heuristic scorers: the weighted 0-10
// market score with its verdict mapping, and the independent 0-100 success
// rating. The two scales encode different product decisions and are never
// merged.
package score

import (
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Config holds the scoring weights and verdict thresholds. Weights must sum
// to 1; the verdict thresholds are the single source of truth for mapping
// the overall score to YES/MAYBE/NO.
type Config struct {
	MarketWeight      float64 `yaml:"market_weight"`
	CompetitionWeight float64 `yaml:"competition_weight"`
	EntryWeight       float64 `yaml:"entry_weight"`
	YesThreshold      float64 `yaml:"yes_threshold"`
	MaybeThreshold    float64 `yaml:"maybe_threshold"`
}

// DefaultConfig returns the standard weights and thresholds.
func DefaultConfig() Config {
	return Config{
		MarketWeight:      0.4,
		CompetitionWeight: 0.3,
		EntryWeight:       0.3,
		YesThreshold:      7,
		MaybeThreshold:    4,
	}
}

// LoadConfig reads scoring overrides from a YAML file, filling any zero
// field from the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "score: read config %s", path)
	}

	var wrapper struct {
		Scoring Config `yaml:"scoring"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Config{}, eris.Wrap(err, "score: parse config")
	}

	cfg := wrapper.Scoring
	def := DefaultConfig()
	if cfg.MarketWeight == 0 {
		cfg.MarketWeight = def.MarketWeight
	}
	if cfg.CompetitionWeight == 0 {
		cfg.CompetitionWeight = def.CompetitionWeight
	}
	if cfg.EntryWeight == 0 {
		cfg.EntryWeight = def.EntryWeight
	}
	if cfg.YesThreshold == 0 {
		cfg.YesThreshold = def.YesThreshold
	}
	if cfg.MaybeThreshold == 0 {
		cfg.MaybeThreshold = def.MaybeThreshold
	}

	// A partial weight override can leave the sum off 1 after the fill-in,
	// which would push the overall score outside 0-10. Fail loudly instead.
	if sum := cfg.MarketWeight + cfg.CompetitionWeight + cfg.EntryWeight; math.Abs(sum-1) > 0.001 {
		return Config{}, eris.Errorf("score: weights sum to %.2f, want 1 (override all three weights together)", sum)
	}
	return cfg, nil
}

package main

import (
	"go.uber.org/zap"

	"github.com/sells-group/venturelens/internal/cache"
	"github.com/sells-group/venturelens/internal/decide"
	"github.com/sells-group/venturelens/internal/research"
	"github.com/sells-group/venturelens/internal/score"
	"github.com/sells-group/venturelens/internal/signals"
	anthropicpkg "github.com/sells-group/venturelens/pkg/anthropic"
	"github.com/sells-group/venturelens/pkg/perplexity"
)

// validationEnv bundles the collaborators every command needs. Missing
// credentials are not an error: the components degrade to their
// deterministic offline behavior.
type validationEnv struct {
	Research *research.Researcher
	Signals  *signals.Analyzer
	Decide   *decide.Synthesizer
	Scoring  score.Config
}

var scoringFile string

// initEnv wires the validation pipeline from config. Both caches are
// process-local; nothing is persisted between runs.
func initEnv() (*validationEnv, error) {
	var pplx perplexity.Client
	if cfg.HasPerplexity() {
		pplx = perplexity.NewClient(cfg.Perplexity.Key,
			perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
			perplexity.WithModel(cfg.Perplexity.Model),
			perplexity.WithRateLimit(cfg.Perplexity.RateLimit),
		)
	} else {
		zap.L().Warn("VENTURELENS_PERPLEXITY_KEY not set, competitor research and market signals run offline")
	}

	var llm anthropicpkg.Client
	if cfg.HasAnthropic() {
		llm = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("VENTURELENS_ANTHROPIC_KEY not set, decisions use the deterministic fallback")
	}

	scoring := score.DefaultConfig()
	if scoringFile != "" {
		loaded, err := score.LoadConfig(scoringFile)
		if err != nil {
			return nil, err
		}
		scoring = loaded
	}

	researcher := research.New(pplx, cache.NewMemory(), cfg.Research)
	analyzer := signals.New(pplx, cache.NewMemory(), cfg.Signals)
	synthesizer := decide.New(llm, cfg.Anthropic.Model, researcher, analyzer, scoring)

	return &validationEnv{
		Research: researcher,
		Signals:  analyzer,
		Decide:   synthesizer,
		Scoring:  scoring,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scoringFile, "scoring", "", "path to a YAML file overriding scoring weights and thresholds")
}

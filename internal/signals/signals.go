// Package signals produces the three heuristic market signals behind the
// detailed score: market size, customer pain and competitor quality. Each
// analysis issues one web-search query and regex-extracts structured fields
// from the response. Signals degrade, never fail: any upstream error yields
// the neutral default for that signal with a warning log.
package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/venturelens/internal/cache"
	"github.com/sells-group/venturelens/internal/config"
	"github.com/sells-group/venturelens/internal/extract"
	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/pkg/perplexity"
)

const marketPrompt = `What is the market size, annual growth rate, and recent funding activity for this product category: %s

Mention the total addressable market in dollars, the growth rate as a percentage, and any notable funding rounds.`

const painPrompt = `What do customers complain about with existing products in this space: %s

Describe the pain points, frustrations, and unmet needs customers mention in reviews and forums.`

const qualityPrompt = `How satisfied are customers with the leading products in this space, and how concentrated is the market: %s

Competitors under consideration: %s

Describe customer satisfaction with the incumbents and whether the market is dominated by a few players or fragmented.`

// Analyzer computes market signals. A nil client yields neutral defaults
// for every analysis without touching the network.
type Analyzer struct {
	client perplexity.Client
	cache  cache.Cache
	cfg    config.SignalsConfig
}

// New creates an Analyzer. client may be nil for offline mode; store may be
// nil to disable caching.
func New(client perplexity.Client, store cache.Cache, cfg config.SignalsConfig) *Analyzer {
	return &Analyzer{client: client, cache: store, cfg: cfg}
}

// Bundle carries the three signals produced for one idea.
type Bundle struct {
	Market  model.MarketData
	Pain    model.PainData
	Quality model.QualityData
}

// AnalyzeAll runs the three analyses concurrently. Individual failures have
// already been absorbed into neutral defaults by the time it returns.
func (a *Analyzer) AnalyzeAll(ctx context.Context, idea string, competitors []model.Competitor) Bundle {
	var b Bundle
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		b.Market = a.AnalyzeMarketSize(ctx, idea)
	}()
	go func() {
		defer wg.Done()
		b.Pain = a.AnalyzeCustomerPain(ctx, idea)
	}()
	go func() {
		defer wg.Done()
		b.Quality = a.AnalyzeCompetitorQuality(ctx, idea, competitors)
	}()
	wg.Wait()
	return b
}

// AnalyzeMarketSize resolves market size, growth rate and funding activity.
// Results are cached per normalized idea for the configured window.
func (a *Analyzer) AnalyzeMarketSize(ctx context.Context, idea string) model.MarketData {
	neutral := model.MarketData{
		Size:       extract.Unknown,
		GrowthRate: extract.Unknown,
		Funding:    extract.Unknown,
		Confidence: model.ConfidenceLow,
		ComputedAt: time.Now().UTC(),
	}

	if a.client == nil {
		return neutral
	}

	key := "signal:market:" + model.NormalizeIdea(idea)
	ttl := time.Duration(a.cfg.MarketTTLDays) * 24 * time.Hour
	if cached, ok := a.lookup(key, ttl); ok {
		var data model.MarketData
		if err := json.Unmarshal(cached, &data); err == nil {
			return data
		}
	}

	text, err := a.client.Ask(ctx, fmt.Sprintf(marketPrompt, idea))
	if err != nil {
		zap.L().Warn("signals: market size query failed", zap.Error(err))
		return neutral
	}

	data := model.MarketData{
		Size:       extract.MarketSize(text),
		GrowthRate: extract.GrowthRate(text),
		Funding:    extract.Funding(text),
		RawText:    text,
		ComputedAt: time.Now().UTC(),
	}
	data.Confidence = confidence(data.Size, data.GrowthRate)

	a.store(key, data)
	return data
}

// AnalyzeCustomerPain resolves the pain level and unmet needs for an idea.
// The cache key deliberately ignores the competitor set: pain is a property
// of the problem space, not of who already serves it.
func (a *Analyzer) AnalyzeCustomerPain(ctx context.Context, idea string) model.PainData {
	neutral := model.PainData{
		PainLevel:  5,
		Confidence: model.ConfidenceLow,
		ComputedAt: time.Now().UTC(),
	}

	if a.client == nil {
		return neutral
	}

	key := "signal:pain:" + model.NormalizeIdea(idea)
	ttl := time.Duration(a.cfg.PainTTLDays) * 24 * time.Hour
	if cached, ok := a.lookup(key, ttl); ok {
		var data model.PainData
		if err := json.Unmarshal(cached, &data); err == nil {
			return data
		}
	}

	text, err := a.client.Ask(ctx, fmt.Sprintf(painPrompt, idea))
	if err != nil {
		zap.L().Warn("signals: customer pain query failed", zap.Error(err))
		return neutral
	}

	data := model.PainData{
		PainLevel:  extract.PainLevel(text),
		UnmetNeeds: extract.UnmetNeeds(text),
		RawText:    text,
		ComputedAt: time.Now().UTC(),
	}
	data.Confidence = painConfidence(data.PainLevel, data.UnmetNeeds)

	a.store(key, data)
	return data
}

// AnalyzeCompetitorQuality resolves incumbent satisfaction and market
// concentration. Never cached: the answer depends on the competitor set,
// which varies between runs for the same idea.
func (a *Analyzer) AnalyzeCompetitorQuality(ctx context.Context, idea string, competitors []model.Competitor) model.QualityData {
	neutral := model.QualityData{
		Satisfaction:  5,
		Concentration: extract.Unknown,
		Confidence:    model.ConfidenceLow,
		ComputedAt:    time.Now().UTC(),
	}

	if a.client == nil {
		return neutral
	}

	names := make([]string, 0, len(competitors))
	for _, c := range competitors {
		names = append(names, c.Name)
	}
	listed := strings.Join(names, ", ")
	if listed == "" {
		listed = "none identified yet"
	}

	text, err := a.client.Ask(ctx, fmt.Sprintf(qualityPrompt, idea, listed))
	if err != nil {
		zap.L().Warn("signals: competitor quality query failed", zap.Error(err))
		return neutral
	}

	data := model.QualityData{
		Satisfaction:  extract.Satisfaction(text),
		Concentration: extract.Concentration(text),
		RawText:       text,
		ComputedAt:    time.Now().UTC(),
	}
	data.Confidence = qualityConfidence(data.Satisfaction, data.Concentration)

	return data
}

func (a *Analyzer) lookup(key string, ttl time.Duration) ([]byte, bool) {
	if a.cache == nil {
		return nil, false
	}
	raw, ok := a.cache.Get(key, ttl)
	if ok {
		zap.L().Debug("signals: cache hit", zap.String("key", key))
	}
	return raw, ok
}

func (a *Analyzer) store(key string, v any) {
	if a.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	a.cache.Set(key, raw)
}

// confidence grades a signal by how many of its two key fields resolved.
func confidence(primary, secondary string) model.Confidence {
	resolved := 0
	if primary != "" && primary != extract.Unknown {
		resolved++
	}
	if secondary != "" && secondary != extract.Unknown {
		resolved++
	}
	switch resolved {
	case 2:
		return model.ConfidenceHigh
	case 1:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// qualityConfidence treats a satisfaction score still at its baseline of 5
// as unresolved.
func qualityConfidence(satisfaction int, concentration string) model.Confidence {
	resolved := 0
	if satisfaction != 5 {
		resolved++
	}
	if concentration != "" && concentration != extract.Unknown {
		resolved++
	}
	switch resolved {
	case 2:
		return model.ConfidenceHigh
	case 1:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func painConfidence(painLevel int, needs []string) model.Confidence {
	switch {
	case painLevel > 5 && len(needs) > 0:
		return model.ConfidenceHigh
	case painLevel > 5 || len(needs) > 0:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// Package research orchestrates competitor discovery: one or two rounds of
// Perplexity queries to obtain names, then concurrent per-competitor detail
// queries parsed into structured records. Discovery order is preserved as
// relevance order; nothing is re-sorted.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/venturelens/internal/cache"
	"github.com/sells-group/venturelens/internal/config"
	"github.com/sells-group/venturelens/internal/extract"
	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/pkg/perplexity"
)

// ErrResearchFailed signals that no competitor data could be obtained at
// all. Callers fall back to a deterministic decision path instead of
// proceeding with fabricated data.
var ErrResearchFailed = eris.New("research: no competitor data could be obtained")

const (
	maxLiteCompetitors     = 5
	maxDetailedCompetitors = 3
	maxAdditionalNames     = 3
	// seedTarget is the name count below which one supplemental discovery
	// round is issued.
	seedTarget = 6
)

const discoveryPrompt = `List %d direct competitors for this product: %s
Target market: %s

Respond with a numbered list. Put each company name in bold, followed by a one-line description, like:
1. **Name** - what it does`

const supplementalPrompt = `List %d more direct competitors for this product: %s
Exclude these companies: %s

Respond with a numbered list. Put each company name in bold, followed by a one-line description.`

const detailPrompt = `Research the company "%s" as a competitor to this product: %s

Cover, with labeled sections:
Description: what the product is
Pricing: plans and prices
Key Features: up to four bullet points
Strengths: up to three bullet points
Weaknesses: up to three bullet points
Target market: who it serves`

// Context carries the caller's inputs for the rich research path.
type Context struct {
	Idea             string
	Product          string
	TargetMarket     string
	KnownCompetitors []string
}

// Researcher discovers and details competitors. A nil Perplexity client
// puts it into offline mode: placeholder data, no network calls.
type Researcher struct {
	client perplexity.Client
	cache  cache.Cache
	cfg    config.ResearchConfig
}

// New creates a Researcher. client may be nil for offline mode; store may
// be nil to disable caching.
func New(client perplexity.Client, store cache.Cache, cfg config.ResearchConfig) *Researcher {
	return &Researcher{client: client, cache: store, cfg: cfg}
}

func (r *Researcher) cacheTTL() time.Duration {
	return time.Duration(r.cfg.CacheTTLHours) * time.Hour
}

// FindCompetitors runs the quick discovery path: one query, up to five
// name+description records, no detail round.
func (r *Researcher) FindCompetitors(ctx context.Context, idea string) ([]model.NamedCompetitor, error) {
	if err := model.ValidateIdea(idea); err != nil {
		return nil, err
	}

	if r.client == nil {
		zap.L().Info("research: no search credential, using placeholder competitors")
		return placeholderNamed(), nil
	}

	key := "competitors:" + model.NormalizeIdea(idea)
	if r.cache != nil {
		if raw, ok := r.cache.Get(key, r.cacheTTL()); ok {
			var cached []model.NamedCompetitor
			if err := json.Unmarshal(raw, &cached); err == nil {
				zap.L().Debug("research: competitor cache hit", zap.String("key", key))
				return cached, nil
			}
		}
	}

	text, err := r.client.Ask(ctx, fmt.Sprintf(discoveryPrompt, maxLiteCompetitors, idea, "general"))
	if err != nil {
		return nil, eris.Wrap(err, "research: discovery query")
	}

	names := extract.CompetitorNames(text)
	if len(names) > maxLiteCompetitors {
		names = names[:maxLiteCompetitors]
	}

	competitors := make([]model.NamedCompetitor, 0, len(names))
	for _, name := range names {
		competitors = append(competitors, model.NamedCompetitor{
			Name:        name,
			Description: lineDescription(text, name),
		})
	}

	if r.cache != nil {
		if raw, err := json.Marshal(competitors); err == nil {
			r.cache.Set(key, raw)
		}
	}

	return competitors, nil
}

// Research runs the rich path: seed names (caller-supplied or discovered),
// at most one supplemental discovery round, then concurrent detail queries
// for the top three names. A single detail failure degrades that record
// only; zero surviving records is ErrResearchFailed.
func (r *Researcher) Research(ctx context.Context, rc Context) (*model.ResearchResult, error) {
	if err := model.ValidateIdea(rc.Idea); err != nil {
		return nil, err
	}

	if r.client == nil {
		zap.L().Info("research: no search credential, using placeholder research result")
		return placeholderResult(), nil
	}

	key := "research:" + model.NormalizeIdea(rc.Idea)
	if r.cache != nil {
		if raw, ok := r.cache.Get(key, r.cacheTTL()); ok {
			var cached model.ResearchResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				zap.L().Debug("research: result cache hit", zap.String("key", key))
				return &cached, nil
			}
		}
	}

	names, err := r.seedNames(ctx, rc)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrResearchFailed
	}

	detailed := names
	if len(detailed) > maxDetailedCompetitors {
		detailed = detailed[:maxDetailedCompetitors]
	}
	var additional []string
	if len(names) > maxDetailedCompetitors {
		additional = names[maxDetailedCompetitors:]
		if len(additional) > maxAdditionalNames {
			additional = additional[:maxAdditionalNames]
		}
	}

	competitors := r.fetchDetails(ctx, rc, detailed)
	if len(competitors) == 0 {
		return nil, ErrResearchFailed
	}

	result := &model.ResearchResult{
		Competitors:           competitors,
		AdditionalCompetitors: additional,
	}

	if r.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			r.cache.Set(key, raw)
		}
	}

	return result, nil
}

// seedNames assembles the deduplicated name seed: caller-supplied names
// verbatim, topped up by at most one supplemental discovery query.
func (r *Researcher) seedNames(ctx context.Context, rc Context) ([]string, error) {
	names := rc.KnownCompetitors

	if len(names) == 0 {
		product := rc.Product
		if product == "" {
			product = rc.Idea
		}
		target := rc.TargetMarket
		if target == "" {
			target = "general"
		}
		text, err := r.client.Ask(ctx, fmt.Sprintf(discoveryPrompt, seedTarget, product, target))
		if err != nil {
			return nil, eris.Wrap(err, "research: discovery query")
		}
		names = extract.CompetitorNames(text)
	} else if len(names) < seedTarget {
		// One supplemental round only, excluding the already-known names.
		product := rc.Product
		if product == "" {
			product = rc.Idea
		}
		text, err := r.client.Ask(ctx, fmt.Sprintf(supplementalPrompt, seedTarget-len(names), product, strings.Join(names, ", ")))
		if err != nil {
			zap.L().Warn("research: supplemental discovery failed", zap.Error(err))
		} else {
			names = append(names, extract.CompetitorNames(text)...)
		}
	}

	return dedupe(names), nil
}

// fetchDetails fans out one detail query per name and parses each response
// independently. Failures yield a dropped record, never an aborted batch.
func (r *Researcher) fetchDetails(ctx context.Context, rc Context, names []string) []model.Competitor {
	results := make([]*model.Competitor, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	limit := r.cfg.MaxConcurrentDetails
	if limit <= 0 {
		limit = maxDetailedCompetitors
	}
	g.SetLimit(limit)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			text, err := r.client.Ask(gCtx, fmt.Sprintf(detailPrompt, name, rc.Idea))
			if err != nil {
				zap.L().Warn("research: detail query failed",
					zap.String("competitor", name),
					zap.Error(err),
				)
				return nil
			}
			c := extract.ParseCompetitorDetails(name, text)
			results[i] = &c
			return nil
		})
	}
	// Workers only return nil; Wait is for settling, not error collection.
	_ = g.Wait()

	var competitors []model.Competitor
	for _, c := range results {
		if c != nil {
			competitors = append(competitors, *c)
		}
	}
	return competitors
}

// lineDescription finds the discovery line mentioning name and returns the
// text after its dash separator.
func lineDescription(text, name string) string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, name) {
			continue
		}
		for _, sep := range []string{" – ", " — ", " - ", ": "} {
			if _, after, ok := strings.Cut(line, sep); ok {
				return strings.TrimSpace(stripLineMarkup(after))
			}
		}
	}
	return ""
}

func stripLineMarkup(s string) string {
	return strings.NewReplacer("**", "", "*", "", "_", "").Replace(s)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

// placeholderNamed is the degraded-but-available offline competitor list.
func placeholderNamed() []model.NamedCompetitor {
	return []model.NamedCompetitor{
		{Name: "Example Competitor A", Description: "established player in this space"},
		{Name: "Example Competitor B", Description: "well-funded newer entrant"},
	}
}

func placeholderResult() *model.ResearchResult {
	return &model.ResearchResult{
		Competitors: []model.Competitor{
			{
				Name:        "Example Competitor A",
				Description: "established player in this space",
				Pricing:     "unknown",
				Strengths:   []string{"Popular and trusted"},
				Weaknesses:  []string{"Limited feature set"},
			},
			{
				Name:        "Example Competitor B",
				Description: "well-funded newer entrant",
				Pricing:     "unknown",
				Strengths:   []string{"Modern product"},
				Weaknesses:  []string{"Small community"},
			},
		},
	}
}

// Package decide synthesizes the final verdict for an idea. Two independent
// strategies: the simple path asks the LLM directly (or falls back to a
// deterministic rule), the detailed path computes the numeric score first
// and only lets the LLM explain it. The LLM never overrides a computed
// verdict, and every LLM failure mode degrades to deterministic output.
package decide

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/internal/research"
	"github.com/sells-group/venturelens/internal/score"
	"github.com/sells-group/venturelens/internal/signals"
	"github.com/sells-group/venturelens/pkg/anthropic"
)

const (
	maxReasons      = 3
	maxAlternatives = 3
	maxPivots       = 3
	llmMaxTokens    = 1024
)

// Researcher is the competitor discovery collaborator.
type Researcher interface {
	FindCompetitors(ctx context.Context, idea string) ([]model.NamedCompetitor, error)
	Research(ctx context.Context, rc research.Context) (*model.ResearchResult, error)
}

// Analyzer is the market signal collaborator.
type Analyzer interface {
	AnalyzeAll(ctx context.Context, idea string, competitors []model.Competitor) signals.Bundle
}

// Synthesizer produces decisions. A nil LLM client switches both paths to
// their deterministic fallbacks.
type Synthesizer struct {
	llm      anthropic.Client
	llmModel string
	research Researcher
	analyzer Analyzer
	scoring  score.Config
}

// New creates a Synthesizer. llm may be nil for offline mode.
func New(llm anthropic.Client, llmModel string, r Researcher, a Analyzer, scoring score.Config) *Synthesizer {
	return &Synthesizer{
		llm:      llm,
		llmModel: llmModel,
		research: r,
		analyzer: a,
		scoring:  scoring,
	}
}

// DetailedRequest carries the inputs of the detailed path. Product is
// optional; when set, the strategy section incorporates the success rating.
type DetailedRequest struct {
	Idea    string
	Roast   bool
	Product *score.Product
}

// decisionPayload is the strict JSON contract sent to and expected from the
// LLM.
type decisionPayload struct {
	Verdict       string               `json:"verdict"`
	Reasons       []string             `json:"reasons"`
	Alternatives  []string             `json:"alternatives"`
	PivotExamples []model.PivotExample `json:"pivotExamples"`
	Strategy      string               `json:"strategy"`
}

// Simple runs the quick path: one discovery round, one LLM call. Without an
// LLM credential the verdict is a fixed function of the competitor count.
func (s *Synthesizer) Simple(ctx context.Context, idea string, roast bool) (*model.SimpleResult, error) {
	if err := model.ValidateIdea(idea); err != nil {
		return nil, err
	}

	named, err := s.research.FindCompetitors(ctx, idea)
	if err != nil {
		// The simple path decides with whatever it has; discovery failure
		// just means an empty competitor list.
		zap.L().Warn("decide: competitor discovery failed", zap.Error(err))
		named = nil
	}

	competitors := make([]model.Competitor, 0, len(named))
	for _, n := range named {
		competitors = append(competitors, model.Competitor{Name: n.Name, Description: n.Description})
	}

	var d model.Decision
	if s.llm == nil {
		d = offlineDecision(len(competitors), roast)
	} else {
		d = s.llmDecision(ctx, idea, competitors, roast)
	}

	return &model.SimpleResult{
		Success:       true,
		Decision:      d.Verdict,
		Reasons:       d.Reasons,
		Competitors:   competitors,
		Alternatives:  d.Alternatives,
		PivotExamples: d.PivotExamples,
	}, nil
}

// Detailed runs the scored path. The breakdown is computed before any LLM
// involvement and its verdict is final.
func (s *Synthesizer) Detailed(ctx context.Context, req DetailedRequest) (*model.DetailedResult, error) {
	if err := model.ValidateIdea(req.Idea); err != nil {
		return nil, err
	}

	rr, err := s.research.Research(ctx, research.Context{Idea: req.Idea})
	if err != nil {
		return nil, err
	}

	bundle := s.analyzer.AnalyzeAll(ctx, req.Idea, rr.Competitors)
	breakdown := s.scoring.MarketScore(bundle.Market, rr.Competitors, bundle.Pain, bundle.Quality)

	d, strategy := s.explain(ctx, req, rr.Competitors, bundle, breakdown)

	return &model.DetailedResult{
		Success:  true,
		Decision: breakdown.Verdict,
		Scores: model.ScoreSummary{
			Overall:   breakdown.Overall,
			Breakdown: breakdown,
		},
		MarketAnalysis: model.MarketAnalysis{
			Size:    bundle.Market.Size,
			Growth:  bundle.Market.GrowthRate,
			Funding: bundle.Market.Funding,
		},
		CustomerPain: model.CustomerPain{
			Level:      bundle.Pain.PainLevel,
			UnmetNeeds: bundle.Pain.UnmetNeeds,
		},
		CompetitorAnalysis: model.CompetitorAnalysis{
			Count:         len(rr.Competitors) + len(rr.AdditionalCompetitors),
			Quality:       bundle.Quality.Satisfaction,
			Concentration: bundle.Quality.Concentration,
			Competitors:   rr.Competitors,
		},
		Reasons:       d.Reasons,
		Alternatives:  d.Alternatives,
		PivotExamples: d.PivotExamples,
		Strategy:      strategy,
	}, nil
}

// explain produces the narrative around an already-computed breakdown. The
// verdict inside the returned decision always equals breakdown.Verdict.
func (s *Synthesizer) explain(ctx context.Context, req DetailedRequest, competitors []model.Competitor, bundle signals.Bundle, breakdown model.ScoreBreakdown) (model.Decision, string) {
	fallback := breakdownDecision(breakdown, bundle)
	strategy := s.fallbackStrategy(req, competitors, breakdown)

	if s.llm == nil {
		if req.Roast {
			zap.L().Warn("decide: roast tone needs an LLM credential, set VENTURELENS_ANTHROPIC_KEY")
		}
		return fallback, strategy
	}

	prompt := explainPrompt(req.Idea, competitors, bundle, breakdown, req.Roast)
	resp, err := s.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.llmModel,
		MaxTokens: llmMaxTokens,
		System:    systemPrompt(req.Roast),
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("decide: explanation call failed", zap.Error(err))
		return fallback, strategy
	}
	resp.Usage.LogUsage(s.llmModel, "detailed")

	var payload decisionPayload
	if !extractReply(resp.Text(), &payload) {
		zap.L().Warn("decide: explanation response was not parseable JSON")
		return fallback, strategy
	}

	d := model.Decision{
		Verdict:       breakdown.Verdict, // computed verdict is final
		Reasons:       capStrings(payload.Reasons, maxReasons),
		Alternatives:  capStrings(payload.Alternatives, maxAlternatives),
		PivotExamples: capPivots(payload.PivotExamples),
	}
	if len(d.Reasons) == 0 {
		d.Reasons = fallback.Reasons
	}
	if d.Verdict == model.VerdictYes {
		d.Alternatives = nil
	}
	if payload.Strategy != "" {
		strategy = payload.Strategy
	}
	return d, strategy
}

// llmDecision runs the simple path's single LLM call with its recovery
// ladder: strict JSON, then a text sniff, then UNCLEAR.
func (s *Synthesizer) llmDecision(ctx context.Context, idea string, competitors []model.Competitor, roast bool) model.Decision {
	resp, err := s.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.llmModel,
		MaxTokens: llmMaxTokens,
		System:    systemPrompt(roast),
		Messages:  []anthropic.Message{{Role: "user", Content: simplePrompt(idea, competitors, roast)}},
	})
	if err != nil {
		zap.L().Warn("decide: verdict call failed", zap.Error(err))
		return unclearDecision(roast)
	}
	resp.Usage.LogUsage(s.llmModel, "simple")

	text := resp.Text()
	var payload decisionPayload
	if extractReply(text, &payload) {
		if v, ok := parseVerdict(payload.Verdict); ok {
			d := model.Decision{
				Verdict:       v,
				Reasons:       capStrings(payload.Reasons, maxReasons),
				Alternatives:  capStrings(payload.Alternatives, maxAlternatives),
				PivotExamples: capPivots(payload.PivotExamples),
			}
			if v == model.VerdictYes {
				d.Alternatives = nil
			}
			return d
		}
	}

	// Unparseable response: sniff for an affirmative before giving up.
	zap.L().Warn("decide: verdict response was not parseable JSON, sniffing text")
	verdict := model.VerdictNo
	if strings.Contains(strings.ToLower(text), `"yes"`) {
		verdict = model.VerdictYes
	}
	d := offlineDecision(len(competitors), roast)
	d.Verdict = verdict
	if verdict == model.VerdictYes {
		d.Alternatives = nil
	}
	return d
}

// fallbackStrategy builds the deterministic strategy line from the shared
// competitor weaknesses and, when a product was described, its success
// rating factors.
func (s *Synthesizer) fallbackStrategy(req DetailedRequest, competitors []model.Competitor, breakdown model.ScoreBreakdown) string {
	var parts []string

	if weaknesses := score.CommonWeaknesses(competitors); len(weaknesses) > 0 {
		parts = append(parts, "Differentiate on the weaknesses competitors share: "+strings.Join(weaknesses, "; ")+".")
	}
	if req.Product != nil {
		rating := score.SuccessRating(*req.Product, competitors)
		parts = append(parts, fmt.Sprintf("Estimated entry success %d/100 (%s): %s.",
			rating.Score, rating.Level, strings.Join(rating.Factors, ", ")))
	}
	if len(parts) == 0 {
		switch breakdown.Verdict {
		case model.VerdictYes:
			parts = append(parts, "Move quickly: validate with a narrow launch before the niche attracts attention.")
		case model.VerdictMaybe:
			parts = append(parts, "Narrow the target segment and validate willingness to pay before building.")
		default:
			parts = append(parts, "Consider an adjacent problem where incumbents are weaker.")
		}
	}
	return strings.Join(parts, " ")
}

func parseVerdict(s string) (model.Verdict, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return model.VerdictYes, true
	case "NO":
		return model.VerdictNo, true
	case "MAYBE":
		return model.VerdictMaybe, true
	default:
		return "", false
	}
}

func capStrings(items []string, limit int) []string {
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func capPivots(pivots []model.PivotExample) []model.PivotExample {
	var out []model.PivotExample
	for _, p := range pivots {
		if strings.TrimSpace(p.Company) == "" {
			continue
		}
		out = append(out, p)
		if len(out) == maxPivots {
			break
		}
	}
	return out
}

package score

import (
	"math"
	"strconv"
	"strings"

	"github.com/sells-group/venturelens/internal/extract"
	"github.com/sells-group/venturelens/internal/model"
)

// MarketScore combines the market signal, competitor list and pain signal
// into the bounded sub-scores and weighted overall score. Pure and
// deterministic: identical inputs always yield an identical breakdown.
func (c Config) MarketScore(market model.MarketData, competitors []model.Competitor, pain model.PainData, quality model.QualityData) model.ScoreBreakdown {
	mo := marketOpportunity(market)
	comp := competitionScore(len(competitors))
	entry := entryFeasibility(pain.PainLevel, quality.Concentration)

	overall := c.MarketWeight*float64(mo) + c.CompetitionWeight*float64(comp) + c.EntryWeight*float64(entry)
	overall = math.Round(overall*10) / 10

	return model.ScoreBreakdown{
		MarketOpportunity: mo,
		Competition:       comp,
		EntryFeasibility:  entry,
		Overall:           overall,
		Verdict:           c.VerdictFor(overall),
	}
}

// VerdictFor maps an overall score to a verdict. This mapping is the single
// source of truth for the numeric verdict.
func (c Config) VerdictFor(overall float64) model.Verdict {
	switch {
	case overall >= c.YesThreshold:
		return model.VerdictYes
	case overall >= c.MaybeThreshold:
		return model.VerdictMaybe
	default:
		return model.VerdictNo
	}
}

// marketOpportunity tiers the normalized market value (millions USD) and
// adjusts for growth rate.
func marketOpportunity(market model.MarketData) int {
	score := 5 // unknown size baseline
	if value := extract.ParseMarketValue(market.Size); value > 0 {
		switch {
		case value > 10_000:
			score = 10
		case value > 1_000:
			score = 8
		case value > 100:
			score = 6
		case value > 10:
			score = 4
		default:
			score = 2
		}
	}

	if growth, ok := growthPercent(market.GrowthRate); ok {
		switch {
		case growth > 30:
			score = min(score+2, 10)
		case growth > 15:
			score = min(score+1, 10)
		case growth < 5:
			score = max(score-2, 1)
		}
	}

	return score
}

// competitionScore is deliberately non-monotonic: 3-5 competitors is the
// best band because it signals validated but unsaturated demand.
func competitionScore(count int) int {
	switch {
	case count == 0:
		return 3
	case count <= 2:
		return 5
	case count <= 5:
		return 8
	case count <= 10:
		return 6
	default:
		return 3
	}
}

// entryFeasibility starts at the pain level and shifts for market
// concentration.
func entryFeasibility(painLevel int, concentration string) int {
	score := painLevel
	if score == 0 {
		score = 5
	}
	switch concentration {
	case "Highly concentrated":
		score = max(score-3, 1)
	case "Fragmented":
		score = min(score+2, 10)
	}
	return score
}

// growthPercent parses a "23%" style growth string.
func growthPercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || s == extract.Unknown {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

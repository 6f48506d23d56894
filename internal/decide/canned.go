package decide

import (
	"fmt"

	"github.com/sells-group/venturelens/internal/extract"
	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/internal/signals"
)

// Fixed texts for the deterministic fallbacks. No randomness anywhere: the
// same inputs always produce the same words.

var cannedReasonsNo = []string{
	"The space already has more than three established competitors",
	"Late entrants need an order-of-magnitude improvement to displace incumbents",
	"Customer acquisition costs rise steeply in crowded categories",
}

var cannedReasonsNoRoast = []string{
	"You would be the umpteenth product in an already crowded space",
	"Nothing in the idea suggests an order-of-magnitude improvement over incumbents",
	"Paying customers already have several places to take their money",
}

var cannedReasonsMaybe = []string{
	"The competitive field is small enough to leave room for a new entrant",
	"Demand appears validated but not yet saturated",
	"Success depends on a differentiator the idea does not state yet",
}

var cannedReasonsMaybeRoast = []string{
	"There is room in the market, which is the nicest thing we can say so far",
	"A few competitors exist, so at least somebody wants this",
	"Without a stated differentiator this is a coin flip",
}

var cannedAlternatives = []string{
	"Narrow the idea to one underserved niche within the market",
	"Build a complementary tool for the incumbents' users instead of replacing them",
	"Target a geography or vertical the current players ignore",
}

var cannedUnclearReasons = []string{
	"The language model could not be reached to evaluate this idea",
	"No deterministic verdict is possible without competitor or market data",
	"Try again, or rerun without a language model credential for the offline heuristic",
}

var cannedPivots = []model.PivotExample{
	{Company: "Slack", Story: "started as an internal chat tool for a failed game studio"},
	{Company: "Instagram", Story: "pivoted from the cluttered check-in app Burbn to photos only"},
	{Company: "YouTube", Story: "launched as a video dating site before opening to all videos"},
}

// offlineDecision is the credential-free simple verdict: a fixed function
// of the competitor count.
func offlineDecision(competitorCount int, roast bool) model.Decision {
	if competitorCount > 3 {
		reasons := cannedReasonsNo
		if roast {
			reasons = cannedReasonsNoRoast
		}
		return model.Decision{
			Verdict:       model.VerdictNo,
			Reasons:       reasons,
			Alternatives:  cannedAlternatives,
			PivotExamples: cannedPivots,
		}
	}
	reasons := cannedReasonsMaybe
	if roast {
		reasons = cannedReasonsMaybeRoast
	}
	return model.Decision{
		Verdict:       model.VerdictMaybe,
		Reasons:       reasons,
		Alternatives:  cannedAlternatives,
		PivotExamples: cannedPivots,
	}
}

func unclearDecision(roast bool) model.Decision {
	reasons := cannedUnclearReasons
	if roast {
		reasons = append([]string{"Even the model refused to look at this one"}, cannedUnclearReasons[:2]...)
	}
	return model.Decision{
		Verdict:       model.VerdictUnclear,
		Reasons:       reasons,
		Alternatives:  cannedAlternatives,
		PivotExamples: cannedPivots,
	}
}

// breakdownDecision derives reasons directly from the computed score fields
// when no LLM narrative is available.
func breakdownDecision(b model.ScoreBreakdown, bundle signals.Bundle) model.Decision {
	var reasons []string

	switch {
	case b.MarketOpportunity >= 8:
		reasons = append(reasons, fmt.Sprintf("Large market opportunity (%d/10, size %s)", b.MarketOpportunity, bundle.Market.Size))
	case b.MarketOpportunity <= 3:
		reasons = append(reasons, fmt.Sprintf("Small market opportunity (%d/10, size %s)", b.MarketOpportunity, bundle.Market.Size))
	default:
		reasons = append(reasons, fmt.Sprintf("Moderate market opportunity (%d/10)", b.MarketOpportunity))
	}

	switch {
	case b.Competition >= 8:
		reasons = append(reasons, fmt.Sprintf("Healthy competitive field (%d/10): demand is validated but not saturated", b.Competition))
	case b.Competition <= 3:
		reasons = append(reasons, fmt.Sprintf("Difficult competitive field (%d/10): either unproven demand or a saturated market", b.Competition))
	default:
		reasons = append(reasons, fmt.Sprintf("Workable competitive field (%d/10)", b.Competition))
	}

	switch {
	case b.EntryFeasibility >= 7:
		reasons = append(reasons, fmt.Sprintf("Strong entry feasibility (%d/10): customer pain level %d", b.EntryFeasibility, bundle.Pain.PainLevel))
	case b.EntryFeasibility <= 3:
		reasons = append(reasons, fmt.Sprintf("Weak entry feasibility (%d/10, concentration: %s)", b.EntryFeasibility, bundle.Quality.Concentration))
	default:
		reasons = append(reasons, fmt.Sprintf("Average entry feasibility (%d/10)", b.EntryFeasibility))
	}

	d := model.Decision{
		Verdict: b.Verdict,
		Reasons: reasons,
	}
	if b.Verdict != model.VerdictYes {
		d.Alternatives = cannedAlternatives
		d.PivotExamples = cannedPivots
	}
	return d
}

// extractReply normalizes an LLM response and decodes it into v, reporting
// whether structured JSON was recovered.
func extractReply(text string, v any) bool {
	return extract.ParseReply(text).Decode(v)
}

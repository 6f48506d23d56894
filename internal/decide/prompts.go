package decide

import (
	"fmt"
	"strings"

	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/internal/signals"
)

const jsonContract = `Respond with a single JSON object and nothing else:
{
  "verdict": "YES" | "NO" | "MAYBE",
  "reasons": ["up to three short reasons"],
  "alternatives": ["up to three alternative directions, empty if verdict is YES"],
  "pivotExamples": [{"company": "name", "story": "one-line pivot story"}],
  "strategy": "one short paragraph of go-to-market advice"
}`

func systemPrompt(roast bool) string {
	base := "You are a pragmatic startup advisor. Judge ideas on market evidence, not enthusiasm."
	if roast {
		return base + " Be blunt and sarcastic; spare no feelings, but stay factual."
	}
	return base + " Be direct but constructive."
}

func simplePrompt(idea string, competitors []model.Competitor, roast bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Should this startup idea be pursued?\n\nIdea: %s\n", idea)
	if len(competitors) > 0 {
		b.WriteString("\nKnown competitors:\n")
		for _, c := range competitors {
			if c.Description != "" {
				fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
			} else {
				fmt.Fprintf(&b, "- %s\n", c.Name)
			}
		}
	} else {
		b.WriteString("\nNo competitors were found.\n")
	}
	if roast {
		b.WriteString("\nRoast the idea while staying accurate.\n")
	}
	b.WriteString("\n" + jsonContract)
	return b.String()
}

// explainPrompt asks the LLM to narrate an already-computed verdict. The
// numbers are stated as settled facts so the model explains rather than
// re-judges.
func explainPrompt(idea string, competitors []model.Competitor, bundle signals.Bundle, breakdown model.ScoreBreakdown, roast bool) string {
	names := make([]string, 0, len(competitors))
	for _, c := range competitors {
		names = append(names, c.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A deterministic scoring model has already evaluated this startup idea. The verdict is settled; explain it.\n\n")
	fmt.Fprintf(&b, "Idea: %s\n\n", idea)
	fmt.Fprintf(&b, "Verdict: %s (overall %.1f/10)\n", breakdown.Verdict, breakdown.Overall)
	fmt.Fprintf(&b, "Market opportunity: %d/10 (size %s, growth %s, funding %s)\n",
		breakdown.MarketOpportunity, bundle.Market.Size, bundle.Market.GrowthRate, bundle.Market.Funding)
	fmt.Fprintf(&b, "Competition: %d/10 (%d competitors: %s)\n",
		breakdown.Competition, len(competitors), strings.Join(names, ", "))
	fmt.Fprintf(&b, "Entry feasibility: %d/10 (pain level %d, concentration %s)\n",
		breakdown.EntryFeasibility, bundle.Pain.PainLevel, bundle.Quality.Concentration)
	if len(bundle.Pain.UnmetNeeds) > 0 {
		fmt.Fprintf(&b, "Unmet needs: %s\n", strings.Join(bundle.Pain.UnmetNeeds, "; "))
	}
	fmt.Fprintf(&b, "\nSet \"verdict\" to %q and write reasons, alternatives, pivot examples and a strategy consistent with these numbers.\n", string(breakdown.Verdict))
	if roast {
		b.WriteString("Use a blunt, roasting tone.\n")
	}
	b.WriteString("\n" + jsonContract)
	return b.String()
}

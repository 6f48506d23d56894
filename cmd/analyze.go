package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/venturelens/internal/decide"
	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/internal/score"
)

var (
	analyzeRoast          bool
	analyzeJSON           bool
	analyzeProductName    string
	analyzeDifferentiator string
	analyzeTargetMarket   string
	analyzePrice          int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <idea>",
	Short: "Full market analysis with a deterministic score",
	Long: `Runs the detailed validation path: competitor research with per-competitor
detail queries, three market signal analyses, and the weighted score. The
LLM, when configured, only explains the computed verdict.

Describing your own product with the --product-* flags adds an entry
success rating to the strategy section.

Examples:
  venturelens analyze "AI-powered todo app for developers"
  venturelens analyze "CRM for dog groomers" --product-name Groomly --differentiator "built-in SMS reminders" --price 29`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		req := decide.DetailedRequest{Idea: args[0], Roast: analyzeRoast}
		if analyzeProductName != "" || analyzeDifferentiator != "" {
			req.Product = &score.Product{
				Name:           analyzeProductName,
				Differentiator: analyzeDifferentiator,
				TargetMarket:   analyzeTargetMarket,
				Price:          analyzePrice,
			}
		}

		result, err := env.Decide.Detailed(cmd.Context(), req)
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printDetailed(result)
		return nil
	},
}

func printDetailed(r *model.DetailedResult) {
	b := r.Scores.Breakdown
	fmt.Printf("Verdict: %s (overall %.1f/10)\n\n", r.Decision, r.Scores.Overall)
	fmt.Printf("  Market opportunity  %2d/10\n", b.MarketOpportunity)
	fmt.Printf("  Competition         %2d/10\n", b.Competition)
	fmt.Printf("  Entry feasibility   %2d/10\n", b.EntryFeasibility)

	if line := joinNonEmpty([]string{r.MarketAnalysis.Size, r.MarketAnalysis.Growth, r.MarketAnalysis.Funding}, ", "); line != "" {
		fmt.Printf("\nMarket: %s\n", line)
	}

	fmt.Printf("\nCustomer pain: %d/10\n", r.CustomerPain.Level)
	for _, need := range r.CustomerPain.UnmetNeeds {
		fmt.Printf("  - %s\n", need)
	}

	fmt.Printf("\nCompetitors (%d", r.CompetitorAnalysis.Count)
	if r.CompetitorAnalysis.Concentration != "" && r.CompetitorAnalysis.Concentration != "Unknown" {
		fmt.Printf(", %s", r.CompetitorAnalysis.Concentration)
	}
	fmt.Println("):")
	for _, c := range r.CompetitorAnalysis.Competitors {
		fmt.Printf("  - %s", c.Name)
		if c.Pricing != "" && c.Pricing != "unknown" {
			fmt.Printf(" (%s)", c.Pricing)
		}
		fmt.Println()
	}

	fmt.Println("\nReasons:")
	for _, reason := range r.Reasons {
		fmt.Printf("  - %s\n", reason)
	}

	if len(r.Alternatives) > 0 {
		fmt.Println("\nAlternatives:")
		for _, alt := range r.Alternatives {
			fmt.Printf("  - %s\n", alt)
		}
	}

	if r.Strategy != "" {
		fmt.Printf("\nStrategy: %s\n", r.Strategy)
	}
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRoast, "roast", false, "blunt, sarcastic tone (does not change scoring)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw result JSON")
	analyzeCmd.Flags().StringVar(&analyzeProductName, "product-name", "", "your product's name")
	analyzeCmd.Flags().StringVar(&analyzeDifferentiator, "differentiator", "", "what sets your product apart")
	analyzeCmd.Flags().StringVar(&analyzeTargetMarket, "target-market", "", "who your product serves")
	analyzeCmd.Flags().IntVar(&analyzePrice, "price", 0, "your monthly price in dollars")
	rootCmd.AddCommand(analyzeCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/venturelens/internal/research"
)

var (
	competitorsJSON bool
	competitorsFull bool
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors <idea>",
	Short: "List competitors for a startup idea",
	Long: `Discovery only, no verdict. The default mode runs a single quick query;
--full adds per-competitor detail queries (pricing, strengths, weaknesses).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		if competitorsFull {
			result, err := env.Research.Research(cmd.Context(), research.Context{Idea: args[0]})
			if err != nil {
				return err
			}
			if competitorsJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			for _, c := range result.Competitors {
				fmt.Printf("%s\n  %s\n", c.Name, c.Description)
				if c.Pricing != "" && c.Pricing != "unknown" {
					fmt.Printf("  Pricing: %s\n", c.Pricing)
				}
				for _, s := range c.Strengths {
					fmt.Printf("  + %s\n", s)
				}
				for _, w := range c.Weaknesses {
					fmt.Printf("  - %s\n", w)
				}
				fmt.Println()
			}
			if len(result.AdditionalCompetitors) > 0 {
				fmt.Printf("Also found: %s\n", joinNonEmpty(result.AdditionalCompetitors, ", "))
			}
			return nil
		}

		named, err := env.Research.FindCompetitors(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if competitorsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(named)
		}
		for _, c := range named {
			if c.Description != "" {
				fmt.Printf("%s - %s\n", c.Name, c.Description)
			} else {
				fmt.Println(c.Name)
			}
		}
		return nil
	},
}

func init() {
	competitorsCmd.Flags().BoolVar(&competitorsJSON, "json", false, "print the raw result JSON")
	competitorsCmd.Flags().BoolVar(&competitorsFull, "full", false, "run per-competitor detail queries")
	rootCmd.AddCommand(competitorsCmd)
}

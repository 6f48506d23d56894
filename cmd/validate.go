package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/venturelens/internal/model"
)

var (
	validateRoast bool
	validateJSON  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <idea>",
	Short: "Quick YES/NO/MAYBE verdict for a startup idea",
	Long: `Runs the simple validation path: one competitor discovery round and one
LLM verdict. Without an Anthropic key the verdict falls back to a
deterministic rule based on the competitor count.

Examples:
  venturelens validate "AI-powered todo app for developers"
  venturelens validate --roast --json "another note-taking app"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		result, err := env.Decide.Simple(cmd.Context(), args[0], validateRoast)
		if err != nil {
			return err
		}

		if validateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printSimple(result)
		return nil
	},
}

func printSimple(r *model.SimpleResult) {
	fmt.Printf("Verdict: %s\n\n", r.Decision)

	fmt.Println("Reasons:")
	for _, reason := range r.Reasons {
		fmt.Printf("  - %s\n", reason)
	}

	if len(r.Competitors) > 0 {
		fmt.Println("\nCompetitors:")
		for _, c := range r.Competitors {
			if c.Description != "" {
				fmt.Printf("  - %s: %s\n", c.Name, c.Description)
			} else {
				fmt.Printf("  - %s\n", c.Name)
			}
		}
	}

	if len(r.Alternatives) > 0 {
		fmt.Println("\nAlternatives:")
		for _, alt := range r.Alternatives {
			fmt.Printf("  - %s\n", alt)
		}
	}

	if len(r.PivotExamples) > 0 {
		fmt.Println("\nFamous pivots:")
		for _, p := range r.PivotExamples {
			fmt.Printf("  - %s: %s\n", p.Company, p.Story)
		}
	}
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if p != "" && p != "Unknown" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func init() {
	validateCmd.Flags().BoolVar(&validateRoast, "roast", false, "blunt, sarcastic tone (does not change scoring)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the raw result JSON")
	rootCmd.AddCommand(validateCmd)
}

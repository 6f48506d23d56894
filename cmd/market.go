package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var marketJSON bool

var marketCmd = &cobra.Command{
	Use:   "market <idea>",
	Short: "Market size, growth and funding signal for an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		data := env.Signals.AnalyzeMarketSize(cmd.Context(), args[0])

		if marketJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		}

		fmt.Printf("Market size:  %s\n", data.Size)
		fmt.Printf("Growth rate:  %s\n", data.GrowthRate)
		fmt.Printf("Funding:      %s\n", data.Funding)
		fmt.Printf("Confidence:   %s\n", data.Confidence)
		return nil
	},
}

func init() {
	marketCmd.Flags().BoolVar(&marketJSON, "json", false, "print the raw result JSON")
	rootCmd.AddCommand(marketCmd)
}

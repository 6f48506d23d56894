package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/venturelens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "venturelens",
	Short: "Startup idea validation from live market signals",
	Long:  "Discovers competitors via web search, extracts market signals from the responses, and scores a startup idea with a deterministic heuristic model plus an optional LLM critique.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

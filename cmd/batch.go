package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/venturelens/internal/model"
)

var (
	batchIn    string
	batchOut   string
	batchRoast bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Validate a CSV of ideas into an xlsx report",
	Long: `Reads one idea per row from the first CSV column (a header row named
"idea" is skipped), runs the simple validation for each concurrently, and
writes one result row per idea to an xlsx report.

Example:
  venturelens batch --in ideas.csv --out report.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ideas, err := readIdeasCSV(batchIn)
		if err != nil {
			return err
		}
		if len(ideas) == 0 {
			return eris.Errorf("batch: no ideas found in %s", batchIn)
		}
		zap.L().Info("batch: parsed ideas", zap.Int("count", len(ideas)))

		env, err := initEnv()
		if err != nil {
			return err
		}

		results := make([]*model.SimpleResult, len(ideas))
		errs := make([]error, len(ideas))
		var failed atomic.Int64

		g, gCtx := errgroup.WithContext(cmd.Context())
		g.SetLimit(cfg.Batch.MaxConcurrentIdeas)

		for i, idea := range ideas {
			i, idea := i, idea
			g.Go(func() error {
				result, runErr := env.Decide.Simple(gCtx, idea, batchRoast)
				if runErr != nil {
					failed.Add(1)
					errs[i] = runErr
					zap.L().Error("batch: idea failed",
						zap.String("idea", idea),
						zap.Error(runErr),
					)
					return nil // don't abort the batch on individual failure
				}
				results[i] = result
				return nil
			})
		}
		_ = g.Wait()

		zap.L().Info("batch: complete",
			zap.Int("total", len(ideas)),
			zap.Int64("failed", failed.Load()),
		)

		if err := writeBatchReport(batchOut, ideas, results, errs); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d ideas, %d failed)\n", batchOut, len(ideas), failed.Load())
		return nil
	},
}

// readIdeasCSV returns the first column of every row, skipping an "idea"
// header and blank rows.
func readIdeasCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "batch: parse csv")
	}

	var ideas []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		idea := strings.TrimSpace(row[0])
		if idea == "" {
			continue
		}
		if i == 0 && strings.EqualFold(idea, "idea") {
			continue
		}
		ideas = append(ideas, idea)
	}
	return ideas, nil
}

// writeBatchReport writes one row per idea. Failed ideas keep their row with
// the error in the reasons column so the report stays aligned with the input.
func writeBatchReport(path string, ideas []string, results []*model.SimpleResult, errs []error) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Validations")
	if err != nil {
		return eris.Wrap(err, "batch: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Idea", "Verdict", "Reasons", "Competitors", "Alternatives"} {
		header.AddCell().SetString(h)
	}

	for i, idea := range ideas {
		row := sheet.AddRow()
		row.AddCell().SetString(idea)

		if errs[i] != nil {
			row.AddCell().SetString("ERROR")
			row.AddCell().SetString(errs[i].Error())
			continue
		}

		result := results[i]
		row.AddCell().SetString(string(result.Decision))
		row.AddCell().SetString(strings.Join(result.Reasons, "; "))

		names := make([]string, 0, len(result.Competitors))
		for _, c := range result.Competitors {
			names = append(names, c.Name)
		}
		row.AddCell().SetString(strings.Join(names, ", "))
		row.AddCell().SetString(strings.Join(result.Alternatives, "; "))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "batch: save %s", path)
	}
	return nil
}

func init() {
	batchCmd.Flags().StringVar(&batchIn, "in", "", "path to ideas CSV (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "report.xlsx", "path for the xlsx report")
	batchCmd.Flags().BoolVar(&batchRoast, "roast", false, "blunt, sarcastic tone (does not change scoring)")
	_ = batchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(batchCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halfmoonliu/SaturationApp/internal/chart"
	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
	"github.com/halfmoonliu/SaturationApp/internal/render"
	"github.com/halfmoonliu/SaturationApp/internal/watch"
)

var (
	jsonOutput bool
	watchFile  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file.csv]",
	Short: "Analyze an interview CSV and report saturation metrics",
	Long: `Runs the ingestion pipeline on a CSV file: validates the shape, binds
the first three columns by position, drops non-numeric rows, sorts by
interview number, derives the cumulative unique-item count and prints
the preview table and summary metrics.

With --watch the analysis re-runs whenever the file changes, so a
researcher can keep it open while appending interviews.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the full result and chart payload as JSON")
	analyzeCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-run the analysis when the file changes")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !watchFile {
		return analyzeOnce(path)
	}

	// Watch mode: a failed run is reported, not fatal; the next save gets
	// another chance.
	report := func() {
		if err := analyzeOnce(path); err != nil {
			logger.Warn("analysis failed, waiting for next change", zap.Error(err))
		}
	}
	report()

	w, err := watch.New(path, logger, report)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

func analyzeOnce(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := pipeline.Run(f, pipeline.Options{Label: cfg.UnitLabel})
	if err != nil {
		fmt.Print(render.Failure(render.DefaultStyles(), err))
		return err
	}

	if jsonOutput {
		out := struct {
			*pipeline.Result
			Chart chart.Payload `json:"chart"`
		}{Result: res, Chart: chart.Build(res)}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Print(render.View(render.DefaultStyles(), res, cfg.PreviewRows))
	return nil
}

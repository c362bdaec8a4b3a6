package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cognicore/reconcile/internal/logger"
	"github.com/cognicore/reconcile/pkg/reconcile"
)

func runCmd() *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile every digest group in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.DryRun = dryRun
			}

			log, err := logger.NewLogger(cfg.Log.Env, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer log.Sync()

			comp, err := cfg.Build()
			if err != nil {
				return err
			}

			ctx := logger.ContextWithLogger(cmd.Context(), log)
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			r, err := reconcile.New(reconcile.Options{
				Documents: st,
				Records:   st,
				Segmenter: comp.Segmenter,
				Extractor: comp.Extractor,
				Scorer:    comp.Scorer,
				DryRun:    cfg.DryRun,
				Logger:    logger.FromContext(ctx),
			})
			if err != nil {
				return err
			}

			report, err := r.Run(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(os.Stdout, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and report without updating records")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the full report as JSON")
	return cmd
}

func printReport(w io.Writer, rep reconcile.Report) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	mode := green.Sprint("applied")
	if rep.DryRun {
		mode = yellow.Sprint("dry-run")
	}
	bold.Fprintf(w, "Run %s ", rep.RunID)
	fmt.Fprintf(w, "(%s)\n", mode)

	for _, g := range rep.Groups {
		for _, m := range g.Matches {
			switch m.Outcome {
			case reconcile.Updated:
				green.Fprintf(w, "  ✓ %s", m.RecordID)
			case reconcile.LocationMismatch:
				yellow.Fprintf(w, "  ! %s", m.RecordID)
			case reconcile.UpdateFailed:
				red.Fprintf(w, "  ✗ %s", m.RecordID)
			default:
				continue
			}
			fmt.Fprintf(w, " → section %d of %s (score %.1f) %s\n", m.SectionIndex, g.SourceID, m.Score, m.Outcome)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, rep.Summary())
	for _, err := range rep.Errors() {
		red.Fprintf(w, "  error: %v\n", err)
	}
}

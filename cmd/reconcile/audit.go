package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit [run-id]",
		Short: "List the record updates applied by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			updates, err := st.UpdatesForRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(updates) == 0 {
				fmt.Printf("No updates for run %s\n", args[0])
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RECORD\tSCORE\tAPPLIED\tPREVIOUS\tNEW")
			for _, u := range updates {
				fmt.Fprintf(tw, "%s\t%.1f\t%s\t%s\t%s\n",
					u.RecordID, u.Score, u.AppliedAt.Format(time.RFC3339),
					truncate(u.PreviousBody, 40), truncate(u.NewBody, 40))
			}
			return tw.Flush()
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

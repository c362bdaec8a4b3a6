package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reconcile",
		Short:         "Re-attach digest sections to the records split from them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "YAML config file (optional)")
	cmd.PersistentFlags().String("db", "", "database path (overrides config)")

	cmd.AddCommand(runCmd())
	cmd.AddCommand(segmentCmd())
	cmd.AddCommand(importCmd())
	cmd.AddCommand(auditCmd())
	return cmd
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/reconcile/internal/jsonl"
)

func importCmd() *cobra.Command {
	var docsPath, recordsPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load digests and records from JSONL files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if docsPath == "" && recordsPath == "" {
				return errors.New("--documents or --records required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if docsPath != "" {
				docs, err := jsonl.LoadDocuments(docsPath)
				if err != nil {
					return err
				}
				for _, d := range docs {
					if err := st.UpsertDocument(ctx, d); err != nil {
						return fmt.Errorf("store document %s: %w", d.SourceID, err)
					}
				}
				fmt.Printf("Imported %d documents from %s\n", len(docs), docsPath)
			}

			if recordsPath != "" {
				recs, err := jsonl.LoadRecords(recordsPath)
				if err != nil {
					return err
				}
				for _, r := range recs {
					if err := st.UpsertRecord(ctx, r); err != nil {
						return fmt.Errorf("store record %s: %w", r.ID, err)
					}
				}
				fmt.Printf("Imported %d records from %s\n", len(recs), recordsPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&docsPath, "documents", "", "JSONL file of digests")
	cmd.Flags().StringVar(&recordsPath, "records", "", "JSONL file of records")
	return cmd
}

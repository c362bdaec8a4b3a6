package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func segmentCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "segment [source-id]",
		Short: "Print the sections of one digest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			comp, err := cfg.Build()
			if err != nil {
				return err
			}

			var raw string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				raw = string(data)
			case len(args) == 1:
				st, err := openStore(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer st.Close()
				doc, ok, err := st.GetDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no document for %s", args[0])
				}
				raw = doc.RawText
			default:
				return errors.New("source-id or --file required")
			}

			res := comp.Segmenter.Split(raw)
			head := color.New(color.FgCyan, color.Bold)
			fmt.Printf("%d sections (%s)\n", len(res.Sections), res.Strategy)
			for _, s := range res.Sections {
				head.Printf("\n--- section %d ---\n", s.Index)
				fmt.Println(s.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "segment a plain-text file instead of a stored document")
	return cmd
}

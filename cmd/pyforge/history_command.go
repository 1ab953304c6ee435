package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pyforge/internal/config"
	"pyforge/internal/history"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.HistoryPath()
			if err != nil {
				return fmt.Errorf("locate history database: %w", err)
			}
			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open history database: %w", err)
			}
			defer store.Close()

			records, err := store.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				outcome := "failed"
				if rec.Succeeded {
					outcome = "ok"
				}
				exitCode := strconv.Itoa(rec.ExitCode)
				if rec.ExitCode < 0 {
					exitCode = "-"
				}
				rows = append(rows, []string{
					rec.StartedAt.Local().Format("2006-01-02 15:04"),
					rec.OutputName,
					rec.SourcePath,
					outcome,
					exitCode,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Started", "Name", "Source", "Outcome", "Exit"},
				rows, 5))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of builds to show")

	return cmd
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent MCQ generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		runs, err := s.EventRepo().QueryGenerationRuns(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No generation runs found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-8s  %5s  %8s  %7s  %-2s  %s\n",
			"ID", "Timestamp", "Request", "Count", "Attempts", "Ms", "OK", "Error")
		fmt.Println(strings.Repeat("─", 100))

		var total, succeeded int
		for _, r := range runs {
			if failed && r.Success {
				continue
			}
			total++
			ok := "✓"
			if r.Success {
				succeeded++
			} else {
				ok = "✗"
			}
			errText := r.ErrorKind
			if r.ErrorMessage != "" {
				errText += ": " + truncate(r.ErrorMessage, 60)
			}
			fmt.Printf("%-5d  %-19s  %-8s  %5d  %4d/%-3d  %7d  %-2s  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				shortID(r.RequestID),
				r.RequestedCount,
				r.Attempts,
				r.MaxAttempts,
				r.LatencyMs,
				ok,
				errText,
			)
		}

		fmt.Println(strings.Repeat("─", 100))
		fmt.Printf("%d runs, %d succeeded\n", total, succeeded)
		return nil
	},
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	runsCmd.Flags().Bool("failed", false, "Only show failed runs")
	runsCmd.Flags().Duration("since", 0, "Only show runs newer than this, e.g. 24h")
}

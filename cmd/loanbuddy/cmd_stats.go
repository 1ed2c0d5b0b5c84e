package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"loanbuddy/internal/record"
)

var statsCNIC string

// statsCmd prints store-wide totals without opening the dashboard, handy
// for scripting and cron checks.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print application counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		apps, skipped, err := app.store.Load()
		if err != nil {
			return err
		}
		counts, err := app.store.CountByStatus(statsCNIC)
		if err != nil {
			return err
		}

		logger.Info("stats computed",
			zap.String("cnic", statsCNIC),
			zap.Int("total", counts.Total),
			zap.Int("skipped_lines", skipped))

		fmt.Printf("applications: %d\n", counts.Total)
		fmt.Printf("  in progress: %d\n", counts.Incomplete)
		fmt.Printf("  submitted:   %d\n", counts.Submitted)
		fmt.Printf("  approved:    %d\n", counts.Approved)
		fmt.Printf("  rejected:    %d\n", counts.Rejected)
		if skipped > 0 {
			fmt.Printf("  skipped malformed lines: %d\n", skipped)
		}

		awaiting := 0
		for _, a := range apps {
			if a.Status == record.StatusDocsReady && (statsCNIC == "" || a.CNIC == statsCNIC) {
				awaiting++
			}
		}
		if awaiting > 0 {
			fmt.Printf("  awaiting final submission: %d\n", awaiting)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCNIC, "cnic", "", "restrict counts to one applicant's CNIC")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/review"
	"github.com/at-ishikawa/itera/internal/statistics"
)

func newReportCommand() *cobra.Command {
	var (
		userID      int64
		year, month int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show monthly/yearly report of review sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			if err := validateUserID(userID); err != nil {
				return err
			}
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}

			return withReviewService(func(svc *review.Service) error {
				dates, today, err := svc.History(cmd.Context(), userID)
				if err != nil {
					return err
				}
				result := statistics.CalculateReviewStatistics(dates, today, year, month)
				return printer.PrintReport(userID, today, result)
			})
		},
	}
	addUserFlag(cmd, &userID)
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")

	return cmd
}

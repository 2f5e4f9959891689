package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/cli"
	"github.com/at-ishikawa/itera/internal/review"
	"github.com/at-ishikawa/itera/internal/schedule"
)

func newRepairCommand() *cobra.Command {
	var (
		userID           int64
		oldDate, newDate string
		reason, operator string
		dryRun           bool
	)

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Move a review recorded under a wrong local date to the correct date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUserID(userID); err != nil {
				return err
			}
			req, err := newRepairRequest(userID, oldDate, newDate, reason, operator, dryRun)
			if err != nil {
				return err
			}
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			return withReviewService(func(svc *review.Service) error {
				return runRepair(cmd.Context(), svc, printer, req)
			})
		},
	}
	addUserFlag(cmd, &userID)
	cmd.Flags().StringVar(&oldDate, "old", "", "Wrong review date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&newDate, "new", "", "Correct review date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit log")
	cmd.Flags().StringVar(&operator, "operator", os.Getenv("USER"), "Operator recorded in the audit log")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the repair without writing")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func runRepair(ctx context.Context, svc *review.Service, printer *cli.Printer, req review.RepairRequest) error {
	result, err := svc.Repair(ctx, req)
	if err != nil {
		return err
	}
	return printer.PrintRepair(result)
}

func newRepairRequest(userID int64, oldDate, newDate, reason, operator string, dryRun bool) (review.RepairRequest, error) {
	old, err := schedule.ParseDate(oldDate)
	if err != nil {
		return review.RepairRequest{}, fmt.Errorf("--old: %w", err)
	}
	correct, err := schedule.ParseDate(newDate)
	if err != nil {
		return review.RepairRequest{}, fmt.Errorf("--new: %w", err)
	}
	if old == correct {
		return review.RepairRequest{}, fmt.Errorf("--old and --new must differ")
	}
	return review.RepairRequest{
		UserID:      userID,
		OldDate:     old,
		CorrectDate: correct,
		Reason:      reason,
		Operator:    operator,
		DryRun:      dryRun,
	}, nil
}

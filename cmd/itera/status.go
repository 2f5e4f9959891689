package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/review"
)

func newStatusCommand() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the notes due today and whether today's review is done",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUserID(userID); err != nil {
				return err
			}
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			return withReviewService(func(svc *review.Service) error {
				status, err := svc.Status(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return printer.PrintStatus(status)
			})
		},
	}
	addUserFlag(cmd, &userID)

	return cmd
}

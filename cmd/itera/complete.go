package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/review"
)

func newCompleteCommand() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record that the user finished today's review session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUserID(userID); err != nil {
				return err
			}
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			return withReviewService(func(svc *review.Service) error {
				result, err := svc.Complete(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return printer.PrintCompletion(result)
			})
		},
	}
	addUserFlag(cmd, &userID)

	return cmd
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/cli"
	"github.com/at-ishikawa/itera/internal/schedule"
)

type dueOptions struct {
	box          BoxFlag
	registeredAt string
	at           string
	offset       int
	anchor       AnchorFlag
}

func newDueCommand() *cobra.Command {
	opts := dueOptions{anchor: AnchorFlag(schedule.AnchorUTC)}

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Check whether a box is due without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := evaluateDue(opts, time.Now())
			if err != nil {
				return err
			}
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			return printer.PrintDue(*result)
		},
	}

	cmd.Flags().Var(&opts.box, "box", "Box type (daily, every_2_days, every_4_days, weekly, every_2_weeks, learned)")
	cmd.Flags().StringVar(&opts.registeredAt, "registered-at", "", "Registration instant of the user in RFC 3339")
	cmd.Flags().StringVar(&opts.at, "at", "", "Instant to evaluate in RFC 3339 (default now)")
	cmd.Flags().IntVar(&opts.offset, "offset", schedule.DefaultTimezoneOffset, "Timezone offset in minutes east of UTC, out-of-range values fall back to the default")
	cmd.Flags().Var(&opts.anchor, "anchor", "First-due anchor (utc or local)")
	_ = cmd.MarkFlagRequired("box")
	_ = cmd.MarkFlagRequired("registered-at")

	return cmd
}

func evaluateDue(opts dueOptions, now time.Time) (*cli.DueResult, error) {
	box, err := schedule.ParseBoxType(string(opts.box))
	if err != nil {
		return nil, fmt.Errorf("--box: %w", err)
	}
	registeredAt, err := time.Parse(time.RFC3339, opts.registeredAt)
	if err != nil {
		return nil, fmt.Errorf("--registered-at: %w", err)
	}
	asOf := now
	if opts.at != "" {
		asOf, err = time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return nil, fmt.Errorf("--at: %w", err)
		}
	}
	offset, offsetErr := schedule.NormalizeOffset(&opts.offset)
	anchor, err := schedule.ParseAnchor(string(opts.anchor))
	if err != nil {
		return nil, fmt.Errorf("--anchor: %w", err)
	}

	sched := schedule.Schedule{Anchor: anchor}
	result := &cli.DueResult{
		BoxType:        box,
		RegisteredAt:   registeredAt,
		AsOf:           asOf,
		TimezoneOffset: offset,
		LocalDate:      schedule.LocalDate(asOf, offset),
		Due:            sched.IsDue(box, registeredAt, offset, asOf),
	}
	if offsetErr != nil {
		slog.Warn("falling back to the default timezone offset",
			"offset", opts.offset,
			"default_offset", offset,
			"error", offsetErr)
		invalid := opts.offset
		result.InvalidOffset = &invalid
	}
	if next, ok := sched.NextDue(box, registeredAt, offset, asOf); ok {
		result.NextDue = &next
	}
	return result, nil
}

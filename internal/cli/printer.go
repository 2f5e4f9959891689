package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/itera/internal/review"
	"github.com/at-ishikawa/itera/internal/schedule"
	"github.com/at-ishikawa/itera/internal/statistics"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputText, OutputYAML:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q, must be one of text or yaml", s)
	}
}

// DueResult is the outcome of evaluating a single box without a database.
// InvalidOffset holds the rejected input when TimezoneOffset fell back to the default.
type DueResult struct {
	BoxType        schedule.BoxType `yaml:"box_type"`
	RegisteredAt   time.Time        `yaml:"registered_at"`
	AsOf           time.Time        `yaml:"as_of"`
	TimezoneOffset int              `yaml:"timezone_offset"`
	InvalidOffset  *int             `yaml:"invalid_offset,omitempty"`
	LocalDate      schedule.Date    `yaml:"local_date"`
	Due            bool             `yaml:"due"`
	NextDue        *schedule.Date   `yaml:"next_due,omitempty"`
}

type periodView struct {
	Period         string  `yaml:"period"`
	Sessions       int     `yaml:"sessions"`
	ElapsedDays    int     `yaml:"elapsed_days"`
	CompletionRate float64 `yaml:"completion_rate"`
}

type reportView struct {
	UserID         int64          `yaml:"user_id"`
	Today          schedule.Date  `yaml:"today"`
	Periods        []periodView   `yaml:"periods"`
	Sessions       int            `yaml:"sessions"`
	CurrentStreak  int            `yaml:"current_streak"`
	LongestStreak  int            `yaml:"longest_streak"`
	LastReviewDate *schedule.Date `yaml:"last_review_date,omitempty"`
}

// Printer renders review results as colored text or YAML.
type Printer struct {
	format       OutputFormat
	stdoutWriter io.Writer
	bold         *color.Color
	green        *color.Color
	yellow       *color.Color
}

func NewPrinter(w io.Writer, format OutputFormat) *Printer {
	return &Printer{
		format:       format,
		stdoutWriter: w,
		bold:         color.New(color.Bold),
		green:        color.New(color.FgGreen),
		yellow:       color.New(color.FgYellow),
	}
}

func (p *Printer) PrintStatus(status *review.Status) error {
	if p.format == OutputYAML {
		return p.writeYAML(status)
	}

	var b strings.Builder
	p.bold.Fprintf(&b, "User %d on %s (%s)\n", status.UserID, status.LocalDate, FormatOffset(status.TimezoneOffset))
	fmt.Fprintf(&b, "Due today: %s\n", p.bold.Sprintf("%d", status.TotalDue))
	fmt.Fprintf(&b, "Already reviewed today: %s\n", p.yesNo(status.AlreadyReviewedToday, p.green, p.yellow))

	if len(status.Boxes) == 0 {
		fmt.Fprintln(&b, "No notes found.")
		return p.write(b.String())
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%-14s  %6s  %-4s  %s\n", "Box", "Notes", "Due", "Next due")
	fmt.Fprintf(&b, "%-14s  %6s  %-4s  %s\n", "---", "-----", "---", "--------")
	for _, box := range status.Boxes {
		next := "-"
		if box.NextDue != nil {
			next = box.NextDue.String()
		}
		due := fmt.Sprintf("%-4s", "no")
		if box.Due {
			due = p.green.Sprintf("%-4s", "yes")
		}
		fmt.Fprintf(&b, "%-14s  %6d  %s  %s\n", box.BoxType, box.Count, due, next)
	}
	return p.write(b.String())
}

func (p *Printer) PrintCompletion(result *review.CompletionResult) error {
	if p.format == OutputYAML {
		return p.writeYAML(result)
	}
	if result.Recorded {
		return p.write(p.green.Sprintf("Recorded the review of user %d on %s\n", result.UserID, result.ReviewDate))
	}
	return p.write(p.yellow.Sprintf("User %d has already reviewed on %s\n", result.UserID, result.ReviewDate))
}

func (p *Printer) PrintRepair(result *review.RepairResult) error {
	if p.format == OutputYAML {
		return p.writeYAML(result)
	}

	var b strings.Builder
	if result.DryRun {
		p.yellow.Fprint(&b, "[dry run] ")
	}
	switch result.Action {
	case review.RepairActionNone:
		fmt.Fprintf(&b, "No review of user %d on %s, nothing to repair\n", result.UserID, result.OldDate)
	case review.RepairActionUpdated:
		fmt.Fprintf(&b, "Moved the review of user %d from %s to %s\n", result.UserID, result.OldDate, result.CorrectDate)
	case review.RepairActionMerged:
		fmt.Fprintf(&b, "Removed the review of user %d on %s, %s is already recorded\n", result.UserID, result.OldDate, result.CorrectDate)
	default:
		fmt.Fprintf(&b, "Repair of user %d finished with action %q\n", result.UserID, result.Action)
	}
	if result.AuditID != 0 {
		fmt.Fprintf(&b, "Audit record: %d\n", result.AuditID)
	}
	return p.write(b.String())
}

func (p *Printer) PrintReport(userID int64, today schedule.Date, result statistics.StatisticsResult) error {
	if p.format == OutputYAML {
		view := reportView{
			UserID:        userID,
			Today:         today,
			Periods:       make([]periodView, 0, len(result.Periods)),
			Sessions:      result.Aggregate.Sessions,
			CurrentStreak: result.Aggregate.CurrentStreak,
			LongestStreak: result.Aggregate.LongestStreak,
		}
		for _, s := range result.Periods {
			view.Periods = append(view.Periods, periodView{
				Period:         s.Period,
				Sessions:       s.Sessions,
				ElapsedDays:    s.ElapsedDays,
				CompletionRate: s.CompletionRate(),
			})
		}
		if !result.Aggregate.LastReviewDate.IsZero() {
			last := result.Aggregate.LastReviewDate
			view.LastReviewDate = &last
		}
		return p.writeYAML(view)
	}

	if len(result.Periods) == 0 {
		return p.write("No review sessions found for the specified period.\n")
	}

	var b strings.Builder
	fmt.Fprintln(&b, "Review Statistics Report")
	fmt.Fprintln(&b, "========================")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%-10s  %-16s  %s\n", "Period", "Sessions (Days)", "Rate")
	fmt.Fprintf(&b, "%-10s  %-16s  %s\n", "------", "---------------", "----")
	for _, s := range result.Periods {
		fmt.Fprintf(&b, "%-10s  %-16s  %3.0f%%\n",
			s.Period,
			fmt.Sprintf("%d / %d", s.Sessions, s.ElapsedDays),
			s.CompletionRate()*100,
		)
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%-16s  %d\n", "Total sessions:", result.Aggregate.Sessions)
	fmt.Fprintf(&b, "%-16s  %s\n", "Current streak:", p.bold.Sprintf("%d", result.Aggregate.CurrentStreak))
	fmt.Fprintf(&b, "%-16s  %d\n", "Longest streak:", result.Aggregate.LongestStreak)
	if !result.Aggregate.LastReviewDate.IsZero() {
		fmt.Fprintf(&b, "%-16s  %s\n", "Last review:", result.Aggregate.LastReviewDate)
	}
	return p.write(b.String())
}

func (p *Printer) PrintDue(result DueResult) error {
	if p.format == OutputYAML {
		return p.writeYAML(result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Box %s registered at %s\n", p.bold.Sprint(result.BoxType), result.RegisteredAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Local date: %s (%s)\n", result.LocalDate, FormatOffset(result.TimezoneOffset))
	if result.InvalidOffset != nil {
		p.yellow.Fprintf(&b, "Offset %d is out of range, used the default\n", *result.InvalidOffset)
	}
	fmt.Fprintf(&b, "Due: %s\n", p.yesNo(result.Due, p.green, nil))
	if result.NextDue != nil {
		fmt.Fprintf(&b, "Next due: %s\n", result.NextDue)
	} else {
		fmt.Fprintln(&b, "Next due: never")
	}
	return p.write(b.String())
}

// FormatOffset formats minutes east of UTC as "UTC+03:00".
func FormatOffset(offsetMinutes int) string {
	sign := '+'
	if offsetMinutes < 0 {
		sign = '-'
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}

func (p *Printer) yesNo(v bool, yes, no *color.Color) string {
	if v {
		if yes != nil {
			return yes.Sprint("yes")
		}
		return "yes"
	}
	if no != nil {
		return no.Sprint("no")
	}
	return "no"
}

func (p *Printer) writeYAML(v any) error {
	encoder := yaml.NewEncoder(p.stdoutWriter)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.stdoutWriter, s); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

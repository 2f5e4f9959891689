// Package statistics aggregates completed review sessions into reports.
package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/itera/internal/schedule"
)

// ReviewStatistics holds statistics for a month
type ReviewStatistics struct {
	Period      string // "2025-07"
	Sessions    int    // Days with a completed review session
	ElapsedDays int    // Days of the month up to and including today
}

// CompletionRate returns the share of elapsed days with a session, between 0 and 1.
func (s ReviewStatistics) CompletionRate() float64 {
	if s.ElapsedDays == 0 {
		return 0
	}
	return float64(s.Sessions) / float64(s.ElapsedDays)
}

// AggregateStatistics holds totals across all periods
type AggregateStatistics struct {
	Sessions       int
	CurrentStreak  int
	LongestStreak  int
	LastReviewDate schedule.Date
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []ReviewStatistics
	Aggregate AggregateStatistics
}

// CalculateReviewStatistics calculates review statistics from the dates of completed sessions.
// It accepts optional year and month filters (0 means no filter) which narrow the
// periods and the session total. Streaks always cover the whole history.
// Dates after today are ignored, and a session missing today does not break
// the current streak until the day is over.
func CalculateReviewStatistics(dates []schedule.Date, today schedule.Date, year, month int) StatisticsResult {
	days := uniqueDaysUntil(dates, today)

	stats := make(map[string]*ReviewStatistics)
	var total int
	for _, d := range days {
		if !matchesFilter(d.Year, int(d.Month), year, month) {
			continue
		}
		period := fmt.Sprintf("%d-%02d", d.Year, int(d.Month))
		if stats[period] == nil {
			stats[period] = &ReviewStatistics{
				Period:      period,
				ElapsedDays: elapsedDays(d, today),
			}
		}
		stats[period].Sessions++
		total++
	}

	periods := make([]ReviewStatistics, 0, len(stats))
	for _, s := range stats {
		periods = append(periods, *s)
	}
	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	aggregate := AggregateStatistics{
		Sessions:      total,
		CurrentStreak: currentStreak(days, today),
		LongestStreak: longestStreak(days),
	}
	if len(days) > 0 {
		aggregate.LastReviewDate = days[len(days)-1]
	}
	return StatisticsResult{
		Periods:   periods,
		Aggregate: aggregate,
	}
}

// uniqueDaysUntil returns the distinct dates not after today, oldest first.
func uniqueDaysUntil(dates []schedule.Date, today schedule.Date) []schedule.Date {
	seen := make(map[schedule.Date]struct{}, len(dates))
	days := make([]schedule.Date, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() || d.After(today) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

func elapsedDays(d, today schedule.Date) int {
	if d.Year == today.Year && d.Month == today.Month {
		return today.Day
	}
	// Day 0 of the next month is the last day of this one.
	return schedule.DateOf(d.Time().AddDate(0, 1, -d.Day)).Day
}

func currentStreak(days []schedule.Date, today schedule.Date) int {
	if len(days) == 0 {
		return 0
	}
	last := days[len(days)-1]
	if last != today && last != today.AddDays(-1) {
		return 0
	}
	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i].DaysSince(days[i-1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

func longestStreak(days []schedule.Date) int {
	var longest, run int
	for i, d := range days {
		if i > 0 && d.DaysSince(days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

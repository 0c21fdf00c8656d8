// Package bucket classifies tasks into action-time buckets for display
// grouping. Pure functions: no I/O, no mutation of the task.
package bucket

import (
	"time"

	"github.com/planfold/planfold/internal/model"
)

// Classify computes the suggested bucket for a task as of today.
//
// With a due date: due on or before today is do-today; due after today
// but no later than the Sunday closing next week's Mon-Sun window is
// do-next-week; anything past that Sunday is do-later. Without one: tasks
// created within the last 2 days are recently-assigned, the rest do-later.
func Classify(t model.Task, today time.Time) string {
	day := startOfDay(today)

	if t.DueDate != nil {
		due := startOfDay(t.DueDate.Time)
		if !due.After(day) {
			return model.BucketDoToday
		}
		if !due.After(endOfNextWeek(day)) {
			return model.BucketDoNextWeek
		}
		return model.BucketDoLater
	}

	if t.CreatedAt.After(day.AddDate(0, 0, -2)) {
		return model.BucketRecentlyAssigned
	}
	return model.BucketDoLater
}

// Resolve returns the effective bucket, honoring a manual override
// verbatim, and whether that bucket still matches the computed
// suggestion. The UI distinguishes "following the suggestion" from
// "manually moved".
func Resolve(t model.Task, today time.Time) (bucket string, followsSuggestion bool) {
	suggested := Classify(t, today)
	if t.ActionTime == "" {
		return suggested, true
	}
	return t.ActionTime, t.ActionTime == suggested
}

// endOfNextWeek returns the Sunday that closes the following Mon-Sun
// window. The window starts (7 - weekday + 1) % 7 days out, with zero
// mapping to seven: on a Monday the window starts seven days out, not
// zero.
func endOfNextWeek(day time.Time) time.Time {
	untilMonday := (7 - int(day.Weekday()) + 1) % 7
	if untilMonday == 0 {
		untilMonday = 7
	}
	nextMonday := day.AddDate(0, 0, untilMonday)
	return nextMonday.AddDate(0, 0, 6)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

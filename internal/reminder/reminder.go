// Package reminder computes which tasks should currently be showing a
// reminder. Evaluation is pure over (tasks, now); dismiss and snooze state
// changes happen elsewhere and show up here on the next evaluation.
package reminder

import (
	"time"

	"github.com/avsivakumar/tada/internal/model"
)

// Offset durations per unit. Fixed multipliers, not calendar math: a month
// is exactly 30 days, matching how stored reminder times were produced.
var unitDurations = map[string]time.Duration{
	"minutes": time.Minute,
	"hours":   time.Hour,
	"days":    24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
	"months":  30 * 24 * time.Hour,
}

// OffsetDuration converts a relative reminder spec (N units) into a duration.
// Reports false for an unknown unit or non-positive count.
func OffsetDuration(n int, unit string) (time.Duration, bool) {
	d, ok := unitDurations[unit]
	if !ok || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * d, true
}

// Resolve turns a relative reminder into the absolute moment it fires:
// the due timestamp minus the offset. Nil when the task has no due date or
// the offset is invalid. Called at save time, not at evaluation time.
func Resolve(dueDate, dueTime string, n int, unit string) *time.Time {
	d, ok := model.ParseDate(dueDate)
	if !ok {
		return nil
	}
	off, ok := OffsetDuration(n, unit)
	if !ok {
		return nil
	}
	at := model.CombineDateTime(d, dueTime).Add(-off)
	return &at
}

// DueNow returns the tasks whose reminder should currently be shown: the
// union of relative reminders that have fired and hourly templates on their
// minute. Templates never appear through the relative rule.
func DueNow(tasks []model.Task, now time.Time) []model.Task {
	var due []model.Task
	for i := range tasks {
		t := tasks[i]
		if !t.Active || t.Completed {
			continue
		}
		if relativeDue(&t, now) || hourlyDue(&t, now) {
			due = append(due, t)
		}
	}
	return due
}

func relativeDue(t *model.Task, now time.Time) bool {
	if t.Role() == model.RoleTemplate {
		return false
	}
	if t.ReminderTime == nil || t.ReminderTime.After(now) {
		return false
	}
	if t.SnoozedUntil != nil && t.SnoozedUntil.After(now) {
		return false
	}
	return true
}

// hourlyDue implements the hourly-recurring fire: the current wall-clock
// minute matches the template's minute, the template's own due moment (if
// any) has passed, the end-date window is open, and it was not already
// dismissed within this clock hour.
func hourlyDue(t *model.Task, now time.Time) bool {
	if t.Role() != model.RoleTemplate || t.RecurrencePattern != model.PatternHourly {
		return false
	}
	if now.Minute() != t.HourlyMinute() {
		return false
	}
	if dueAt, ok := t.DueAt(); ok && dueAt.After(now) {
		return false
	}
	if end, ok := model.ParseDate(t.RecurrenceEndDate); ok && model.Midnight(now).After(end) {
		return false
	}
	if DismissedThisHour(t, now) {
		return false
	}
	return true
}

// DismissedThisHour reports whether the template was dismissed within the
// current clock hour (same calendar day, same hour).
func DismissedThisHour(t *model.Task, now time.Time) bool {
	d := t.LastDismissedHour
	if d == nil {
		return false
	}
	return d.Year() == now.Year() && d.YearDay() == now.YearDay() && d.Hour() == now.Hour()
}

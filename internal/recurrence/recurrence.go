// Package recurrence decides if and when a recurring template materializes
// its next concrete instance. All functions are pure over the template state;
// the wall clock enters only to anchor a template that has never fired and
// carries no due date.
package recurrence

import (
	"time"

	"github.com/avsivakumar/tada/internal/model"
)

// DueSpec is the computed due date and optional time-of-day for the next
// instance of a template.
type DueSpec struct {
	Date time.Time // local midnight of the due day
	Time string    // HH:MM, empty when the instance carries no time-of-day
}

// NextOccurrence computes when the template's next instance falls due.
// Returns nil for non-templates, hourly templates (those fire through the
// reminder path and never materialize), and templates past their end date.
//
// The anchor chain: lastGeneratedDate if set, else the template's own due
// date, else "now". A date-anchored template advances exactly one period
// from the anchor; an anchorless one is due immediately.
func NextOccurrence(t *model.Task, now time.Time) *DueSpec {
	if t.Role() != model.RoleTemplate {
		return nil
	}
	if t.RecurrencePattern == "" || t.RecurrencePattern == model.PatternHourly {
		return nil
	}

	var next time.Time
	if anchor, fromWatermark, ok := anchorDate(t); ok {
		next = advance(t, anchor, fromWatermark)
	} else {
		next = model.Midnight(now)
	}

	if end, ok := model.ParseDate(t.RecurrenceEndDate); ok && next.After(end) {
		return nil
	}

	return &DueSpec{Date: next, Time: instanceClock(t)}
}

// IsDueForGeneration reports whether the template should materialize now:
// the next occurrence's calendar day is today or earlier and no instance
// exists for that day yet. Date-only comparison; time-of-day is ignored.
func IsDueForGeneration(t *model.Task, instances []model.Task, now time.Time) bool {
	spec := NextOccurrence(t, now)
	if spec == nil {
		return false
	}
	if spec.Date.After(model.Midnight(now)) {
		return false
	}
	return !HasInstanceOn(instances, model.FormatDate(spec.Date))
}

// HasInstanceOn reports whether any instance already carries the given due
// date. Materialization is idempotent per (template, dueDate).
func HasInstanceOn(instances []model.Task, date string) bool {
	for i := range instances {
		if instances[i].DueDate == date {
			return true
		}
	}
	return false
}

func anchorDate(t *model.Task) (anchor time.Time, fromWatermark, ok bool) {
	if d, ok := model.ParseDate(t.LastGeneratedDate); ok {
		return d, true, true
	}
	if d, ok := model.ParseDate(t.DueDate); ok {
		return d, false, true
	}
	return time.Time{}, false, false
}

func advance(t *model.Task, anchor time.Time, fromWatermark bool) time.Time {
	switch t.RecurrencePattern {
	case model.PatternWeekly:
		next := anchor.AddDate(0, 0, 7)
		if !fromWatermark {
			// Only the first advance from the template's own due date is
			// normalized; after that the watermark chain keeps the weekday.
			next = alignWeekday(next, weekdayOrDefault(t))
		}
		return next
	case model.PatternMonthly:
		y, m, _ := anchor.Date()
		first := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, 1, 0)
		day := t.RecurrenceDayOfMonth
		if day <= 0 {
			day = 1
		}
		return clampedDate(first.Year(), first.Month(), day, anchor.Location())
	case model.PatternYearly:
		month := time.Month(t.RecurrenceMonth)
		if month < time.January || month > time.December {
			month = time.January
		}
		day := t.RecurrenceDayOfYear
		if day <= 0 {
			day = 1
		}
		return clampedDate(anchor.Year()+1, month, day, anchor.Location())
	default: // daily
		return anchor.AddDate(0, 0, 1)
	}
}

// weekdayOrDefault returns the configured day of week, Monday=1 .. Sunday=7.
func weekdayOrDefault(t *model.Task) int {
	if t.RecurrenceDayOfWeek >= 1 && t.RecurrenceDayOfWeek <= 7 {
		return t.RecurrenceDayOfWeek
	}
	return 1
}

// alignWeekday moves d forward (0-6 days) to the given Monday=1..Sunday=7 day.
func alignWeekday(d time.Time, dow int) time.Time {
	target := time.Weekday(dow % 7) // 7 wraps to Sunday
	delta := (int(target) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, delta)
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	if max := daysInMonth(month, year); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// instanceClock picks the time-of-day the generated instance inherits.
func instanceClock(t *model.Task) string {
	if t.RecurrenceTime != "" {
		return t.RecurrenceTime
	}
	return t.DueTime
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstOfNextMonth := firstOfMonth.AddDate(0, 1, 0)
	lastOfMonth := firstOfNextMonth.AddDate(0, 0, -1)
	return lastOfMonth.Day()
}

package model

import "time"

// Recurrence patterns supported by templates.
const (
	PatternHourly  = "hourly"
	PatternDaily   = "daily"
	PatternWeekly  = "weekly"
	PatternMonthly = "monthly"
	PatternYearly  = "yearly"
)

// Role classifies a task by what it is allowed to do. A template spawns
// instances and is never completable; instances and standalone tasks are.
type Role int

const (
	RoleStandalone Role = iota
	RoleTemplate
	RoleInstance
)

// Task is the central record: a one-off task, a recurring template, or a
// generated instance of a template.
type Task struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"` // high, medium, low
	Tags        []string `gorm:"serializer:json" json:"tags"`

	DueDate string `gorm:"index" json:"dueDate,omitempty"` // 2006-01-02, empty = unset
	DueTime string `json:"dueTime,omitempty"`              // 15:04, empty = unset

	Completed      bool   `gorm:"default:false" json:"completed"`
	CompletionDate string `json:"completionDate,omitempty"`
	CompletionTime string `json:"completionTime,omitempty"`

	ReminderNumber int        `json:"reminderNumber,omitempty"`
	ReminderUnit   string     `json:"reminderUnit,omitempty"` // minutes, hours, days, weeks, months
	ReminderTime   *time.Time `json:"reminderTime,omitempty"`
	SnoozedUntil   *time.Time `json:"snoozedUntil,omitempty"`

	IsRecurring          bool   `gorm:"default:false" json:"isRecurring"`
	RecurrencePattern    string `json:"recurrencePattern,omitempty"` // hourly, daily, weekly, monthly, yearly
	RecurrenceMinute     *int   `json:"recurrenceMinute,omitempty"`  // hourly: minute of the hour to fire at
	RecurrenceTime       string `json:"recurrenceTime,omitempty"`    // daily: time-of-day for generated instances
	RecurrenceDayOfWeek  int    `json:"recurrenceDayOfWeek,omitempty"`
	RecurrenceDayOfMonth int    `json:"recurrenceDayOfMonth,omitempty"`
	RecurrenceMonth      int    `json:"recurrenceMonth,omitempty"`
	RecurrenceDayOfYear  int    `json:"recurrenceDayOfYear,omitempty"`
	RecurrenceEndDate    string `json:"recurrenceEndDate,omitempty"` // 2006-01-02
	LastGeneratedDate    string `gorm:"index" json:"lastGeneratedDate,omitempty"`
	ParentTaskID         *uint  `gorm:"index" json:"parentTaskId,omitempty"` // set on instances only

	// Hourly fires stay quiet for the rest of the clock hour after a dismiss.
	LastDismissedHour *time.Time `json:"lastDismissedHour,omitempty"`

	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role derives the task's variant. This is the single place the
// template/instance/standalone distinction is decided.
func (t *Task) Role() Role {
	switch {
	case t.ParentTaskID != nil:
		return RoleInstance
	case t.IsRecurring:
		return RoleTemplate
	default:
		return RoleStandalone
	}
}

// DueAt resolves DueDate plus DueTime into a concrete local timestamp.
// Reports false when no due date is set or it does not parse.
func (t *Task) DueAt() (time.Time, bool) {
	d, ok := ParseDate(t.DueDate)
	if !ok {
		return time.Time{}, false
	}
	return CombineDateTime(d, t.DueTime), true
}

// HourlyMinute returns the minute of the hour an hourly template fires at:
// the configured minute, else the due time's minute, else the minute the
// template was created.
func (t *Task) HourlyMinute() int {
	if t.RecurrenceMinute != nil {
		return *t.RecurrenceMinute
	}
	if _, m, ok := ParseClock(t.DueTime); ok {
		return m
	}
	return t.CreatedAt.Minute()
}

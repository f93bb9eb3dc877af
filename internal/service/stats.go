package service

import (
	"time"

	"github.com/avsivakumar/tada/internal/model"
)

// Stats are the dashboard aggregates. Pure function of a task snapshot;
// recomputed on demand, never cached.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Urgent         int `json:"urgent"`
	DueToday       int `json:"dueToday"`
	Overdue        int `json:"overdue"`
	CompletedToday int `json:"completedToday"`
}

// ComputeStats counts instances and standalone tasks. Templates never
// participate in any aggregate.
func ComputeStats(tasks []model.Task, now time.Time) Stats {
	today := model.FormatDate(now)
	var s Stats
	for i := range tasks {
		t := &tasks[i]
		if !t.Active || t.Role() == model.RoleTemplate {
			continue
		}
		s.Total++
		if t.Completed {
			s.Completed++
			if t.CompletionDate == today {
				s.CompletedToday++
			}
			continue
		}
		s.Pending++
		if t.Priority == "high" {
			s.Urgent++
		}
		switch {
		case t.DueDate == "":
		case t.DueDate == today:
			s.DueToday++
		case t.DueDate < today:
			s.Overdue++
		}
	}
	return s
}

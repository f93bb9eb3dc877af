package service

import (
	"testing"

	"github.com/avsivakumar/tada/internal/model"
)

func TestComputeStatsExcludesTemplates(t *testing.T) {
	parent := uint(1)
	tasks := []model.Task{
		// Template: never counted anywhere.
		{ID: 1, IsRecurring: true, RecurrencePattern: model.PatternDaily, Active: true, DueDate: "2025-03-12"},
		// Instance completed today.
		{ID: 2, ParentTaskID: &parent, Completed: true, CompletionDate: "2025-03-12", Active: true},
		// Overdue high-priority standalone.
		{ID: 3, Priority: "high", DueDate: "2025-03-10", Active: true},
		// Pending, due in the future.
		{ID: 4, Priority: "low", DueDate: "2025-03-20", Active: true},
		// Soft-deleted: invisible.
		{ID: 5, Priority: "high", Active: false},
		// Pending, due today.
		{ID: 6, Priority: "medium", DueDate: "2025-03-12", Active: true},
	}

	got := ComputeStats(tasks, testNow)
	want := Stats{Total: 4, Completed: 1, Pending: 3, Urgent: 1, DueToday: 1, Overdue: 1, CompletedToday: 1}
	if got != want {
		t.Errorf("ComputeStats = %+v, want %+v", got, want)
	}
}

func TestComputeStatsEmptySnapshot(t *testing.T) {
	if got := ComputeStats(nil, testNow); got != (Stats{}) {
		t.Errorf("empty snapshot should be all zeros, got %+v", got)
	}
}

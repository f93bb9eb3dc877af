package service

import (
	"context"
	"sync"
	"time"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/reminder"
	"github.com/avsivakumar/tada/internal/repository"
)

// ReminderService re-derives the set of currently due reminders from the
// authoritative task rows on every tick and keeps the latest snapshot for
// cheap reads. A transient store failure leaves the previous snapshot in
// place; the next tick retries.
type ReminderService struct {
	taskRepo *repository.TaskRepository

	mu      sync.RWMutex
	current []model.Task
}

func NewReminderService(taskRepo *repository.TaskRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo}
}

// Refresh reloads the full task list and recomputes the due set.
func (s *ReminderService) Refresh(ctx context.Context, now time.Time) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	due := reminder.DueNow(tasks, now)

	s.mu.Lock()
	s.current = due
	s.mu.Unlock()
	return due, nil
}

// Current returns the snapshot from the most recent Refresh.
func (s *ReminderService) Current() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.current))
	copy(out, s.current)
	return out
}

package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avsivakumar/tada/internal/model"
)

// Scheduler wraps cron-based periodic jobs behind an explicit handle-based
// API: every registration returns an ID that cancels just that job, and Stop
// tears down all timers, draining jobs already running.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleRepeating registers a job to run every interval. The first run
// happens one full interval after Start, not immediately.
func (s *Scheduler) ScheduleRepeating(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, job)
}

// ScheduleDaily registers a job to run once a day at the given HH:MM clock
// time, in the scheduler's location.
func (s *Scheduler) ScheduleDaily(clock string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(clock)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// Cancel removes a previously scheduled job.
func (s *Scheduler) Cancel(id cron.EntryID) {
	s.cron.Remove(id)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels all timers and blocks until running jobs finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func buildDailySpec(clock string) (string, error) {
	hour, minute, ok := model.ParseClock(clock)
	if !ok {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

package service

import (
	"testing"
	"time"
)

func TestScheduleRepeatingRejectsNonPositiveInterval(t *testing.T) {
	s := NewScheduler(time.Local)
	if _, err := s.ScheduleRepeating(0, func() {}); err == nil {
		t.Error("zero interval should be rejected")
	}
	if _, err := s.ScheduleRepeating(-time.Minute, func() {}); err == nil {
		t.Error("negative interval should be rejected")
	}
}

func TestScheduleRepeatingFires(t *testing.T) {
	s := NewScheduler(time.Local)
	fired := make(chan struct{}, 1)
	if _, err := s.ScheduleRepeating(time.Second, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not fire within the interval")
	}
}

func TestCancelRemovesEntry(t *testing.T) {
	s := NewScheduler(time.Local)
	id, err := s.ScheduleRepeating(time.Hour, func() {})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !s.cron.Entry(id).Valid() {
		t.Fatal("entry was not registered")
	}

	s.Cancel(id)
	if s.cron.Entry(id).Valid() {
		t.Error("canceled entry is still registered")
	}
}

func TestScheduleDailyRejectsInvalidClock(t *testing.T) {
	s := NewScheduler(time.Local)
	for _, clock := range []string{"", "noon", "24:00", "12:60", "12-30"} {
		if _, err := s.ScheduleDaily(clock, func() {}); err == nil {
			t.Errorf("clock %q should be rejected", clock)
		}
	}
}

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		clock string
		want  string
		ok    bool
	}{
		{"00:05", "0 5 0 * * *", true},
		{"09:30", "0 30 9 * * *", true},
		{"23:59", "0 59 23 * * *", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := buildDailySpec(tt.clock)
		if (err == nil) != tt.ok {
			t.Errorf("buildDailySpec(%q) error = %v, want ok=%v", tt.clock, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tt.clock, got, tt.want)
		}
	}
}

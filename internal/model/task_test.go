package model

import (
	"testing"
	"time"
)

func TestRoleDerivation(t *testing.T) {
	parent := uint(4)
	tests := []struct {
		name string
		task Task
		want Role
	}{
		{"standalone", Task{}, RoleStandalone},
		{"template", Task{IsRecurring: true}, RoleTemplate},
		{"instance", Task{ParentTaskID: &parent}, RoleInstance},
		// An instance is an instance even if a stray recurring flag is set.
		{"instance wins over flag", Task{IsRecurring: true, ParentTaskID: &parent}, RoleInstance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Role(); got != tt.want {
				t.Errorf("Role() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueAt(t *testing.T) {
	task := Task{DueDate: "2025-03-12", DueTime: "14:30"}
	at, ok := task.DueAt()
	if !ok {
		t.Fatal("expected a due moment")
	}
	want := time.Date(2025, 3, 12, 14, 30, 0, 0, time.Local)
	if !at.Equal(want) {
		t.Errorf("DueAt = %v, want %v", at, want)
	}

	task = Task{DueDate: "2025-03-12"}
	at, ok = task.DueAt()
	if !ok || at.Hour() != 0 || at.Minute() != 0 {
		t.Errorf("missing due time should mean midnight, got (%v, %v)", at, ok)
	}

	task = Task{}
	if _, ok := task.DueAt(); ok {
		t.Error("no due date should report false")
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate(""); ok {
		t.Error("empty date must not parse")
	}
	if _, ok := ParseDate("12.03.2025"); ok {
		t.Error("wrong layout must not parse")
	}
	d, ok := ParseDate("2025-03-12")
	if !ok || FormatDate(d) != "2025-03-12" {
		t.Errorf("round trip failed: (%v, %v)", d, ok)
	}
}

func TestParseClock(t *testing.T) {
	h, m, ok := ParseClock("09:45")
	if !ok || h != 9 || m != 45 {
		t.Errorf("ParseClock = (%d, %d, %v)", h, m, ok)
	}
	if _, _, ok := ParseClock("9:45pm"); ok {
		t.Error("invalid clock must not parse")
	}
}

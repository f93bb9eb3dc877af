package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/avsivakumar/tada/internal/model"
)

var exportNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

func sampleData() ([]model.Task, []model.Note) {
	tasks := []model.Task{
		{
			ID:                7,
			Title:             `buy "good" coffee`,
			Description:       "beans, not ground",
			Priority:          "high",
			Tags:              []string{"errand", "food"},
			DueDate:           "2025-03-14",
			Active:            true,
			IsRecurring:       true,
			RecurrencePattern: model.PatternWeekly,
			LastGeneratedDate: "2025-03-07",
		},
	}
	notes := []model.Note{
		{ID: 3, Title: "meeting notes", Content: "line one\nline two", Topic: "work", Tags: []string{"q1"}, Active: true},
	}
	return tasks, notes
}

func TestJSONRoundTrip(t *testing.T) {
	tasks, notes := sampleData()

	data, err := ToJSON(tasks, notes, exportNow)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	backup, err := ParseBackup(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if backup.Version != Version {
		t.Errorf("version = %s, want %s", backup.Version, Version)
	}
	if len(backup.Tasks) != 1 || len(backup.Notes) != 1 {
		t.Fatalf("round trip lost records: %d tasks, %d notes", len(backup.Tasks), len(backup.Notes))
	}

	got := backup.Tasks[0]
	if got.ID != 7 || got.Title != tasks[0].Title || got.LastGeneratedDate != "2025-03-07" {
		t.Errorf("task did not survive round trip: %+v", got)
	}
	if !got.IsRecurring || got.RecurrencePattern != model.PatternWeekly {
		t.Errorf("recurrence state lost: %+v", got)
	}
}

func TestJSONEnvelopeShape(t *testing.T) {
	tasks, notes := sampleData()
	data, err := ToJSON(tasks, notes, exportNow)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	for _, key := range []string{"tasks", "notes", "exportDate", "version"} {
		if _, ok := envelope[key]; !ok {
			t.Errorf("envelope missing %q", key)
		}
	}
}

func TestCSVSectionsAndQuoting(t *testing.T) {
	tasks, notes := sampleData()

	data, err := ToCSV(tasks, notes)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "TASKS\n") {
		t.Errorf("output must start with the TASKS section, got %q", out[:20])
	}
	if !strings.Contains(out, "\nNOTES\n") {
		t.Error("output must contain a NOTES section")
	}
	// The embedded quotes must be csv-escaped by doubling.
	if !strings.Contains(out, `"buy ""good"" coffee"`) {
		t.Error("quoted title was not escaped")
	}
}

func TestParseBackupRejectsMalformed(t *testing.T) {
	if _, err := ParseBackup(strings.NewReader("not json at all")); err == nil {
		t.Error("malformed input must be rejected")
	}
	if _, err := ParseBackup(strings.NewReader(`{"tasks": "wrong type"}`)); err == nil {
		t.Error("wrong field type must be rejected")
	}
}

func TestParseBackupEmptyArrays(t *testing.T) {
	backup, err := ParseBackup(strings.NewReader(`{"tasks": [], "notes": [], "version": "1.0"}`))
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if len(backup.Tasks) != 0 || len(backup.Notes) != 0 {
		t.Errorf("expected empty backup, got %+v", backup)
	}
}

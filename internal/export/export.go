// Package export serializes tasks and notes into backup files and parses
// them back. Parsing is strictly separated from persistence so a malformed
// file is rejected before any record is written.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/avsivakumar/tada/internal/model"
)

// Version identifies the backup file format.
const Version = "1.0"

// Backup is the JSON backup envelope.
type Backup struct {
	Tasks      []model.Task `json:"tasks"`
	Notes      []model.Note `json:"notes"`
	ExportDate time.Time    `json:"exportDate"`
	Version    string       `json:"version"`
}

// ToJSON renders a full backup as indented JSON.
func ToJSON(tasks []model.Task, notes []model.Note, now time.Time) ([]byte, error) {
	b := Backup{
		Tasks:      tasks,
		Notes:      notes,
		ExportDate: now,
		Version:    Version,
	}
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return out, nil
}

// ToCSV renders tasks and notes as two labeled CSV sections separated by a
// blank line. Field quoting is handled by the csv writer.
func ToCSV(tasks []model.Task, notes []model.Note) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"TASKS"})
	w.Write([]string{"ID", "Title", "Description", "Priority", "Tags", "Due Date", "Due Time", "Completed", "Completion Date", "Created At"})
	for i := range tasks {
		t := &tasks[i]
		w.Write([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Title,
			t.Description,
			t.Priority,
			strings.Join(t.Tags, ", "),
			t.DueDate,
			t.DueTime,
			strconv.FormatBool(t.Completed),
			t.CompletionDate,
			t.CreatedAt.Format(model.DateLayout),
		})
	}

	w.Write([]string{})
	w.Write([]string{"NOTES"})
	w.Write([]string{"ID", "Title", "Content", "Topic", "Tags", "Created At", "Updated At"})
	for i := range notes {
		n := &notes[i]
		w.Write([]string{
			strconv.FormatUint(uint64(n.ID), 10),
			n.Title,
			n.Content,
			n.Topic,
			strings.Join(n.Tags, ", "),
			n.CreatedAt.Format(model.DateLayout),
			n.UpdatedAt.Format(model.DateLayout),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseBackup reads and validates a JSON backup in full. Nothing is
// persisted here; callers insert records only after a successful parse.
func ParseBackup(r io.Reader) (*Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	return &b, nil
}

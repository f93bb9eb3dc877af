package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/repository"
)

func newTestBackupService(t *testing.T) (*BackupService, *repository.TaskRepository, *repository.NoteRepository) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		t.Cleanup(func() { sqlDB.Close() })
	}
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	return NewBackupService(taskRepo, noteRepo), taskRepo, noteRepo
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	src, srcTasks, srcNotes := newTestBackupService(t)
	ctx := context.Background()

	tpl := &model.Task{
		Title:             "weekly review",
		IsRecurring:       true,
		RecurrencePattern: model.PatternWeekly,
		LastGeneratedDate: "2025-03-05",
		Active:            true,
	}
	if err := srcTasks.Create(ctx, tpl); err != nil {
		t.Fatalf("create template: %v", err)
	}
	parentID := tpl.ID
	inst := &model.Task{Title: "weekly review", DueDate: "2025-03-05", ParentTaskID: &parentID, Active: true}
	if err := srcTasks.Create(ctx, inst); err != nil {
		t.Fatalf("create instance: %v", err)
	}
	if err := srcNotes.Create(ctx, &model.Note{Title: "scratch", Content: "x", Active: true}); err != nil {
		t.Fatalf("create note: %v", err)
	}

	data, err := src.ExportJSON(ctx, testNow)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst, dstTasks, _ := newTestBackupService(t)
	tasksAdded, notesAdded, err := dst.Import(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if tasksAdded != 2 || notesAdded != 1 {
		t.Errorf("imported (%d, %d), want (2, 1)", tasksAdded, notesAdded)
	}

	// The template keeps its watermark and its instance link, so
	// materialization resumes where the backup left off.
	imported, err := dstTasks.FindByID(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("find imported template: %v", err)
	}
	if imported.LastGeneratedDate != "2025-03-05" {
		t.Errorf("watermark = %s, want 2025-03-05", imported.LastGeneratedDate)
	}
	instances, err := dstTasks.ListInstances(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("list instances: %v", err)
	}
	if len(instances) != 1 {
		t.Errorf("instances = %d, want 1", len(instances))
	}
}

func TestImportRejectsMalformedWithoutWrites(t *testing.T) {
	svc, taskRepo, _ := newTestBackupService(t)
	ctx := context.Background()

	if _, _, err := svc.Import(ctx, strings.NewReader("{broken")); err == nil {
		t.Fatal("malformed backup must be rejected")
	}

	tasks, err := taskRepo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("rejected import wrote %d task(s)", len(tasks))
	}
}

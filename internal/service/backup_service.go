package service

import (
	"context"
	"io"
	"time"

	"github.com/avsivakumar/tada/internal/export"
	"github.com/avsivakumar/tada/internal/repository"
)

// BackupService moves whole snapshots across the export/import boundary.
type BackupService struct {
	taskRepo *repository.TaskRepository
	noteRepo *repository.NoteRepository
}

func NewBackupService(taskRepo *repository.TaskRepository, noteRepo *repository.NoteRepository) *BackupService {
	return &BackupService{taskRepo: taskRepo, noteRepo: noteRepo}
}

func (s *BackupService) ExportJSON(ctx context.Context, now time.Time) ([]byte, error) {
	tasks, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return export.ToJSON(tasks, notes, now)
}

func (s *BackupService) ExportCSV(ctx context.Context) ([]byte, error) {
	tasks, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return export.ToCSV(tasks, notes)
}

// Import parses the whole file first, then feeds every record through the
// regular create path. Records keep their exported IDs so instance→template
// links survive and imported templates resume from their stored watermark.
// A parse failure writes nothing.
func (s *BackupService) Import(ctx context.Context, r io.Reader) (tasksAdded, notesAdded int, err error) {
	backup, err := export.ParseBackup(r)
	if err != nil {
		return 0, 0, err
	}

	for i := range backup.Tasks {
		task := backup.Tasks[i]
		if err := s.taskRepo.Create(ctx, &task); err != nil {
			return tasksAdded, notesAdded, err
		}
		tasksAdded++
	}
	for i := range backup.Notes {
		note := backup.Notes[i]
		if err := s.noteRepo.Create(ctx, &note); err != nil {
			return tasksAdded, notesAdded, err
		}
		notesAdded++
	}
	return tasksAdded, notesAdded, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/repository"
)

// NoteInput represents data required to create or replace a note.
type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Topic   string   `json:"topic"`
	Tags    []string `json:"tags"`
}

// NoteService provides helpers around notes.
type NoteService struct {
	noteRepo *repository.NoteRepository
}

func NewNoteService(noteRepo *repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

func (s *NoteService) CreateNote(ctx context.Context, input NoteInput) (*model.Note, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	note := &model.Note{
		Title:   input.Title,
		Content: input.Content,
		Topic:   input.Topic,
		Tags:    input.Tags,
		Active:  true,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ReplaceNote(ctx context.Context, id uint, input NoteInput) (*model.Note, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Title = input.Title
	note.Content = input.Content
	note.Topic = input.Topic
	note.Tags = input.Tags
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.noteRepo.ListActive(ctx)
}

func (s *NoteService) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	return s.noteRepo.Search(ctx, query)
}

func (s *NoteService) DeleteNote(ctx context.Context, id uint) error {
	return s.noteRepo.SoftDelete(ctx, id)
}

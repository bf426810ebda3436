package application

import (
	"context"
	"errors"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
)

// NoteService is plain CRUD over project notes. Authorization happens at the
// route gate; every lookup is still scoped by project id so a note can never
// be reached through another project.
type NoteService struct {
	Notes repo.NoteRepository
}

func NewNoteService(notes repo.NoteRepository) *NoteService {
	return &NoteService{Notes: notes}
}

type NoteInput struct {
	Title   string
	Content string
}

func (s *NoteService) Create(ctx context.Context, projectID, accountID string, in NoteInput) (*entity.Note, error) {
	n := &entity.Note{
		ProjectID: projectID,
		CreatedBy: accountID,
		Title:     in.Title,
		Content:   in.Content,
	}
	if err := s.Notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Get(ctx context.Context, projectID, noteID string) (*entity.Note, error) {
	n, err := s.Notes.GetByID(ctx, projectID, noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NoteService) List(ctx context.Context, projectID string) ([]*entity.Note, error) {
	return s.Notes.ListForProject(ctx, projectID)
}

func (s *NoteService) Update(ctx context.Context, projectID, noteID string, in NoteInput) (*entity.Note, error) {
	n, err := s.Get(ctx, projectID, noteID)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		n.Title = in.Title
	}
	if in.Content != "" {
		n.Content = in.Content
	}
	if err := s.Notes.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, projectID, noteID string) error {
	if err := s.Notes.Delete(ctx, projectID, noteID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

package repository

import (
	"context"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
)

// NoteRepository defines persistence for project notes.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, projectID, noteID string) (*entity.Note, error)
	ListForProject(ctx context.Context, projectID string) ([]*entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, projectID, noteID string) error
}

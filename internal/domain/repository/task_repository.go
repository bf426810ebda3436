package repository

import (
	"context"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
)

// TaskRepository defines persistence for project tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, projectID, taskID string) (*entity.Task, error)
	ListForProject(ctx context.Context, projectID string) ([]*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, projectID, taskID string) error
}

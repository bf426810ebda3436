package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, status, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, t.ProjectID, t.Title, t.Description, t.Status, t.AssignedTo, t.CreatedBy).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, projectID, taskID string) (*entity.Task, error) {
	t := &entity.Task{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, project_id, title, description, status, assigned_to, created_by, created_at, updated_at
		FROM tasks
		WHERE project_id = $1 AND id = $2
	`, projectID, taskID).Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) ListForProject(ctx context.Context, projectID string) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, title, description, status, assigned_to, created_by, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Task
	for rows.Next() {
		t := &entity.Task{}
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, assigned_to = $4, updated_at = now()
		WHERE project_id = $5 AND id = $6
	`, t.Title, t.Description, t.Status, t.AssignedTo, t.ProjectID, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, projectID, taskID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE project_id = $1 AND id = $2
	`, projectID, taskID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/domain/repository"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO notes (project_id, created_by, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, n.ProjectID, n.CreatedBy, n.Title, n.Content).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NoteRepository) GetByID(ctx context.Context, projectID, noteID string) (*entity.Note, error) {
	n := &entity.Note{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, project_id, created_by, title, content, created_at, updated_at
		FROM notes
		WHERE project_id = $1 AND id = $2
	`, projectID, noteID).Scan(&n.ID, &n.ProjectID, &n.CreatedBy, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) ListForProject(ctx context.Context, projectID string) ([]*entity.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, created_by, title, content, created_at, updated_at
		FROM notes
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Note
	for rows.Next() {
		n := &entity.Note{}
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.CreatedBy, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE notes
		SET title = $1, content = $2, updated_at = now()
		WHERE project_id = $3 AND id = $4
	`, n.Title, n.Content, n.ProjectID, n.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, projectID, noteID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM notes
		WHERE project_id = $1 AND id = $2
	`, projectID, noteID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NoteRepository = (*NoteRepository)(nil)

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/domain/repository"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `
	p.id, p.name, p.description, p.created_by, p.status, p.priority, p.due_date,
	(SELECT count(*) FROM project_members pm WHERE pm.project_id = p.id),
	p.created_at, p.updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.Status, &p.Priority, &p.DueDate,
		&p.MemberCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts the project and its owner membership in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project, ownerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO projects (name, description, created_by, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.CreatedBy, p.Status, p.Priority, p.DueDate)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO project_members (project_id, account_id, role)
		VALUES ($1, $2, $3)
	`, p.ID, ownerID, entity.RoleOwner); err != nil {
		return err
	}
	p.MemberCount = 1

	return tx.Commit(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		WHERE p.id = $1
	`, id))
}

func (r *ProjectRepository) ListForAccount(ctx context.Context, accountID string) ([]*entity.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		JOIN project_members pm ON pm.project_id = p.id
		WHERE pm.account_id = $1
		ORDER BY p.created_at DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET name = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = now()
		WHERE id = $6
	`, p.Name, p.Description, p.Status, p.Priority, p.DueDate, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetMembership keys the lookup by both project and account. The composite
// predicate is load-bearing: either key alone can resolve to an unrelated
// member's role.
func (r *ProjectRepository) GetMembership(ctx context.Context, projectID, accountID string) (*entity.Membership, error) {
	m := &entity.Membership{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, project_id, account_id, role, created_at, updated_at
		FROM project_members
		WHERE project_id = $1 AND account_id = $2
	`, projectID, accountID).Scan(&m.ID, &m.ProjectID, &m.AccountID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID string) ([]*entity.MemberInfo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pm.id, pm.project_id, pm.account_id, pm.role, pm.created_at, pm.updated_at,
		       a.email, a.handle, a.name
		FROM project_members pm
		JOIN accounts a ON a.id = pm.account_id
		WHERE pm.project_id = $1
		ORDER BY pm.created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.MemberInfo
	for rows.Next() {
		mi := &entity.MemberInfo{}
		if err := rows.Scan(
			&mi.ID, &mi.ProjectID, &mi.AccountID, &mi.Role, &mi.CreatedAt, &mi.UpdatedAt,
			&mi.Email, &mi.Handle, &mi.Name,
		); err != nil {
			return nil, err
		}
		out = append(out, mi)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, accountID string, role entity.Role) (*entity.Membership, error) {
	m := &entity.Membership{ProjectID: projectID, AccountID: accountID, Role: role}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO project_members (project_id, account_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, projectID, accountID, role).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return m, nil
}

func (r *ProjectRepository) UpdateMemberRole(ctx context.Context, projectID, accountID string, role entity.Role) (*entity.Membership, error) {
	m := &entity.Membership{ProjectID: projectID, AccountID: accountID, Role: role}
	err := r.pool.QueryRow(ctx, `
		UPDATE project_members
		SET role = $1, updated_at = now()
		WHERE project_id = $2 AND account_id = $3
		RETURNING id, created_at, updated_at
	`, role, projectID, accountID).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, accountID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM project_members
		WHERE project_id = $1 AND account_id = $2
	`, projectID, accountID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

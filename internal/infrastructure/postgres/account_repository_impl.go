package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/domain/repository"
)

// uniqueViolation is the postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `
	id, email, handle, name, password_hash, role, email_verified,
	verify_ticket_hash, verify_ticket_expires_at,
	reset_ticket_hash, reset_ticket_expires_at,
	refresh_credential, refresh_generation,
	created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	err := row.Scan(
		&a.ID, &a.Email, &a.Handle, &a.Name, &a.Password, &a.Role, &a.EmailVerified,
		&a.VerifyTicketHash, &a.VerifyTicketExpiresAt,
		&a.ResetTicketHash, &a.ResetTicketExpiresAt,
		&a.RefreshCredential, &a.RefreshGeneration,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, handle, name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Handle, a.Name, a.Password, a.Role)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = $1
	`, email))
}

func (r *AccountRepository) GetByHandle(ctx context.Context, handle string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE handle = $1
	`, handle))
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, a *entity.Account) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, handle = $2, updated_at = now()
		WHERE id = $3
	`, a.Name, a.Handle, a.ID)
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

func (r *AccountRepository) SetVerifyTicket(ctx context.Context, accountID, digest string, expiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET verify_ticket_hash = $1, verify_ticket_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, digest, expiresAt, accountID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ConsumeVerifyTicket is a single conditional update: only the row whose
// stored digest matches and whose expiry is in the future is touched, and the
// ticket pair is cleared in the same statement, so concurrent redemptions
// cannot both succeed.
func (r *AccountRepository) ConsumeVerifyTicket(ctx context.Context, digest string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET email_verified = TRUE,
		    verify_ticket_hash = NULL,
		    verify_ticket_expires_at = NULL,
		    updated_at = now()
		WHERE verify_ticket_hash = $1 AND verify_ticket_expires_at > now()
		RETURNING `+accountColumns+`
	`, digest))
}

func (r *AccountRepository) SetResetTicket(ctx context.Context, accountID, digest string, expiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET reset_ticket_hash = $1, reset_ticket_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, digest, expiresAt, accountID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) ConsumeResetTicket(ctx context.Context, digest, passwordHash string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET password_hash = $2,
		    reset_ticket_hash = NULL,
		    reset_ticket_expires_at = NULL,
		    updated_at = now()
		WHERE reset_ticket_hash = $1 AND reset_ticket_expires_at > now()
		RETURNING `+accountColumns+`
	`, digest, passwordHash))
}

func (r *AccountRepository) InstallRefreshCredential(ctx context.Context, accountID, credential string) (int64, error) {
	var gen int64
	err := r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET refresh_credential = $1,
		    refresh_generation = refresh_generation + 1,
		    updated_at = now()
		WHERE id = $2
		RETURNING refresh_generation
	`, credential, accountID).Scan(&gen)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return gen, nil
}

// RotateRefreshCredential swaps the stored credential only while it still
// equals the presented one. A raced or forged presentation matches zero rows.
func (r *AccountRepository) RotateRefreshCredential(ctx context.Context, accountID, presented, next string) (int64, error) {
	var gen int64
	err := r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET refresh_credential = $1,
		    refresh_generation = refresh_generation + 1,
		    updated_at = now()
		WHERE id = $2 AND refresh_credential = $3
		RETURNING refresh_generation
	`, next, accountID, presented).Scan(&gen)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return gen, nil
}

func (r *AccountRepository) ClearRefreshCredential(ctx context.Context, accountID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET refresh_credential = '', updated_at = now()
		WHERE id = $1
	`, accountID)
	return err
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

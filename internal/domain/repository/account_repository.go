package repository

import (
	"context"
	"time"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
)

// AccountRepository defines persistence for accounts, including the
// state-changing credential operations the auth flows depend on.
//
// ConsumeVerifyTicket, ConsumeResetTicket and RotateRefreshCredential must be
// atomic: a single conditional write keyed on the current stored state, so
// that of two concurrent callers exactly one succeeds and the other observes
// ErrNotFound.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Account, error)
	UpdateProfile(ctx context.Context, a *entity.Account) error

	// SetVerifyTicket stores the verification ticket digest/expiry pair.
	SetVerifyTicket(ctx context.Context, accountID, digest string, expiresAt time.Time) error
	// ConsumeVerifyTicket marks the matching, unexpired account verified and
	// clears the ticket pair in the same statement. ErrNotFound on no match.
	ConsumeVerifyTicket(ctx context.Context, digest string) (*entity.Account, error)

	// SetResetTicket stores the password-reset ticket digest/expiry pair.
	SetResetTicket(ctx context.Context, accountID, digest string, expiresAt time.Time) error
	// ConsumeResetTicket installs the new password hash on the matching,
	// unexpired account and clears the ticket pair. ErrNotFound on no match.
	ConsumeResetTicket(ctx context.Context, digest, passwordHash string) (*entity.Account, error)

	// InstallRefreshCredential overwrites the stored refresh credential
	// unconditionally (login) and returns the new generation.
	InstallRefreshCredential(ctx context.Context, accountID, credential string) (int64, error)
	// RotateRefreshCredential replaces the stored refresh credential only if
	// it still equals presented, returning the new generation. ErrNotFound
	// when the stored value differs (already rotated, or forged/stale input).
	RotateRefreshCredential(ctx context.Context, accountID, presented, next string) (int64, error)
	// ClearRefreshCredential removes the stored refresh credential (logout,
	// or defensive revocation after suspected reuse).
	ClearRefreshCredential(ctx context.Context, accountID string) error
}

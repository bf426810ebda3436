package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
	"github.com/taskcamp/taskcamp/pkg/helpers"
)

// SessionService issues, refreshes and revokes the session credential pair.
// The access token is stateless; the refresh token's current value lives on
// the account row, one live value per account. Issuing always overwrites the
// prior value: a login on a new device signs the previous session out.
type SessionService struct {
	Repo   repo.AccountRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewSessionService(r repo.AccountRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *SessionService {
	return &SessionService{Repo: r, JWT: jwt, Logger: logger}
}

// Issue mints a new access+refresh pair for the account and persists the
// refresh value, invalidating whatever was stored before.
func (s *SessionService) Issue(ctx context.Context, a *entity.Account) (TokenPair, error) {
	gen := a.RefreshGeneration + 1
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, gen)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, gen)
	if err != nil {
		return TokenPair{}, err
	}
	if _, err := s.Repo.InstallRefreshCredential(ctx, a.ID, refresh); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("install refresh credential failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates a presented refresh credential and rotates the pair.
//
// The credential must verify on its own (signature, expiry) and must equal
// the account's stored value byte for byte. A mismatch means the stored value
// was already rotated or the presented one is forged, not a routine expiry;
// the stored credential is revoked so the account is forced to log in again.
func (s *SessionService) Refresh(ctx context.Context, presented string) (TokenPair, *entity.Account, error) {
	claims, err := s.JWT.ParseRefreshToken(presented)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return TokenPair{}, nil, ErrCredentialExpired
		}
		return TokenPair{}, nil, ErrCredentialInvalid
	}

	a, err := s.Repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, nil, ErrCredentialInvalid
		}
		return TokenPair{}, nil, err
	}

	gen := a.RefreshGeneration + 1
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, gen)
	if err != nil {
		return TokenPair{}, nil, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, gen)
	if err != nil {
		return TokenPair{}, nil, err
	}

	// Conditional rotation: only succeeds if the stored value still equals the
	// presented one, so two concurrent refreshes cannot both win.
	newGen, err := s.Repo.RotateRefreshCredential(ctx, a.ID, presented, refresh)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, nil, s.suspectReuse(ctx, a)
		}
		return TokenPair{}, nil, err
	}
	a.RefreshGeneration = newGen
	a.RefreshCredential = refresh

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, a, nil
}

// Revoke clears the stored refresh credential so no future refresh succeeds.
func (s *SessionService) Revoke(ctx context.Context, accountID string) error {
	return s.Repo.ClearRefreshCredential(ctx, accountID)
}

func (s *SessionService) suspectReuse(ctx context.Context, a *entity.Account) error {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"account_id": a.ID,
			"generation": a.RefreshGeneration,
		}).Warn("refresh credential mismatch, revoking current session")
	}
	if err := s.Repo.ClearRefreshCredential(ctx, a.ID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Error("defensive revocation failed")
	}
	return ErrCredentialReuseSuspected
}

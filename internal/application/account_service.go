package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
	"github.com/taskcamp/taskcamp/pkg/helpers"
)

// AccountService covers registration, login checks, the two ticketed flows
// (email verification, password reset) and profile reads/updates.
type AccountService struct {
	Repo            repo.AccountRepository
	Logger          *logrus.Logger
	VerifyTicketTTL time.Duration
	ResetTicketTTL  time.Duration
	ES              *elasticsearch.Client
	ESAccountsIndex string
}

func NewAccountService(r repo.AccountRepository, logger *logrus.Logger, verifyTTL, resetTTL time.Duration, es *elasticsearch.Client, esIndex string) *AccountService {
	return &AccountService{
		Repo:            r,
		Logger:          logger,
		VerifyTicketTTL: verifyTTL,
		ResetTicketTTL:  resetTTL,
		ES:              es,
		ESAccountsIndex: esIndex,
	}
}

type RegisterInput struct {
	Email    string
	Handle   string
	Name     string
	Password string
}

// Register creates an unverified account and issues its verification ticket.
// The returned raw ticket value exists only for out-of-band delivery.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.Account, string, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	a := &entity.Account{
		Email:    strings.ToLower(in.Email),
		Handle:   strings.ToLower(in.Handle),
		Name:     in.Name,
		Password: hash,
		Role:     entity.GlobalRoleStandard,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, "", ErrConflict
		}
		return nil, "", err
	}

	raw, err := s.issueVerifyTicket(ctx, a)
	if err != nil {
		return nil, "", err
	}
	_ = s.indexAccount(ctx, a)
	return a, raw, nil
}

// Authenticate validates email/password without issuing tokens. Unknown email
// and wrong password are indistinguishable by design.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !a.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	return a, nil
}

// VerifyEmail redeems a verification ticket. Wrong value, expired and already
// redeemed all collapse into ErrTicketInvalid.
func (s *AccountService) VerifyEmail(ctx context.Context, rawTicket string) (*entity.Account, error) {
	a, err := s.Repo.ConsumeVerifyTicket(ctx, helpers.HashTicket(rawTicket))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTicketInvalid
		}
		return nil, err
	}
	return a, nil
}

// ResendVerification issues a fresh verification ticket for an unverified
// account, replacing any outstanding one.
func (s *AccountService) ResendVerification(ctx context.Context, email string) (*entity.Account, string, error) {
	a, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if a.EmailVerified {
		return nil, "", ErrConflict
	}
	raw, err := s.issueVerifyTicket(ctx, a)
	if err != nil {
		return nil, "", err
	}
	return a, raw, nil
}

// ForgotPassword issues a password-reset ticket. The caller is responsible
// for not revealing whether the email exists.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) (*entity.Account, string, error) {
	a, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	raw, digest, err := helpers.GenerateTicket()
	if err != nil {
		return nil, "", err
	}
	if err := s.Repo.SetResetTicket(ctx, a.ID, digest, time.Now().Add(s.ResetTicketTTL)); err != nil {
		return nil, "", err
	}
	return a, raw, nil
}

// ResetPassword redeems a reset ticket and installs the new password hash.
// The account's refresh credential is revoked so existing sessions die with
// the old password.
func (s *AccountService) ResetPassword(ctx context.Context, rawTicket, newPassword string) (*entity.Account, error) {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	a, err := s.Repo.ConsumeResetTicket(ctx, helpers.HashTicket(rawTicket), hash)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTicketInvalid
		}
		return nil, err
	}
	if err := s.Repo.ClearRefreshCredential(ctx, a.ID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("revoke after password reset failed")
	}
	return a, nil
}

func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

type UpdateProfileInput struct {
	Name   string
	Handle string
}

func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, in UpdateProfileInput) (*entity.Account, error) {
	a, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Handle != "" {
		a.Handle = strings.ToLower(in.Handle)
	}
	if err := s.Repo.UpdateProfile(ctx, a); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}
	_ = s.indexAccount(ctx, a)
	return a, nil
}

func (s *AccountService) issueVerifyTicket(ctx context.Context, a *entity.Account) (string, error) {
	raw, digest, err := helpers.GenerateTicket()
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetVerifyTicket(ctx, a.ID, digest, time.Now().Add(s.VerifyTicketTTL)); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *AccountService) indexAccount(ctx context.Context, a *entity.Account) error {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":     a.ID,
		"email":  a.Email,
		"handle": a.Handle,
		"name":   a.Name,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
	}
	return nil
}

// SearchAccounts performs a multi_match search on email, handle and name.
// Used by the add-member flow to find accounts to invite.
func (s *AccountService) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "handle^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESAccountsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

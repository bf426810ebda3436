package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func seedAccount(t *testing.T, repo *fakeAccountRepo) *entity.Account {
	t.Helper()
	a := &entity.Account{
		Email:         "alice@example.com",
		Handle:        "alice",
		Name:          "Alice",
		Password:      "irrelevant",
		Role:          entity.GlobalRoleStandard,
		EmailVerified: true,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func newSessionFixture(t *testing.T) (*SessionService, *fakeAccountRepo, *entity.Account) {
	t.Helper()
	repo := newFakeAccountRepo()
	a := seedAccount(t, repo)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return NewSessionService(repo, jwt, testLogger()), repo, a
}

func TestIssueInstallsCredential(t *testing.T) {
	svc, repo, a := newSessionFixture(t)

	pair, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshCredential)
	assert.Equal(t, int64(1), stored.RefreshGeneration)
}

func TestIssueOverwritesPriorSession(t *testing.T) {
	svc, repo, a := newSessionFixture(t)

	first, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)

	// Only the newest refresh credential survives.
	_, _, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrCredentialReuseSuspected)

	// Defensive revocation killed the second session too.
	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshCredential)
	_ = second
}

func TestRefreshRotates(t *testing.T) {
	svc, repo, a := newSessionFixture(t)

	pair, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)

	rotated, acct, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, a.ID, acct.ID)
	assert.Equal(t, int64(2), acct.RefreshGeneration)

	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, rotated.RefreshToken, stored.RefreshCredential)
}

func TestRefreshReuseRevokes(t *testing.T) {
	svc, repo, a := newSessionFixture(t)

	pair, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)

	rotated, _, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	// Presenting the old credential again is treated as theft: the live
	// session is revoked, not just the request rejected.
	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrCredentialReuseSuspected)

	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshCredential)

	// The rotated credential is dead too.
	_, _, err = svc.Refresh(context.Background(), rotated.RefreshToken)
	assert.ErrorIs(t, err, ErrCredentialReuseSuspected)
}

func TestRefreshExpired(t *testing.T) {
	repo := newFakeAccountRepo()
	a := seedAccount(t, repo)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, -time.Minute)
	svc := NewSessionService(repo, jwt, testLogger())

	pair, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrCredentialExpired)
}

func TestRefreshGarbage(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrCredentialInvalid)
}

func TestRefreshAfterRevoke(t *testing.T) {
	svc, _, a := newSessionFixture(t)

	pair, err := svc.Issue(context.Background(), a)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(context.Background(), a.ID))

	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrCredentialReuseSuspected)
}

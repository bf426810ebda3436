package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskcamp/taskcamp/pkg/helpers"
)

func newAccountFixture(t *testing.T) (*AccountService, *fakeAccountRepo) {
	t.Helper()
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, testLogger(), 24*time.Hour, time.Hour, nil, "")
	return svc, repo
}

func register(t *testing.T, svc *AccountService) (raw string) {
	t.Helper()
	_, raw, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Bob@Example.com",
		Handle:   "Bob",
		Name:     "Bob",
		Password: "supersecret",
	})
	require.NoError(t, err)
	return raw
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, repo := newAccountFixture(t)
	register(t, svc)

	a, err := repo.GetByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", a.Handle)
	assert.NotEqual(t, "supersecret", a.Password)
	assert.True(t, helpers.CompareHashAndPassword(a.Password, "supersecret"))
	assert.False(t, a.EmailVerified)
	require.NotNil(t, a.VerifyTicketHash)
	require.NotNil(t, a.VerifyTicketExpiresAt)
}

func TestRegisterConflict(t *testing.T) {
	svc, _ := newAccountFixture(t)
	register(t, svc)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Handle:   "other",
		Name:     "Other",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVerifyEmailSingleUse(t *testing.T) {
	svc, repo := newAccountFixture(t)
	raw := register(t, svc)

	a, err := svc.VerifyEmail(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, a.EmailVerified)

	stored, err := repo.GetByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, stored.VerifyTicketHash)

	// Second redemption is indistinguishable from a wrong ticket.
	_, err = svc.VerifyEmail(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTicketInvalid)
}

func TestVerifyEmailWrongTicket(t *testing.T) {
	svc, _ := newAccountFixture(t)
	register(t, svc)

	_, err := svc.VerifyEmail(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrTicketInvalid)
}

func TestVerifyEmailExpired(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, testLogger(), -time.Minute, time.Hour, nil, "")

	_, raw, err := svc.Register(context.Background(), RegisterInput{
		Email: "bob@example.com", Handle: "bob", Name: "Bob", Password: "supersecret",
	})
	require.NoError(t, err)

	// Expired and wrong tickets produce the same error.
	_, err = svc.VerifyEmail(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTicketInvalid)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAccountFixture(t)
	raw := register(t, svc)

	// Unverified account cannot log in even with the right password.
	_, err := svc.Authenticate(context.Background(), "bob@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	_, err = svc.VerifyEmail(context.Background(), raw)
	require.NoError(t, err)

	a, err := svc.Authenticate(context.Background(), "Bob@Example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", a.Email)

	// Unknown email and wrong password collapse into one error.
	_, err = svc.Authenticate(context.Background(), "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResendVerification(t *testing.T) {
	svc, _ := newAccountFixture(t)
	first := register(t, svc)

	_, second, err := svc.ResendVerification(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// The replaced ticket is dead, the fresh one redeems.
	_, err = svc.VerifyEmail(context.Background(), first)
	assert.ErrorIs(t, err, ErrTicketInvalid)
	_, err = svc.VerifyEmail(context.Background(), second)
	require.NoError(t, err)

	// Already verified: no new ticket.
	_, _, err = svc.ResendVerification(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repo := newAccountFixture(t)
	raw := register(t, svc)
	_, err := svc.VerifyEmail(context.Background(), raw)
	require.NoError(t, err)

	a, _ := repo.GetByEmail(context.Background(), "bob@example.com")
	_, err = repo.InstallRefreshCredential(context.Background(), a.ID, "live-session")
	require.NoError(t, err)

	_, resetRaw, err := svc.ForgotPassword(context.Background(), "bob@example.com")
	require.NoError(t, err)

	_, err = svc.ResetPassword(context.Background(), resetRaw, "newpassword1")
	require.NoError(t, err)

	// New password works, old one does not, and the live session died.
	_, err = svc.Authenticate(context.Background(), "bob@example.com", "newpassword1")
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), "bob@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, _ := repo.GetByID(context.Background(), a.ID)
	assert.Empty(t, stored.RefreshCredential)

	// Reset tickets are single-use too.
	_, err = svc.ResetPassword(context.Background(), resetRaw, "anotherpass1")
	assert.ErrorIs(t, err, ErrTicketInvalid)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newAccountFixture(t)

	_, _, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, repo := newAccountFixture(t)
	register(t, svc)
	a, _ := repo.GetByEmail(context.Background(), "bob@example.com")

	updated, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{Name: "Robert", Handle: "Rob"})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "rob", updated.Handle)
}

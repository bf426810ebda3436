package application

import "errors"

// Error taxonomy for the session and authorization core. All of these are
// terminal for the current request; nothing here is retried.
var (
	// ErrUnauthenticated means no credential was presented at all.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrCredentialExpired means the credential was valid but its embedded
	// expiry has passed.
	ErrCredentialExpired = errors.New("credential expired")
	// ErrCredentialInvalid means the credential is malformed or its signature
	// does not verify.
	ErrCredentialInvalid = errors.New("credential invalid")
	// ErrCredentialReuseSuspected means a refresh credential was presented
	// whose value does not match the account's current one: it was already
	// rotated, or it is forged. The current credential is revoked as a
	// defensive measure when this is raised.
	ErrCredentialReuseSuspected = errors.New("credential reuse suspected")
	// ErrTicketInvalid covers every ticket redemption failure: wrong value,
	// expired, or already redeemed. Deliberately one error so responses leak
	// nothing about which tickets ever existed.
	ErrTicketInvalid = errors.New("ticket invalid")
	// ErrInvalidCredentials covers login failures (unknown email or wrong
	// password, indistinguishable by design).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotVerified blocks login until the verification ticket is redeemed.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrNotAMember means the account has no membership in the project.
	ErrNotAMember = errors.New("not a project member")
	// ErrForbidden means the resolved role is outside the required set.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict covers duplicate email/handle at registration and
	// already-a-member at add time.
	ErrConflict = errors.New("conflict")
	// ErrNotFound covers missing projects, notes, tasks and accounts.
	ErrNotFound = errors.New("not found")
)

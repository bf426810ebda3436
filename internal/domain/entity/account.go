package entity

import (
	"time"
)

// GlobalRole is the coarse account-level role tag, distinct from project roles.
type GlobalRole string

const (
	GlobalRoleAdmin    GlobalRole = "admin"
	GlobalRoleStandard GlobalRole = "standard"
)

// Account is the aggregate root for the identity domain.
// Password holds a bcrypt hash, never plaintext.
//
// VerifyTicketHash/VerifyTicketExpiresAt and ResetTicketHash/ResetTicketExpiresAt
// are either both set or both nil; only the SHA-256 digest of a ticket is ever
// stored, the raw value is handed out once and forgotten.
//
// RefreshCredential holds the single currently valid refresh token for the
// account. RefreshGeneration increments on every rotation, which makes reuse
// detection observable in audit trails instead of implicit in an equality check.
type Account struct {
	ID       string
	Email    string
	Handle   string
	Name     string
	Password string
	Role     GlobalRole

	EmailVerified         bool
	VerifyTicketHash      *string
	VerifyTicketExpiresAt *time.Time
	ResetTicketHash       *string
	ResetTicketExpiresAt  *time.Time

	RefreshCredential string
	RefreshGeneration int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// Role is a project-scoped capability tag. The set is closed.
type Role string

const (
	RoleMember       Role = "member"
	RoleProjectAdmin Role = "project_admin"
	RoleOwner        Role = "owner"
)

// Valid reports whether r is one of the closed set of project roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleProjectAdmin, RoleOwner:
		return true
	}
	return false
}

// In reports whether r is contained in the given role set.
// Role checks are explicit set membership, never negated comparisons.
func (r Role) In(set ...Role) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}

// Membership binds one account to one project with exactly one role.
// At most one row exists per (account, project) pair.
type Membership struct {
	ID        string
	ProjectID string
	AccountID string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberInfo is a membership joined with account profile fields for listings.
type MemberInfo struct {
	Membership
	Email  string
	Handle string
	Name   string
}

package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
)

func newProjectFixture(t *testing.T) (*ProjectService, *fakeProjectRepo, *fakeAccountRepo) {
	t.Helper()
	projects := newFakeProjectRepo()
	accounts := newFakeAccountRepo()
	return NewProjectService(projects, accounts, testLogger()), projects, accounts
}

func seedMember(t *testing.T, accounts *fakeAccountRepo, email, handle string) *entity.Account {
	t.Helper()
	a := &entity.Account{Email: email, Handle: handle, Name: handle, Password: "x", EmailVerified: true}
	require.NoError(t, accounts.Create(context.Background(), a))
	return a
}

func TestCreateProjectMakesOwner(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")

	p, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectNotStarted, p.Status)
	assert.Equal(t, entity.PriorityMedium, p.Priority)

	role, err := svc.ResolveRole(context.Background(), p.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, role)
}

func TestResolveRoleCompositeKey(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")
	other := seedMember(t, accounts, "x@example.com", "other")

	p1, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)
	p2, err := svc.CreateProject(context.Background(), other.ID, ProjectInput{Name: "Beta"})
	require.NoError(t, err)

	// Membership in one project grants nothing in another.
	_, err = svc.ResolveRole(context.Background(), p2.ID, owner.ID)
	assert.ErrorIs(t, err, ErrNotAMember)
	_, err = svc.ResolveRole(context.Background(), p1.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestAuthorizeSetMembership(t *testing.T) {
	assert.NoError(t, Authorize(entity.RoleOwner, entity.RoleOwner))
	assert.NoError(t, Authorize(entity.RoleMember, entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner))
	assert.ErrorIs(t, Authorize(entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner), ErrForbidden)
	assert.ErrorIs(t, Authorize(entity.RoleProjectAdmin, entity.RoleOwner), ErrForbidden)
	// Empty role (non-member) never passes any set.
	assert.ErrorIs(t, Authorize("", entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner), ErrForbidden)
}

func TestRequireRoleHidesExistence(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")
	outsider := seedMember(t, accounts, "x@example.com", "outsider")

	p, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)

	// A non-member sees not-found, never forbidden.
	_, err = svc.RequireRole(context.Background(), p.ID, outsider.ID, entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner)
	assert.ErrorIs(t, err, ErrNotFound)

	// A member below the required set sees forbidden.
	_, err = svc.AddMember(context.Background(), p.ID, outsider.ID, entity.RoleMember)
	require.NoError(t, err)
	_, err = svc.RequireRole(context.Background(), p.ID, outsider.ID, entity.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddMember(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")
	member := seedMember(t, accounts, "m@example.com", "member")

	p, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)

	m, err := svc.AddMember(context.Background(), p.ID, member.ID, entity.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, m.Role)

	// Duplicate membership is a conflict, not a second row.
	_, err = svc.AddMember(context.Background(), p.ID, member.ID, entity.RoleMember)
	assert.ErrorIs(t, err, ErrConflict)

	// Owner role is never granted through AddMember.
	_, err = svc.AddMember(context.Background(), p.ID, member.ID, entity.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden)

	// Unknown target account.
	_, err = svc.AddMember(context.Background(), p.ID, "acct-missing", entity.RoleMember)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMemberRoleOwnerGuard(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")
	admin := seedMember(t, accounts, "a@example.com", "admin")

	p, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), p.ID, admin.ID, entity.RoleProjectAdmin)
	require.NoError(t, err)

	// A project_admin cannot demote the owner.
	_, err = svc.UpdateMemberRole(context.Background(), p.ID, owner.ID, entity.RoleMember, entity.RoleProjectAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	// The owner can promote a member.
	m, err := svc.UpdateMemberRole(context.Background(), p.ID, admin.ID, entity.RoleMember, entity.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, m.Role)
}

func TestRemoveMemberOwnerGuard(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")
	admin := seedMember(t, accounts, "a@example.com", "admin")

	p, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), p.ID, admin.ID, entity.RoleProjectAdmin)
	require.NoError(t, err)

	// project_admin cannot remove the owner.
	err = svc.RemoveMember(context.Background(), p.ID, owner.ID, entity.RoleProjectAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	// owner removes the admin.
	err = svc.RemoveMember(context.Background(), p.ID, admin.ID, entity.RoleOwner)
	require.NoError(t, err)
	_, err = svc.ResolveRole(context.Background(), p.ID, admin.ID)
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestListProjectsScopedToMember(t *testing.T) {
	svc, _, accounts := newProjectFixture(t)
	owner := seedMember(t, accounts, "o@example.com", "owner")
	other := seedMember(t, accounts, "x@example.com", "other")

	_, err := svc.CreateProject(context.Background(), owner.ID, ProjectInput{Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.CreateProject(context.Background(), other.ID, ProjectInput{Name: "Beta"})
	require.NoError(t, err)

	list, err := svc.ListProjects(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alpha", list[0].Name)
}

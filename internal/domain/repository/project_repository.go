package repository

import (
	"context"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
)

// ProjectRepository defines persistence for projects and memberships.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project, ownerID string) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListForAccount(ctx context.Context, accountID string) ([]*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error

	// GetMembership resolves the unique membership for the (account, project)
	// pair. Both keys are required; ErrNotFound means "not a member".
	GetMembership(ctx context.Context, projectID, accountID string) (*entity.Membership, error)
	ListMembers(ctx context.Context, projectID string) ([]*entity.MemberInfo, error)
	AddMember(ctx context.Context, projectID, accountID string, role entity.Role) (*entity.Membership, error)
	UpdateMemberRole(ctx context.Context, projectID, accountID string, role entity.Role) (*entity.Membership, error)
	RemoveMember(ctx context.Context, projectID, accountID string) error
}

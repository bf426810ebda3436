package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
)

// ProjectService owns project CRUD, member management, and the two
// authorization primitives the middleware composes: ResolveRole and Authorize.
type ProjectService struct {
	Projects repo.ProjectRepository
	Accounts repo.AccountRepository
	Logger   *logrus.Logger
}

func NewProjectService(projects repo.ProjectRepository, accounts repo.AccountRepository, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Projects: projects, Accounts: accounts, Logger: logger}
}

// ResolveRole looks up the unique membership for the (account, project) pair.
// The lookup is keyed by both ids; ErrNotAMember when no row exists.
func (s *ProjectService) ResolveRole(ctx context.Context, projectID, accountID string) (entity.Role, error) {
	m, err := s.Projects.GetMembership(ctx, projectID, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrNotAMember
		}
		return "", err
	}
	return m.Role, nil
}

// Authorize allows iff role is in the required set. Callers declare the
// required roles; nothing is hard-coded here.
func Authorize(role entity.Role, required ...entity.Role) error {
	if role.In(required...) {
		return nil
	}
	return ErrForbidden
}

// RequireRole resolves and authorizes in one step. Non-members get
// ErrNotFound rather than ErrForbidden so project existence does not leak.
func (s *ProjectService) RequireRole(ctx context.Context, projectID, accountID string, required ...entity.Role) (entity.Role, error) {
	role, err := s.ResolveRole(ctx, projectID, accountID)
	if err != nil {
		if errors.Is(err, ErrNotAMember) {
			return "", ErrNotFound
		}
		return "", err
	}
	if err := Authorize(role, required...); err != nil {
		return "", err
	}
	return role, nil
}

type ProjectInput struct {
	Name        string
	Description string
	Status      entity.ProjectStatus
	Priority    entity.ProjectPriority
	DueDate     *time.Time
}

// CreateProject creates a project and makes the creator its owner member.
func (s *ProjectService) CreateProject(ctx context.Context, accountID string, in ProjectInput) (*entity.Project, error) {
	p := &entity.Project{
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   accountID,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	if p.Status == "" {
		p.Status = entity.ProjectNotStarted
	}
	if p.Priority == "" {
		p.Priority = entity.PriorityMedium
	}
	if err := s.Projects.Create(ctx, p, accountID); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return p, nil
}

// ListProjects returns the projects the account is a member of.
func (s *ProjectService) ListProjects(ctx context.Context, accountID string) ([]*entity.Project, error) {
	return s.Projects.ListForAccount(ctx, accountID)
}

func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*entity.Project, error) {
	p, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, in ProjectInput) (*entity.Project, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	if in.Priority != "" {
		p.Priority = in.Priority
	}
	if in.DueDate != nil {
		p.DueDate = in.DueDate
	}
	if err := s.Projects.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.Projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ProjectService) ListMembers(ctx context.Context, projectID string) ([]*entity.MemberInfo, error) {
	return s.Projects.ListMembers(ctx, projectID)
}

// AddMember adds an account to a project. The actor's authority is checked by
// the route gate; here we only validate the target and the requested role.
// Owner cannot be granted this way: ownership follows project creation.
func (s *ProjectService) AddMember(ctx context.Context, projectID, targetAccountID string, role entity.Role) (*entity.Membership, error) {
	if !role.Valid() || role == entity.RoleOwner {
		return nil, ErrForbidden
	}
	if _, err := s.Accounts.GetByID(ctx, targetAccountID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m, err := s.Projects.AddMember(ctx, projectID, targetAccountID, role)
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return m, nil
}

// UpdateMemberRole changes a member's role. Only an owner may touch another
// owner's membership, and a project keeps at least its creator as owner via
// the owner-role guard.
func (s *ProjectService) UpdateMemberRole(ctx context.Context, projectID, targetAccountID string, role entity.Role, actorRole entity.Role) (*entity.Membership, error) {
	if !role.Valid() {
		return nil, ErrForbidden
	}
	current, err := s.Projects.GetMembership(ctx, projectID, targetAccountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.Role == entity.RoleOwner && actorRole != entity.RoleOwner {
		return nil, ErrForbidden
	}
	m, err := s.Projects.UpdateMemberRole(ctx, projectID, targetAccountID, role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// RemoveMember removes a membership. Owners can only be removed by an owner.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, targetAccountID string, actorRole entity.Role) error {
	current, err := s.Projects.GetMembership(ctx, projectID, targetAccountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if current.Role == entity.RoleOwner && actorRole != entity.RoleOwner {
		return ErrForbidden
	}
	if err := s.Projects.RemoveMember(ctx, projectID, targetAccountID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

package application

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
)

// In-memory repositories mirroring the conditional-write semantics of the
// postgres implementations.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	nextID   int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*entity.Account{}}
}

func (f *fakeAccountRepo) clone(a *entity.Account) *entity.Account {
	cp := *a
	return &cp
}

func (f *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.accounts {
		if ex.Email == a.Email || ex.Handle == a.Handle {
			return repo.ErrConflict
		}
	}
	f.nextID++
	a.ID = "acct-" + strconv.Itoa(f.nextID)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.accounts[a.ID] = f.clone(a)
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		return f.clone(a), nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return f.clone(a), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccountRepo) GetByHandle(_ context.Context, handle string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Handle == handle {
			return f.clone(a), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccountRepo) UpdateProfile(_ context.Context, a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.accounts[a.ID]
	if !ok {
		return repo.ErrNotFound
	}
	for id, other := range f.accounts {
		if id != a.ID && other.Handle == a.Handle {
			return repo.ErrConflict
		}
	}
	ex.Name = a.Name
	ex.Handle = a.Handle
	ex.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAccountRepo) SetVerifyTicket(_ context.Context, accountID, digest string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return repo.ErrNotFound
	}
	a.VerifyTicketHash = &digest
	a.VerifyTicketExpiresAt = &expiresAt
	return nil
}

func (f *fakeAccountRepo) ConsumeVerifyTicket(_ context.Context, digest string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.VerifyTicketHash != nil && *a.VerifyTicketHash == digest && a.VerifyTicketExpiresAt.After(time.Now()) {
			a.EmailVerified = true
			a.VerifyTicketHash = nil
			a.VerifyTicketExpiresAt = nil
			return f.clone(a), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccountRepo) SetResetTicket(_ context.Context, accountID, digest string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return repo.ErrNotFound
	}
	a.ResetTicketHash = &digest
	a.ResetTicketExpiresAt = &expiresAt
	return nil
}

func (f *fakeAccountRepo) ConsumeResetTicket(_ context.Context, digest, passwordHash string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ResetTicketHash != nil && *a.ResetTicketHash == digest && a.ResetTicketExpiresAt.After(time.Now()) {
			a.Password = passwordHash
			a.ResetTicketHash = nil
			a.ResetTicketExpiresAt = nil
			return f.clone(a), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccountRepo) InstallRefreshCredential(_ context.Context, accountID, credential string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return 0, repo.ErrNotFound
	}
	a.RefreshCredential = credential
	a.RefreshGeneration++
	return a.RefreshGeneration, nil
}

func (f *fakeAccountRepo) RotateRefreshCredential(_ context.Context, accountID, presented, next string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return 0, repo.ErrNotFound
	}
	if a.RefreshCredential == "" || a.RefreshCredential != presented {
		return 0, repo.ErrNotFound
	}
	a.RefreshCredential = next
	a.RefreshGeneration++
	return a.RefreshGeneration, nil
}

func (f *fakeAccountRepo) ClearRefreshCredential(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return repo.ErrNotFound
	}
	a.RefreshCredential = ""
	return nil
}

var _ repo.AccountRepository = (*fakeAccountRepo)(nil)

type fakeProjectRepo struct {
	mu          sync.Mutex
	projects    map[string]*entity.Project
	memberships map[string]map[string]*entity.Membership // projectID -> accountID -> membership
	nextID      int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:    map[string]*entity.Project{},
		memberships: map[string]map[string]*entity.Membership{},
	}
}

func (f *fakeProjectRepo) Create(_ context.Context, p *entity.Project, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.projects {
		if ex.Name == p.Name {
			return repo.ErrConflict
		}
	}
	f.nextID++
	p.ID = "proj-" + strconv.Itoa(f.nextID)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.projects[p.ID] = &cp
	f.memberships[p.ID] = map[string]*entity.Membership{
		ownerID: {ProjectID: p.ID, AccountID: ownerID, Role: entity.RoleOwner, CreatedAt: time.Now()},
	}
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProjectRepo) ListForAccount(_ context.Context, accountID string) ([]*entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Project
	for pid, members := range f.memberships {
		if _, ok := members[accountID]; ok {
			cp := *f.projects[pid]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.projects, id)
	delete(f.memberships, id)
	return nil
}

func (f *fakeProjectRepo) GetMembership(_ context.Context, projectID, accountID string) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if members, ok := f.memberships[projectID]; ok {
		if m, ok := members[accountID]; ok {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProjectRepo) ListMembers(_ context.Context, projectID string) ([]*entity.MemberInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.MemberInfo
	for _, m := range f.memberships[projectID] {
		out = append(out, &entity.MemberInfo{Membership: *m})
	}
	return out, nil
}

func (f *fakeProjectRepo) AddMember(_ context.Context, projectID, accountID string, role entity.Role) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members, ok := f.memberships[projectID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if _, exists := members[accountID]; exists {
		return nil, repo.ErrConflict
	}
	m := &entity.Membership{ProjectID: projectID, AccountID: accountID, Role: role, CreatedAt: time.Now()}
	members[accountID] = m
	cp := *m
	return &cp, nil
}

func (f *fakeProjectRepo) UpdateMemberRole(_ context.Context, projectID, accountID string, role entity.Role) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members, ok := f.memberships[projectID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	m, ok := members[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	m.Role = role
	cp := *m
	return &cp, nil
}

func (f *fakeProjectRepo) RemoveMember(_ context.Context, projectID, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	members, ok := f.memberships[projectID]
	if !ok {
		return repo.ErrNotFound
	}
	if _, ok := members[accountID]; !ok {
		return repo.ErrNotFound
	}
	delete(members, accountID)
	return nil
}

var _ repo.ProjectRepository = (*fakeProjectRepo)(nil)

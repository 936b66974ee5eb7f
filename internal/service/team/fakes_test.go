package teamService

import (
	"context"
	"sync"
	"time"

	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/store"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

type fakeMembershipStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]models.Membership
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{nextID: 1, rows: make(map[int64]models.Membership)}
}

func (s *fakeMembershipStore) Find(_ context.Context, userID, teamID int64) (models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.rows {
		if m.UserID == userID && m.TeamID == teamID {
			return m, nil
		}
	}
	return models.Membership{}, taskerr.NotFoundf("membership not found")
}

func (s *fakeMembershipStore) FindByID(_ context.Context, id int64) (models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.rows[id]
	if !ok {
		return models.Membership{}, taskerr.NotFoundf("membership not found")
	}
	return m, nil
}

func (s *fakeMembershipStore) Create(_ context.Context, m models.Membership) (models.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rows {
		if existing.UserID == m.UserID && existing.TeamID == m.TeamID {
			return models.Membership{}, taskerr.Conflictf("the user is already a member of the team")
		}
	}
	m.ID = s.nextID
	s.nextID++
	m.JoinedAt = time.Now().UTC()
	s.rows[m.ID] = m
	return m, nil
}

func (s *fakeMembershipStore) UpdateRole(_ context.Context, id int64, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[id]
	if !ok {
		return taskerr.NotFoundf("membership not found")
	}
	m.Role = role
	s.rows[id] = m
	return nil
}

func (s *fakeMembershipStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return taskerr.NotFoundf("membership not found")
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeMembershipStore) ListTeamMembers(_ context.Context, teamID int64) ([]models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []models.TeamMember
	for _, m := range s.rows {
		if m.TeamID == teamID {
			members = append(members, models.TeamMember{MembershipID: m.ID, UserID: m.UserID, Role: m.Role})
		}
	}
	return members, nil
}

// fakeTeamStore mirrors the store contract: CreateWithOwner writes the team
// and the owner's ADMIN membership together, and Delete cascades.
type fakeTeamStore struct {
	mu          sync.RWMutex
	nextID      int64
	teams       map[int64]models.Team
	memberships *fakeMembershipStore
}

func newFakeTeamStore(memberships *fakeMembershipStore) *fakeTeamStore {
	return &fakeTeamStore{nextID: 1, teams: make(map[int64]models.Team), memberships: memberships}
}

func (s *fakeTeamStore) CreateWithOwner(ctx context.Context, t models.Team) (models.Team, error) {
	s.mu.Lock()
	t.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.teams[t.ID] = t
	s.mu.Unlock()

	if _, err := s.memberships.Create(ctx, models.Membership{
		TeamID: t.ID,
		UserID: t.OwnerID,
		Role:   models.RoleAdmin,
	}); err != nil {
		s.mu.Lock()
		delete(s.teams, t.ID)
		s.mu.Unlock()
		return models.Team{}, err
	}
	return t, nil
}

func (s *fakeTeamStore) GetByID(_ context.Context, id int64) (models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return models.Team{}, taskerr.NotFoundf("team not found")
	}
	return t, nil
}

func (s *fakeTeamStore) Update(_ context.Context, id int64, name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return taskerr.NotFoundf("team not found")
	}
	t.Name = name
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
	s.teams[id] = t
	return nil
}

func (s *fakeTeamStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return taskerr.NotFoundf("team not found")
	}
	delete(s.teams, id)

	s.memberships.mu.Lock()
	for mid, m := range s.memberships.rows {
		if m.TeamID == id {
			delete(s.memberships.rows, mid)
		}
	}
	s.memberships.mu.Unlock()
	return nil
}

func (s *fakeTeamStore) ListForUser(ctx context.Context, userID int64) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var teams []models.Team
	for _, t := range s.teams {
		if _, err := s.memberships.Find(ctx, userID, t.ID); err == nil {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

type fakeUserStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int64]models.User)}
	for _, u := range users {
		s.users[u.UserID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, u models.User, _ string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
	return u, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, taskerr.NotFoundf("user not found")
	}
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (models.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, "", nil
		}
	}
	return models.User{}, "", taskerr.NotFoundf("user not found")
}

func (s *fakeUserStore) Update(_ context.Context, id int64, _ store.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return taskerr.NotFoundf("user not found")
	}
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return taskerr.NotFoundf("user not found")
	}
	delete(s.users, id)
	return nil
}

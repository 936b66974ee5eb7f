package taskService

import (
	"context"
	"sort"
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

type fakeTaskStore struct {
	mu          sync.RWMutex
	nextID      int64
	tasks       map[int64]models.Task
	memberships *fakeMembershipStore

	// failUpdate makes Update on the given task id fail, to exercise
	// partial reorder application.
	failUpdate map[int64]error
	// updateCalls counts persisted writes.
	updateCalls int
}

func newFakeTaskStore(memberships *fakeMembershipStore) *fakeTaskStore {
	return &fakeTaskStore{
		nextID:      1,
		tasks:       make(map[int64]models.Task),
		memberships: memberships,
		failUpdate:  make(map[int64]error),
	}
}

func cloneTask(t models.Task) models.Task {
	out := t
	if t.StartDate != nil {
		sd := *t.StartDate
		out.StartDate = &sd
	}
	if t.DueDate != nil {
		dd := *t.DueDate
		out.DueDate = &dd
	}
	out.AssigneeIDs = append([]int64(nil), t.AssigneeIDs...)
	return out
}

func (s *fakeTaskStore) Create(_ context.Context, t models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = cloneTask(t)
	return t, nil
}

func (s *fakeTaskStore) GetByID(_ context.Context, id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, taskerr.NotFoundf("task not found")
	}
	return cloneTask(t), nil
}

func (s *fakeTaskStore) Update(_ context.Context, id int64, p store.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failUpdate[id]; ok {
		return err
	}
	t, ok := s.tasks[id]
	if !ok {
		return taskerr.NotFoundf("task not found")
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.StartDate != nil {
		sd := *p.StartDate
		t.StartDate = &sd
	}
	if p.DueDate != nil {
		dd := *p.DueDate
		t.DueDate = &dd
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	s.updateCalls++
	return nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return taskerr.NotFoundf("task not found")
	}
	delete(s.tasks, id)
	return nil
}

func (s *fakeTaskStore) ListForTeam(_ context.Context, teamID int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []models.Task
	for _, t := range s.tasks {
		if t.TeamID == teamID {
			tasks = append(tasks, cloneTask(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *fakeTaskStore) ListForUserTeams(ctx context.Context, userID int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []models.Task
	for _, t := range s.tasks {
		if _, err := s.memberships.Find(ctx, userID, t.TeamID); err == nil {
			tasks = append(tasks, cloneTask(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *fakeTaskStore) AddAssignee(_ context.Context, taskID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return taskerr.NotFoundf("task not found")
	}
	if t.Assigned(userID) {
		return nil
	}
	t.AssigneeIDs = append(t.AssigneeIDs, userID)
	s.tasks[taskID] = t
	return nil
}

func (s *fakeTaskStore) RemoveAssignee(_ context.Context, taskID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return taskerr.NotFoundf("task not found")
	}
	var remaining []int64
	for _, id := range t.AssigneeIDs {
		if id != userID {
			remaining = append(remaining, id)
		}
	}
	t.AssigneeIDs = remaining
	s.tasks[taskID] = t
	return nil
}

func (s *fakeTaskStore) MarkOverdueLateForTeam(_ context.Context, teamID int64, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed int64
	for id, t := range s.tasks {
		if t.TeamID != teamID || t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		if t.Status == models.StatusDone || t.Status == models.StatusLate {
			continue
		}
		t.Status = models.StatusLate
		t.UpdatedAt = now
		s.tasks[id] = t
		changed++
	}
	return changed, nil
}

func (s *fakeTaskStore) MarkOverdueLateForUserTeams(ctx context.Context, userID int64, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed int64
	for id, t := range s.tasks {
		if _, err := s.memberships.Find(ctx, userID, t.TeamID); err != nil {
			continue
		}
		if t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		if t.Status == models.StatusDone || t.Status == models.StatusLate {
			continue
		}
		t.Status = models.StatusLate
		t.UpdatedAt = now
		s.tasks[id] = t
		changed++
	}
	return changed, nil
}

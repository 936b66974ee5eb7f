package taskService

import (
	"context"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/lribeiro/taskboard/internal/authz"
	"github.com/lribeiro/taskboard/internal/logger"
	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/store"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

// Service is the task lifecycle manager: creation, partial updates with the
// LATE derivation, assignment, board reordering and the overdue sweep.
type Service struct {
	tasks       store.TaskStore
	memberships store.MembershipStore
	log         *logger.Logger
}

func NewService(tasks store.TaskStore, memberships store.MembershipStore, log *logger.Logger) *Service {
	return &Service{
		tasks:       tasks,
		memberships: memberships,
		log:         log,
	}
}

type CreateTaskInput struct {
	TeamID      int64               `json:"team_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	StartDate   *time.Time          `json:"start_date"`
	DueDate     *time.Time          `json:"due_date"`
	Position    int                 `json:"position"`
}

func (s *Service) requesterRole(ctx context.Context, userID, teamID int64) (models.Role, error) {
	m, err := s.memberships.Find(ctx, userID, teamID)
	if err != nil {
		if taskerr.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return m.Role, nil
}

// Create inserts a new task. Status is always TODO at creation, whatever the
// caller sent; a past due date only turns into LATE on a later update or an
// overdue sweep.
func (s *Service) Create(ctx context.Context, requesterID int64, in CreateTaskInput) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, taskerr.Validationf("task title is required")
	}
	if in.TeamID <= 0 {
		return models.Task{}, taskerr.Validationf("team id is required")
	}

	role, err := s.requesterRole(ctx, requesterID, in.TeamID)
	if err != nil {
		return models.Task{}, err
	}
	if err := authz.CanPerform(role, authz.CreateTask, authz.Context{}); err != nil {
		s.log.WithContext(ctx).Warn("Task creation denied", "team_id", in.TeamID, "user_id", requesterID)
		return models.Task{}, err
	}

	if in.StartDate != nil && in.DueDate != nil && in.StartDate.After(*in.DueDate) {
		return models.Task{}, taskerr.Validationf("start date cannot be after due date")
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, taskerr.Validationf("invalid priority %q", priority)
	}

	task, err := s.tasks.Create(ctx, models.Task{
		TeamID:      in.TeamID,
		Title:       title,
		Description: in.Description,
		Status:      models.StatusTodo,
		Priority:    priority,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Position:    in.Position,
	})
	if err != nil {
		return models.Task{}, err
	}

	s.log.WithContext(ctx).Info("Task created", "task_id", task.ID, "team_id", task.TeamID, "user_id", requesterID)
	return task, nil
}

// Get returns a task to members of its team; outsiders get not-found.
func (s *Service) Get(ctx context.Context, requesterID, taskID int64) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if _, err := s.memberships.Find(ctx, requesterID, task.TeamID); err != nil {
		if taskerr.IsNotFound(err) {
			return models.Task{}, taskerr.NotFoundf("task not found")
		}
		return models.Task{}, err
	}
	return task, nil
}

// Update applies a partial update. Admins may update any task, members only
// tasks assigned to them. When the task's effective due date has passed and
// the patch does not set DONE, the stored status becomes LATE no matter what
// status the patch asked for.
func (s *Service) Update(ctx context.Context, requesterID, taskID int64, p store.TaskPatch) (models.Task, error) {
	if p.Empty() {
		return models.Task{}, taskerr.Validationf("no fields to update")
	}
	if p.Status != nil && !p.Status.Valid() {
		return models.Task{}, taskerr.Validationf("invalid status %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return models.Task{}, taskerr.Validationf("invalid priority %q", *p.Priority)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return models.Task{}, taskerr.Validationf("task title is required")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	role, err := s.requesterRole(ctx, requesterID, task.TeamID)
	if err != nil {
		return models.Task{}, err
	}
	if err := authz.CanPerform(role, authz.UpdateTask, authz.Context{
		RequesterIsAssignee: task.Assigned(requesterID),
	}); err != nil {
		s.log.WithContext(ctx).Warn("Task update denied", "task_id", taskID, "user_id", requesterID)
		return models.Task{}, err
	}

	// Derive LATE from the due date the task will have after this patch.
	due := task.DueDate
	if p.DueDate != nil {
		due = p.DueDate
	}
	if due != nil && due.Before(time.Now()) && (p.Status == nil || *p.Status != models.StatusDone) {
		late := models.StatusLate
		p.Status = &late
	}

	if err := s.tasks.Update(ctx, taskID, p); err != nil {
		return models.Task{}, err
	}

	s.log.WithContext(ctx).Info("Task updated", "task_id", taskID, "user_id", requesterID)
	return s.tasks.GetByID(ctx, taskID)
}

// Delete hard-deletes a task; admins only.
func (s *Service) Delete(ctx context.Context, requesterID, taskID int64) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	role, err := s.requesterRole(ctx, requesterID, task.TeamID)
	if err != nil {
		return err
	}
	if err := authz.CanPerform(role, authz.DeleteTask, authz.Context{}); err != nil {
		s.log.WithContext(ctx).Warn("Task delete denied", "task_id", taskID, "user_id", requesterID)
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	s.log.WithContext(ctx).Info("Task deleted", "task_id", taskID, "user_id", requesterID)
	return nil
}

// Assign adds a user to the task's assignee set. The assignee must belong to
// the task's team; assigning an already-assigned user is a no-op.
func (s *Service) Assign(ctx context.Context, requesterID, taskID, assigneeID int64) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	role, err := s.requesterRole(ctx, requesterID, task.TeamID)
	if err != nil {
		return models.Task{}, err
	}

	assigneeIsMember := true
	if _, err := s.memberships.Find(ctx, assigneeID, task.TeamID); err != nil {
		if !taskerr.IsNotFound(err) {
			return models.Task{}, err
		}
		assigneeIsMember = false
	}

	if err := authz.CanPerform(role, authz.AssignTask, authz.Context{
		TargetIsTeamMember: assigneeIsMember,
	}); err != nil {
		s.log.WithContext(ctx).Warn("Task assignment denied", "task_id", taskID, "user_id", requesterID, "assignee", assigneeID)
		return models.Task{}, err
	}

	if err := s.tasks.AddAssignee(ctx, taskID, assigneeID); err != nil {
		return models.Task{}, err
	}

	s.log.WithContext(ctx).Info("Task assigned", "task_id", taskID, "assignee", assigneeID, "assigned_by", requesterID)
	return s.tasks.GetByID(ctx, taskID)
}

// Unassign removes a user from the task's assignee set.
func (s *Service) Unassign(ctx context.Context, requesterID, taskID, assigneeID int64) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	role, err := s.requesterRole(ctx, requesterID, task.TeamID)
	if err != nil {
		return models.Task{}, err
	}
	if err := authz.CanPerform(role, authz.AssignTask, authz.Context{
		TargetIsTeamMember: true,
	}); err != nil {
		s.log.WithContext(ctx).Warn("Task unassignment denied", "task_id", taskID, "user_id", requesterID)
		return models.Task{}, err
	}

	if err := s.tasks.RemoveAssignee(ctx, taskID, assigneeID); err != nil {
		return models.Task{}, err
	}
	return s.tasks.GetByID(ctx, taskID)
}

// ListForUser returns every task across the teams the user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.tasks.ListForUserTeams(ctx, userID)
}

// ListForTeam returns a team's tasks, ordered by board position then
// creation time. Requires a membership in the team.
func (s *Service) ListForTeam(ctx context.Context, requesterID, teamID int64) ([]models.Task, error) {
	if _, err := s.memberships.Find(ctx, requesterID, teamID); err != nil {
		if taskerr.IsNotFound(err) {
			return nil, taskerr.NotFoundf("team not found")
		}
		return nil, err
	}
	return s.tasks.ListForTeam(ctx, teamID)
}

// ReorderColumn applies a board drag-and-drop: the listed tasks get ordinal
// positions 0, 10, 20, ... in the given order and their status set to the
// target column. Tasks whose (position, status) already match are not
// written. The writes are independent per task; on failures the reorder may
// apply partially, and all row errors are reported together.
func (s *Service) ReorderColumn(ctx context.Context, requesterID, teamID int64, status models.TaskStatus, orderedIDs []int64) error {
	if !status.Valid() {
		return taskerr.Validationf("invalid status %q", status)
	}
	if len(orderedIDs) == 0 {
		return taskerr.Validationf("no tasks to reorder")
	}

	role, err := s.requesterRole(ctx, requesterID, teamID)
	if err != nil {
		return err
	}
	if err := authz.CanPerform(role, authz.ReorderBoard, authz.Context{}); err != nil {
		s.log.WithContext(ctx).Warn("Board reorder denied", "team_id", teamID, "user_id", requesterID)
		return err
	}

	var errs error
	for i, taskID := range orderedIDs {
		task, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if task.TeamID != teamID {
			errs = multierr.Append(errs, taskerr.Validationf("task %d does not belong to team %d", taskID, teamID))
			continue
		}

		position := i * 10
		if task.Position == position && task.Status == status {
			continue
		}

		st := status
		if err := s.tasks.Update(ctx, taskID, store.TaskPatch{Position: &position, Status: &st}); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		s.log.WithContext(ctx).Error("Board reorder applied partially", "team_id", teamID, "error", errs)
		return errs
	}

	s.log.WithContext(ctx).Info("Board column reordered", "team_id", teamID, "status", status, "count", len(orderedIDs))
	return nil
}

// MarkOverdueLate bulk-transitions overdue tasks to LATE. With teamID > 0
// the sweep covers that team and requires a non-READONLY membership;
// otherwise it covers every team the requester belongs to.
func (s *Service) MarkOverdueLate(ctx context.Context, requesterID, teamID int64) (int64, error) {
	now := time.Now().UTC()

	if teamID > 0 {
		role, err := s.requesterRole(ctx, requesterID, teamID)
		if err != nil {
			return 0, err
		}
		if err := authz.CanPerform(role, authz.UpdateTask, authz.Context{RequesterIsAssignee: true}); err != nil {
			s.log.WithContext(ctx).Warn("Overdue sweep denied", "team_id", teamID, "user_id", requesterID)
			return 0, err
		}

		changed, err := s.tasks.MarkOverdueLateForTeam(ctx, teamID, now)
		if err != nil {
			return 0, err
		}
		if changed > 0 {
			s.log.WithContext(ctx).Info("Overdue tasks marked late", "team_id", teamID, "count", changed)
		}
		return changed, nil
	}

	changed, err := s.tasks.MarkOverdueLateForUserTeams(ctx, requesterID, now)
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.log.WithContext(ctx).Info("Overdue tasks marked late", "user_id", requesterID, "count", changed)
	}
	return changed, nil
}

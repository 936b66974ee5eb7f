// Package store declares the repository interfaces the services are built
// on. The MySQL implementation lives in store/mysql; tests substitute
// in-memory fakes.
package store

import (
	"context"
	"time"

	"github.com/lribeiro/taskboard/internal/models"
)

type UserStore interface {
	// Create persists a new user with the given password hash and returns
	// the assigned id. A duplicate email is a conflict.
	Create(ctx context.Context, u models.User, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	// GetByEmail returns the user together with the stored password hash.
	GetByEmail(ctx context.Context, email string) (models.User, string, error)
	Update(ctx context.Context, id int64, p UserPatch) error
	Delete(ctx context.Context, id int64) error
}

type UserPatch struct {
	FirstName     *string
	LastName      *string
	ContactNumber *string
	PasswordHash  *string
}

type TeamStore interface {
	// CreateWithOwner inserts the team and an ADMIN membership for its owner
	// as one unit; partial creation must not be observable.
	CreateWithOwner(ctx context.Context, t models.Team) (models.Team, error)
	GetByID(ctx context.Context, id int64) (models.Team, error)
	Update(ctx context.Context, id int64, name, description string) error
	Delete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]models.Team, error)
}

type MembershipStore interface {
	// Find returns the membership for the (user, team) pair, or a not-found
	// error when the user holds none.
	Find(ctx context.Context, userID, teamID int64) (models.Membership, error)
	FindByID(ctx context.Context, id int64) (models.Membership, error)
	Create(ctx context.Context, m models.Membership) (models.Membership, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
	ListTeamMembers(ctx context.Context, teamID int64) ([]models.TeamMember, error)
}

type TaskStore interface {
	Create(ctx context.Context, t models.Task) (models.Task, error)
	// GetByID returns the task including its assignee ids.
	GetByID(ctx context.Context, id int64) (models.Task, error)
	// Update persists only the fields set in the patch.
	Update(ctx context.Context, id int64, p TaskPatch) error
	Delete(ctx context.Context, id int64) error
	// ListForTeam orders by position ascending, then creation time ascending.
	ListForTeam(ctx context.Context, teamID int64) ([]models.Task, error)
	// ListForUserTeams returns tasks of every team the user belongs to.
	ListForUserTeams(ctx context.Context, userID int64) ([]models.Task, error)
	// AddAssignee is idempotent: assigning an already-assigned user is a
	// no-op.
	AddAssignee(ctx context.Context, taskID, userID int64) error
	RemoveAssignee(ctx context.Context, taskID, userID int64) error
	// MarkOverdueLateForTeam sets status LATE on every task of the team with
	// a past due date and a status outside {DONE, LATE}; returns the number
	// of rows changed.
	MarkOverdueLateForTeam(ctx context.Context, teamID int64, now time.Time) (int64, error)
	// MarkOverdueLateForUserTeams does the same across all teams the user
	// belongs to.
	MarkOverdueLateForUserTeams(ctx context.Context, userID int64, now time.Time) (int64, error)
}

// TaskPatch carries a partial task update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	StartDate   *time.Time
	DueDate     *time.Time
	Position    *int
}

// Empty reports whether the patch sets no fields at all.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.StartDate == nil && p.DueDate == nil && p.Position == nil
}

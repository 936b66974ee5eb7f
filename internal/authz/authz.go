// Package authz holds the permission rules for team-scoped operations.
// Decisions are pure: the caller resolves the requester's role and the
// contextual flags, CanPerform only judges them.
package authz

import (
	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

type Operation string

const (
	CreateTask   Operation = "create-task"
	UpdateTask   Operation = "update-task"
	DeleteTask   Operation = "delete-task"
	AssignTask   Operation = "assign-task"
	ReorderBoard Operation = "reorder-board"
	AddMember    Operation = "add-member"
	ChangeRole   Operation = "change-role"
	RemoveMember Operation = "remove-member"
	UpdateTeam   Operation = "update-team"
	DeleteTeam   Operation = "delete-team"
)

// Context carries the facts about the request that the rules depend on
// beyond the requester's own role.
type Context struct {
	// RequesterIsAssignee: the requester is currently assigned to the task.
	RequesterIsAssignee bool
	// RequesterIsOwner: the requester is the team's owner.
	RequesterIsOwner bool
	// TargetIsSelf: the membership being changed/removed belongs to the
	// requester.
	TargetIsSelf bool
	// TargetIsAdmin: the membership being removed has the ADMIN role.
	TargetIsAdmin bool
	// TargetIsTeamMember: the user being assigned holds a membership in the
	// task's team.
	TargetIsTeamMember bool
	// TargetAlreadyMember: the user being added already holds a membership
	// in the team.
	TargetAlreadyMember bool
}

// CanPerform returns nil when role may perform op, or an error naming the
// violated rule. An empty role means the requester has no membership in the
// team.
func CanPerform(role models.Role, op Operation, c Context) error {
	switch op {
	case CreateTask:
		if !canWrite(role) {
			return taskerr.NotAuthorizedf("creating tasks requires an ADMIN or MEMBER membership in the team")
		}
	case UpdateTask:
		if !canWrite(role) {
			return taskerr.NotAuthorizedf("updating tasks requires an ADMIN or MEMBER membership in the team")
		}
		if role == models.RoleMember && !c.RequesterIsAssignee {
			return taskerr.NotAuthorizedf("members can only update tasks assigned to them")
		}
	case DeleteTask:
		if role != models.RoleAdmin {
			return taskerr.NotAuthorizedf("only team admins can delete tasks")
		}
	case AssignTask:
		if !canWrite(role) {
			return taskerr.NotAuthorizedf("assigning tasks requires an ADMIN or MEMBER membership in the team")
		}
		if !c.TargetIsTeamMember {
			return taskerr.NotAuthorizedf("the assignee must be a member of the task's team")
		}
	case ReorderBoard:
		if !canWrite(role) {
			return taskerr.NotAuthorizedf("reordering the board requires an ADMIN or MEMBER membership in the team")
		}
	case AddMember:
		if role != models.RoleAdmin {
			return taskerr.NotAuthorizedf("only team admins can add members")
		}
		if c.TargetAlreadyMember {
			return taskerr.Conflictf("the user is already a member of the team")
		}
	case ChangeRole:
		if role != models.RoleAdmin {
			return taskerr.NotAuthorizedf("only team admins can change member roles")
		}
		if c.TargetIsSelf {
			return taskerr.NotAuthorizedf("you cannot change your own role")
		}
	case RemoveMember:
		if role != models.RoleAdmin {
			return taskerr.NotAuthorizedf("only team admins can remove members")
		}
		if c.TargetIsSelf {
			return taskerr.NotAuthorizedf("you cannot remove yourself from the team")
		}
		if c.TargetIsAdmin {
			return taskerr.NotAuthorizedf("admin memberships cannot be removed")
		}
	case UpdateTeam:
		if role != models.RoleAdmin {
			return taskerr.NotAuthorizedf("only team admins can update the team")
		}
	case DeleteTeam:
		if role != models.RoleAdmin {
			return taskerr.NotAuthorizedf("only team admins can delete the team")
		}
		if !c.RequesterIsOwner {
			return taskerr.NotAuthorizedf("only the team owner can delete the team")
		}
	default:
		return taskerr.NotAuthorizedf("unknown operation %q", op)
	}
	return nil
}

func canWrite(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleMember
}

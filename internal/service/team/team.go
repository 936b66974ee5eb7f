package teamService

import (
	"context"
	"strings"

	"github.com/lribeiro/taskboard/internal/authz"
	"github.com/lribeiro/taskboard/internal/logger"
	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/store"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

// Service is the team manager and membership ledger: it owns team CRUD and
// every membership mutation, consulting the authz rules before each one.
type Service struct {
	teams       store.TeamStore
	memberships store.MembershipStore
	users       store.UserStore
	log         *logger.Logger
}

func NewService(teams store.TeamStore, memberships store.MembershipStore, users store.UserStore, log *logger.Logger) *Service {
	return &Service{
		teams:       teams,
		memberships: memberships,
		users:       users,
		log:         log,
	}
}

type CreateTeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateTeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// requesterRole resolves the requester's role in a team; the empty role
// means no membership.
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

// Create makes a new team and grants the creator an ADMIN membership; the
// store performs both inserts as one unit.
func (s *Service) Create(ctx context.Context, ownerID int64, in CreateTeamInput) (models.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Team{}, taskerr.Validationf("team name is required")
	}

	team, err := s.teams.CreateWithOwner(ctx, models.Team{
		Name:        name,
		Description: in.Description,
		OwnerID:     ownerID,
	})
	if err != nil {
		return models.Team{}, err
	}

	s.log.WithContext(ctx).Info("Team created", "team_id", team.ID, "user_id", ownerID)
	return team, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Team, error) {
	return s.teams.ListForUser(ctx, userID)
}

// Get returns team details for members. Nonexistent teams and teams the
// requester does not belong to both surface as not-found, so responses never
// confirm a team's existence to outsiders.
func (s *Service) Get(ctx context.Context, requesterID, teamID int64) (models.Team, error) {
	if _, err := s.memberships.Find(ctx, requesterID, teamID); err != nil {
		if taskerr.IsNotFound(err) {
			return models.Team{}, taskerr.NotFoundf("team not found")
		}
		return models.Team{}, err
	}
	return s.teams.GetByID(ctx, teamID)
}

func (s *Service) Update(ctx context.Context, requesterID, teamID int64, in UpdateTeamInput) (models.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Team{}, taskerr.Validationf("team name is required")
	}

	role, err := s.requesterRole(ctx, requesterID, teamID)
	if err != nil {
		return models.Team{}, err
	}
	if err := authz.CanPerform(role, authz.UpdateTeam, authz.Context{}); err != nil {
		s.log.WithContext(ctx).Warn("Team update denied", "team_id", teamID, "user_id", requesterID)
		return models.Team{}, err
	}

	if err := s.teams.Update(ctx, teamID, name, in.Description); err != nil {
		return models.Team{}, err
	}

	s.log.WithContext(ctx).Info("Team updated", "team_id", teamID, "updated_by", requesterID)
	return s.teams.GetByID(ctx, teamID)
}

func (s *Service) Delete(ctx context.Context, requesterID, teamID int64) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	role, err := s.requesterRole(ctx, requesterID, teamID)
	if err != nil {
		return err
	}
	if err := authz.CanPerform(role, authz.DeleteTeam, authz.Context{
		RequesterIsOwner: team.OwnerID == requesterID,
	}); err != nil {
		s.log.WithContext(ctx).Warn("Team delete denied", "team_id", teamID, "user_id", requesterID)
		return err
	}

	if err := s.teams.Delete(ctx, teamID); err != nil {
		return err
	}

	s.log.WithContext(ctx).Audit("Team deleted", "team_id", teamID, "user_id", requesterID)
	return nil
}

// ListMembers returns the membership roster; any role in the team may view
// it. Outsiders get not-found, same as Get.
func (s *Service) ListMembers(ctx context.Context, requesterID, teamID int64) ([]models.TeamMember, error) {
	if _, err := s.memberships.Find(ctx, requesterID, teamID); err != nil {
		if taskerr.IsNotFound(err) {
			return nil, taskerr.NotFoundf("team not found")
		}
		return nil, err
	}
	return s.memberships.ListTeamMembers(ctx, teamID)
}

// AddMember grants userID a membership in the team. Only admins may add;
// adding an existing member is a conflict.
func (s *Service) AddMember(ctx context.Context, requesterID, teamID, userID int64, role models.Role) (models.Membership, error) {
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return models.Membership{}, taskerr.Validationf("invalid role %q", role)
	}

	requesterRole, err := s.requesterRole(ctx, requesterID, teamID)
	if err != nil {
		return models.Membership{}, err
	}

	alreadyMember := true
	if _, err := s.memberships.Find(ctx, userID, teamID); err != nil {
		if !taskerr.IsNotFound(err) {
			return models.Membership{}, err
		}
		alreadyMember = false
	}

	if err := authz.CanPerform(requesterRole, authz.AddMember, authz.Context{
		TargetAlreadyMember: alreadyMember,
	}); err != nil {
		s.log.WithContext(ctx).Warn("Add member denied", "team_id", teamID, "user_id", requesterID, "target", userID)
		return models.Membership{}, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return models.Membership{}, err
	}

	membership, err := s.memberships.Create(ctx, models.Membership{
		TeamID:    teamID,
		UserID:    userID,
		Role:      role,
		InvitedBy: requesterID,
	})
	if err != nil {
		return models.Membership{}, err
	}

	s.log.WithContext(ctx).Info("Member added", "team_id", teamID, "target", userID, "role", role, "invited_by", requesterID)
	return membership, nil
}

// ChangeRole updates a membership's role. Admins only, never on themselves.
func (s *Service) ChangeRole(ctx context.Context, requesterID, membershipID int64, newRole models.Role) (models.Membership, error) {
	if !newRole.Valid() {
		return models.Membership{}, taskerr.Validationf("invalid role %q", newRole)
	}

	membership, err := s.memberships.FindByID(ctx, membershipID)
	if err != nil {
		return models.Membership{}, err
	}

	requesterRole, err := s.requesterRole(ctx, requesterID, membership.TeamID)
	if err != nil {
		return models.Membership{}, err
	}
	if err := authz.CanPerform(requesterRole, authz.ChangeRole, authz.Context{
		TargetIsSelf: membership.UserID == requesterID,
	}); err != nil {
		s.log.WithContext(ctx).Warn("Role change denied", "membership_id", membershipID, "user_id", requesterID)
		return models.Membership{}, err
	}

	if err := s.memberships.UpdateRole(ctx, membershipID, newRole); err != nil {
		return models.Membership{}, err
	}

	membership.Role = newRole
	s.log.WithContext(ctx).Info("Member role changed", "membership_id", membershipID, "role", newRole, "changed_by", requesterID)
	return membership, nil
}

// RemoveMember deletes a membership. Admins only; never themselves, never a
// membership holding the ADMIN role.
func (s *Service) RemoveMember(ctx context.Context, requesterID, membershipID int64) error {
	membership, err := s.memberships.FindByID(ctx, membershipID)
	if err != nil {
		return err
	}

	requesterRole, err := s.requesterRole(ctx, requesterID, membership.TeamID)
	if err != nil {
		return err
	}
	if err := authz.CanPerform(requesterRole, authz.RemoveMember, authz.Context{
		TargetIsSelf:  membership.UserID == requesterID,
		TargetIsAdmin: membership.Role == models.RoleAdmin,
	}); err != nil {
		s.log.WithContext(ctx).Warn("Member removal denied", "membership_id", membershipID, "user_id", requesterID)
		return err
	}

	if err := s.memberships.Delete(ctx, membershipID); err != nil {
		return err
	}

	s.log.WithContext(ctx).Info("Member removed", "membership_id", membershipID, "team_id", membership.TeamID, "removed_by", requesterID)
	return nil
}

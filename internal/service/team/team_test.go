package teamService

import (
	"context"
	"testing"

	"github.com/lribeiro/taskboard/internal/logger"
	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

func newFixture(users ...models.User) (*fakeTeamStore, *fakeMembershipStore, *Service) {
	memberships := newFakeMembershipStore()
	teams := newFakeTeamStore(memberships)
	svc := NewService(teams, memberships, newFakeUserStore(users...), logger.NewLogger("team-service-test"))
	return teams, memberships, svc
}

func mustTeam(t *testing.T, svc *Service, ownerID int64, name string) models.Team {
	t.Helper()
	team, err := svc.Create(context.Background(), ownerID, CreateTeamInput{Name: name})
	if err != nil {
		t.Fatalf("failed to prepare team: %v", err)
	}
	return team
}

func TestCreateGrantsOwnerAdminMembership(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")

	if team.OwnerID != 1 {
		t.Fatalf("expected owner 1, got %d", team.OwnerID)
	}
	m, err := memberships.Find(context.Background(), 1, team.ID)
	if err != nil {
		t.Fatalf("owner has no membership: %v", err)
	}
	if m.Role != models.RoleAdmin {
		t.Fatalf("expected ADMIN membership for the owner, got %s", m.Role)
	}
}

func TestCreateTwiceYieldsDistinctTeams(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	a := mustTeam(t, svc, 1, "Platform")
	b := mustTeam(t, svc, 1, "Platform")

	if a.ID == b.ID {
		t.Fatalf("expected distinct team ids, both %d", a.ID)
	}
	for _, team := range []models.Team{a, b} {
		if _, err := memberships.Find(context.Background(), 1, team.ID); err != nil {
			t.Fatalf("team %d: owner missing membership: %v", team.ID, err)
		}
	}
}

func TestCreateRequiresName(t *testing.T) {
	t.Parallel()

	_, _, svc := newFixture()
	if _, err := svc.Create(context.Background(), 1, CreateTeamInput{Name: "   "}); !taskerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetOutsiderSeesNotFound(t *testing.T) {
	t.Parallel()

	_, _, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")

	if _, err := svc.Get(context.Background(), 1, team.ID); err != nil {
		t.Fatalf("member: expected allow, got %v", err)
	}
	// Outsiders and nonexistent teams are indistinguishable.
	if _, err := svc.Get(context.Background(), 9, team.ID); !taskerr.IsNotFound(err) {
		t.Fatalf("outsider: expected not-found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, 999); !taskerr.IsNotFound(err) {
		t.Fatalf("nonexistent: expected not-found, got %v", err)
	}
}

func TestUpdateRequiresAdmin(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	if _, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleMember}); err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	_, err := svc.Update(context.Background(), 2, team.ID, UpdateTeamInput{Name: "Renamed"})
	if !taskerr.IsNotAuthorized(err) {
		t.Fatalf("member: expected not-authorized, got %v", err)
	}

	updated, err := svc.Update(context.Background(), 1, team.ID, UpdateTeamInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("admin: expected allow, got %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected renamed team, got %q", updated.Name)
	}
}

func TestDeleteRequiresOwner(t *testing.T) {
	t.Parallel()

	teams, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")

	// A second admin who is not the owner still cannot delete.
	if _, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleAdmin}); err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}
	if err := svc.Delete(context.Background(), 2, team.ID); !taskerr.IsNotAuthorized(err) {
		t.Fatalf("non-owner admin: expected not-authorized, got %v", err)
	}

	if err := svc.Delete(context.Background(), 1, team.ID); err != nil {
		t.Fatalf("owner: expected allow, got %v", err)
	}
	if _, err := teams.GetByID(context.Background(), team.ID); !taskerr.IsNotFound(err) {
		t.Fatalf("expected team gone, got %v", err)
	}
}

func TestAddMemberDefaultsToMemberRole(t *testing.T) {
	t.Parallel()

	_, _, svc := newFixture(models.User{UserID: 2, Email: "b@example.com"})
	team := mustTeam(t, svc, 1, "Platform")

	m, err := svc.AddMember(context.Background(), 1, team.ID, 2, "")
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	if m.Role != models.RoleMember {
		t.Fatalf("expected MEMBER by default, got %s", m.Role)
	}
	if m.InvitedBy != 1 {
		t.Fatalf("expected invited_by 1, got %d", m.InvitedBy)
	}
}

func TestAddMemberRequiresAdmin(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture(models.User{UserID: 3, Email: "c@example.com"})
	team := mustTeam(t, svc, 1, "Platform")
	if _, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleMember}); err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	if _, err := svc.AddMember(context.Background(), 2, team.ID, 3, models.RoleMember); !taskerr.IsNotAuthorized(err) {
		t.Fatalf("member: expected not-authorized, got %v", err)
	}
}

func TestAddExistingMemberIsConflict(t *testing.T) {
	t.Parallel()

	_, _, svc := newFixture(models.User{UserID: 2, Email: "b@example.com"})
	team := mustTeam(t, svc, 1, "Platform")

	if _, err := svc.AddMember(context.Background(), 1, team.ID, 2, models.RoleMember); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), 1, team.ID, 2, models.RoleReadOnly); !taskerr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAddMemberUnknownUser(t *testing.T) {
	t.Parallel()

	_, _, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")

	if _, err := svc.AddMember(context.Background(), 1, team.ID, 99, models.RoleMember); !taskerr.IsNotFound(err) {
		t.Fatalf("expected not-found for unknown user, got %v", err)
	}
}

func TestChangeRoleNeverOnSelf(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	own, err := memberships.Find(context.Background(), 1, team.ID)
	if err != nil {
		t.Fatalf("owner membership missing: %v", err)
	}

	// Even an admin cannot change their own role.
	if _, err := svc.ChangeRole(context.Background(), 1, own.ID, models.RoleMember); !taskerr.IsNotAuthorized(err) {
		t.Fatalf("expected not-authorized on self, got %v", err)
	}
}

func TestChangeRoleByAdmin(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	m, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleMember})
	if err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	changed, err := svc.ChangeRole(context.Background(), 1, m.ID, models.RoleReadOnly)
	if err != nil {
		t.Fatalf("ChangeRole returned error: %v", err)
	}
	if changed.Role != models.RoleReadOnly {
		t.Fatalf("expected READONLY, got %s", changed.Role)
	}

	stored, _ := memberships.FindByID(context.Background(), m.ID)
	if stored.Role != models.RoleReadOnly {
		t.Fatalf("role not persisted, got %s", stored.Role)
	}
}

func TestChangeRoleRejectsInvalidRole(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	m, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleMember})
	if err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	if _, err := svc.ChangeRole(context.Background(), 1, m.ID, "OWNER"); !taskerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveMemberNeverSelfOrAdmin(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	own, _ := memberships.Find(context.Background(), 1, team.ID)
	admin2, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	if err := svc.RemoveMember(context.Background(), 1, own.ID); !taskerr.IsNotAuthorized(err) {
		t.Fatalf("self: expected not-authorized, got %v", err)
	}
	// ADMIN memberships cannot be removed; they must be demoted first.
	if err := svc.RemoveMember(context.Background(), 1, admin2.ID); !taskerr.IsNotAuthorized(err) {
		t.Fatalf("admin target: expected not-authorized, got %v", err)
	}
}

func TestRemoveMemberByAdmin(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	m, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleReadOnly})
	if err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	if err := svc.RemoveMember(context.Background(), 1, m.ID); err != nil {
		t.Fatalf("RemoveMember returned error: %v", err)
	}
	if _, err := memberships.FindByID(context.Background(), m.ID); !taskerr.IsNotFound(err) {
		t.Fatalf("expected membership gone, got %v", err)
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	team := mustTeam(t, svc, 1, "Platform")
	if _, err := memberships.Create(context.Background(), models.Membership{TeamID: team.ID, UserID: 2, Role: models.RoleReadOnly}); err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	members, err := svc.ListMembers(context.Background(), 2, team.ID)
	if err != nil {
		t.Fatalf("readonly member: expected allow, got %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	if _, err := svc.ListMembers(context.Background(), 9, team.ID); !taskerr.IsNotFound(err) {
		t.Fatalf("outsider: expected not-found, got %v", err)
	}
}

func TestListForUser(t *testing.T) {
	t.Parallel()

	_, memberships, svc := newFixture()
	a := mustTeam(t, svc, 1, "Platform")
	mustTeam(t, svc, 2, "Design")
	if _, err := memberships.Create(context.Background(), models.Membership{TeamID: a.ID, UserID: 3, Role: models.RoleReadOnly}); err != nil {
		t.Fatalf("failed to prepare membership: %v", err)
	}

	teams, err := svc.ListForUser(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != a.ID {
		t.Fatalf("expected only team %d, got %v", a.ID, teams)
	}
}

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

type MembershipStore struct {
	db *sql.DB
}

func NewMembershipStore(db *sql.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

func (s *MembershipStore) Find(ctx context.Context, userID, teamID int64) (models.Membership, error) {
	var m models.Membership
	query := `
		SELECT membership_id, team_id, user_id, role, joined_at, invited_by
		FROM memberships WHERE user_id = ? AND team_id = ?
	`
	err := s.db.QueryRowContext(ctx, query, userID, teamID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt, &m.InvitedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Membership{}, taskerr.NotFoundf("membership not found")
		}
		return models.Membership{}, err
	}
	return m, nil
}

func (s *MembershipStore) FindByID(ctx context.Context, id int64) (models.Membership, error) {
	var m models.Membership
	query := `
		SELECT membership_id, team_id, user_id, role, joined_at, invited_by
		FROM memberships WHERE membership_id = ?
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt, &m.InvitedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Membership{}, taskerr.NotFoundf("membership not found")
		}
		return models.Membership{}, err
	}
	return m, nil
}

func (s *MembershipStore) Create(ctx context.Context, m models.Membership) (models.Membership, error) {
	m.JoinedAt = time.Now().UTC()
	query := `
		INSERT INTO memberships (team_id, user_id, role, joined_at, invited_by)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, m.TeamID, m.UserID, m.Role, m.JoinedAt, m.InvitedBy)
	if err != nil {
		if isDuplicate(err) {
			return models.Membership{}, taskerr.Conflictf("the user is already a member of the team")
		}
		return models.Membership{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Membership{}, err
	}
	m.ID = id
	return m, nil
}

func (s *MembershipStore) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	result, err := s.db.ExecContext(ctx, `UPDATE memberships SET role = ? WHERE membership_id = ?`, role, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *MembershipStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM memberships WHERE membership_id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return taskerr.NotFoundf("membership not found")
	}
	return nil
}

func (s *MembershipStore) ListTeamMembers(ctx context.Context, teamID int64) ([]models.TeamMember, error) {
	query := `
		SELECT m.membership_id, u.user_id, u.email, u.first_name, u.last_name, m.role
		FROM memberships m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.team_id = ?
		ORDER BY m.joined_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.MembershipID, &m.UserID, &m.Email, &m.FirstName, &m.LastName, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

type TeamStore struct {
	db *sql.DB
}

func NewTeamStore(db *sql.DB) *TeamStore {
	return &TeamStore{db: db}
}

// CreateWithOwner inserts the team row and the owner's ADMIN membership in
// one transaction.
func (s *TeamStore) CreateWithOwner(ctx context.Context, t models.Team) (models.Team, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Team{}, err
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	now := time.Now().UTC()
	query := `
		INSERT INTO teams (team_name, description, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query, t.Name, t.Description, t.OwnerID, now, now)
	if err != nil {
		return models.Team{}, err
	}

	teamID, err := result.LastInsertId()
	if err != nil {
		return models.Team{}, err
	}

	query = `
		INSERT INTO memberships (team_id, user_id, role, joined_at, invited_by)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, teamID, t.OwnerID, models.RoleAdmin, now, t.OwnerID); err != nil {
		return models.Team{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Team{}, err
	}

	t.ID = teamID
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (s *TeamStore) GetByID(ctx context.Context, id int64) (models.Team, error) {
	var t models.Team
	query := `
		SELECT team_id, team_name, description, owner_id, created_at, updated_at
		FROM teams WHERE team_id = ?
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, taskerr.NotFoundf("team not found")
		}
		return models.Team{}, err
	}
	return t, nil
}

func (s *TeamStore) Update(ctx context.Context, id int64, name, description string) error {
	query := `UPDATE teams SET team_name = ?, description = ?, updated_at = ? WHERE team_id = ?`
	result, err := s.db.ExecContext(ctx, query, name, description, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either no such team, or nothing changed; distinguish by existence.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *TeamStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE team_id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return taskerr.NotFoundf("team not found")
	}
	return nil
}

func (s *TeamStore) ListForUser(ctx context.Context, userID int64) ([]models.Team, error) {
	query := `
		SELECT t.team_id, t.team_name, t.description, t.owner_id, t.created_at, t.updated_at
		FROM teams t
		JOIN memberships m ON t.team_id = m.team_id
		WHERE m.user_id = ?
		ORDER BY t.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

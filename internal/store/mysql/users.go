package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/store"
	"github.com/lribeiro/taskboard/internal/taskerr"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u models.User, passwordHash string) (models.User, error) {
	u.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO users (email, password, first_name, last_name, contact_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, u.Email, passwordHash, u.FirstName, u.LastName, u.ContactNumber, u.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, taskerr.Conflictf("email already registered")
		}
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.UserID = id
	u.Password = ""
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	query := `
		SELECT user_id, email, first_name, last_name, contact_number, created_at
		FROM users WHERE user_id = ?
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.UserID, &u.Email, &u.FirstName, &u.LastName, &u.ContactNumber, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, taskerr.NotFoundf("user not found")
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, string, error) {
	var u models.User
	var hash string
	query := `
		SELECT user_id, email, password, first_name, last_name, contact_number, created_at
		FROM users WHERE email = ?
	`
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.UserID, &u.Email, &hash, &u.FirstName, &u.LastName, &u.ContactNumber, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", taskerr.NotFoundf("user not found")
		}
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (s *UserStore) Update(ctx context.Context, id int64, p store.UserPatch) error {
	var sets []string
	var args []interface{}
	if p.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *p.FirstName)
	}
	if p.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *p.LastName)
	}
	if p.ContactNumber != nil {
		sets = append(sets, "contact_number = ?")
		args = append(args, *p.ContactNumber)
	}
	if p.PasswordHash != nil {
		sets = append(sets, "password = ?")
		args = append(args, *p.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return taskerr.NotFoundf("user not found")
	}
	return nil
}

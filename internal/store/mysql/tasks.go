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

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO tasks (team_id, title, description, status, priority, start_date, due_date, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		t.TeamID, t.Title, t.Description, t.Status, t.Priority,
		nullTime(t.StartDate), nullTime(t.DueDate), t.Position, now, now,
	)
	if err != nil {
		return models.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Task{}, err
	}
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

const taskColumns = `task_id, team_id, title, description, status, priority, start_date, due_date, position, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var description sql.NullString
	var startDate, dueDate sql.NullTime
	err := row.Scan(
		&t.ID, &t.TeamID, &t.Title, &description, &t.Status, &t.Priority,
		&startDate, &dueDate, &t.Position, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	t.Description = description.String
	if startDate.Valid {
		sd := startDate.Time
		t.StartDate = &sd
	}
	if dueDate.Valid {
		dd := dueDate.Time
		t.DueDate = &dd
	}
	return t, nil
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, taskerr.NotFoundf("task not found")
		}
		return models.Task{}, err
	}

	assignees, err := s.loadAssignees(ctx, []int64{t.ID})
	if err != nil {
		return models.Task{}, err
	}
	t.AssigneeIDs = assignees[t.ID]
	return t, nil
}

func (s *TaskStore) Update(ctx context.Context, id int64, p store.TaskPatch) error {
	var sets []string
	var args []interface{}
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *p.Priority)
	}
	if p.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *p.StartDate)
	}
	if p.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *p.DueDate)
	}
	if p.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *p.Position)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE task_id = ?"
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return taskerr.NotFoundf("task not found")
	}
	return nil
}

func (s *TaskStore) ListForTeam(ctx context.Context, teamID int64) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE team_id = ?
		ORDER BY position ASC, created_at ASC
	`
	return s.queryTasks(ctx, query, teamID)
}

func (s *TaskStore) ListForUserTeams(ctx context.Context, userID int64) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE team_id IN (SELECT team_id FROM memberships WHERE user_id = ?)
		ORDER BY due_date IS NULL, due_date ASC, created_at DESC
	`
	return s.queryTasks(ctx, query, userID)
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	var ids []int64
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignees, err := s.loadAssignees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].AssigneeIDs = assignees[tasks[i].ID]
	}
	return tasks, nil
}

func (s *TaskStore) loadAssignees(ctx context.Context, taskIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(taskIDs)), ",")
	args := make([]interface{}, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}

	query := `SELECT task_id, user_id FROM task_assignees WHERE task_id IN (` + placeholders + `) ORDER BY user_id ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, userID int64
		if err := rows.Scan(&taskID, &userID); err != nil {
			return nil, err
		}
		result[taskID] = append(result[taskID], userID)
	}
	return result, rows.Err()
}

func (s *TaskStore) AddAssignee(ctx context.Context, taskID, userID int64) error {
	// INSERT IGNORE keeps the add idempotent under the composite primary key.
	_, err := s.db.ExecContext(ctx, `INSERT IGNORE INTO task_assignees (task_id, user_id) VALUES (?, ?)`, taskID, userID)
	return err
}

func (s *TaskStore) RemoveAssignee(ctx context.Context, taskID, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ? AND user_id = ?`, taskID, userID)
	return err
}

func (s *TaskStore) MarkOverdueLateForTeam(ctx context.Context, teamID int64, now time.Time) (int64, error) {
	query := `
		UPDATE tasks SET status = ?, updated_at = ?
		WHERE team_id = ? AND due_date IS NOT NULL AND due_date < ? AND status NOT IN (?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		models.StatusLate, now, teamID, now, models.StatusDone, models.StatusLate,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *TaskStore) MarkOverdueLateForUserTeams(ctx context.Context, userID int64, now time.Time) (int64, error) {
	query := `
		UPDATE tasks t
		JOIN memberships m ON m.team_id = t.team_id AND m.user_id = ?
		SET t.status = ?, t.updated_at = ?
		WHERE t.due_date IS NOT NULL AND t.due_date < ? AND t.status NOT IN (?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		userID, models.StatusLate, now, now, models.StatusDone, models.StatusLate,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

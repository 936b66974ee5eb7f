package database

import (
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		contact_number VARCHAR(30) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		team_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		team_name VARCHAR(100) NOT NULL,
		description VARCHAR(500) NOT NULL DEFAULT '',
		owner_id BIGINT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (owner_id) REFERENCES users(user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS memberships (
		membership_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		team_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		role VARCHAR(10) NOT NULL,
		joined_at DATETIME NOT NULL,
		invited_by BIGINT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_memberships_team_user (team_id, user_id),
		FOREIGN KEY (team_id) REFERENCES teams(team_id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		team_id BIGINT NOT NULL,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		status VARCHAR(15) NOT NULL,
		priority VARCHAR(10) NOT NULL,
		start_date DATETIME NULL,
		due_date DATETIME NULL,
		position INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_tasks_team (team_id),
		FOREIGN KEY (team_id) REFERENCES teams(team_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS task_assignees (
		task_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		PRIMARY KEY (task_id, user_id),
		FOREIGN KEY (task_id) REFERENCES tasks(task_id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
	)`,
}

// EnsureSchema creates the tables on startup if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

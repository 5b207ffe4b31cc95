package repository

import (
	"context"
	"database/sql"

	"listpad/internal/models"
)

// PostgresTaskRepository implements task persistence using a PostgreSQL
// database. Ownership checks go through the parent list's user_id.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository with the
// given database connection.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// CreateTask inserts a task under the given list. sql.ErrNoRows is returned
// when the list does not exist or does not belong to the user.
func (r *PostgresTaskRepository) CreateTask(ctx context.Context, userID, listID int64, title string) (models.Task, error) {
	var t models.Task
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO tasks (list_id, title)
         SELECT $1, $2
          WHERE EXISTS (SELECT 1 FROM lists WHERE id = $1 AND user_id = $3)
         RETURNING id, list_id, title, created_at`,
		listID, title, userID,
	).Scan(&t.ID, &t.ListID, &t.Title, &t.CreatedAt)
	return t, err
}

// TasksByList returns all tasks of the list, in insertion order.
func (r *PostgresTaskRepository) TasksByList(ctx context.Context, userID, listID int64) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT t.id, t.list_id, t.title, t.created_at
           FROM tasks t
           JOIN lists l ON l.id = t.list_id
          WHERE t.list_id = $1 AND l.user_id = $2
          ORDER BY t.id`,
		listID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.ListID, &t.Title, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// TaskByID returns the task with the given id when its list belongs to the
// user. sql.ErrNoRows is returned otherwise.
func (r *PostgresTaskRepository) TaskByID(ctx context.Context, userID, taskID int64) (models.Task, error) {
	var t models.Task
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT t.id, t.list_id, t.title, t.created_at
           FROM tasks t
           JOIN lists l ON l.id = t.list_id
          WHERE t.id = $1 AND l.user_id = $2`,
		taskID, userID,
	).Scan(&t.ID, &t.ListID, &t.Title, &t.CreatedAt)
	return t, err
}

// UpdateTask retitles the task and returns the number of affected rows.
func (r *PostgresTaskRepository) UpdateTask(ctx context.Context, userID, taskID int64, title string) (int64, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE tasks SET title = $1
          WHERE id = $2
            AND list_id IN (SELECT id FROM lists WHERE user_id = $3)`,
		title, taskID, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteTask removes a single task and returns the number of deleted rows.
func (r *PostgresTaskRepository) DeleteTask(ctx context.Context, userID, taskID int64) (int64, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM tasks
          WHERE id = $1
            AND list_id IN (SELECT id FROM lists WHERE user_id = $2)`,
		taskID, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteTasksByList bulk-deletes every task under the list and returns the
// number of deleted rows.
func (r *PostgresTaskRepository) DeleteTasksByList(ctx context.Context, userID, listID int64) (int64, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM tasks
          WHERE list_id = $1
            AND list_id IN (SELECT id FROM lists WHERE user_id = $2)`,
		listID, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

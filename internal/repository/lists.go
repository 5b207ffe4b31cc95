package repository

import (
	"context"
	"database/sql"

	"listpad/internal/models"
)

// PostgresListRepository implements list persistence using a PostgreSQL database.
// Every query is scoped to the owning user.
type PostgresListRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresListRepository creates a new PostgresListRepository with the
// given database connection.
func NewPostgresListRepository(db *sql.DB) *PostgresListRepository {
	return &PostgresListRepository{DB: db}
}

// ListsByUser returns all lists owned by the user, in insertion order.
func (r *PostgresListRepository) ListsByUser(ctx context.Context, userID int64) ([]models.List, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, name FROM lists WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// ListByID returns the list with the given id when it belongs to the user.
// sql.ErrNoRows is returned otherwise.
func (r *PostgresListRepository) ListByID(ctx context.Context, userID, listID int64) (models.List, error) {
	var l models.List
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name FROM lists WHERE id = $1 AND user_id = $2`,
		listID, userID,
	).Scan(&l.ID, &l.Name)
	return l, err
}

// CreateList inserts a new list for the user and returns the created record.
func (r *PostgresListRepository) CreateList(ctx context.Context, userID int64, name string) (models.List, error) {
	var l models.List
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO lists (user_id, name) VALUES ($1, $2) RETURNING id, name`,
		userID, name,
	).Scan(&l.ID, &l.Name)
	return l, err
}

// UpdateList renames the list and returns the number of affected rows:
// 0 when the list does not exist or belongs to somebody else, 1 otherwise.
func (r *PostgresListRepository) UpdateList(ctx context.Context, userID, listID int64, name string) (int64, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE lists SET name = $1 WHERE id = $2 AND user_id = $3`,
		name, listID, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteList removes the list and, through the schema's cascade, its tasks.
// It returns the number of deleted lists.
func (r *PostgresListRepository) DeleteList(ctx context.Context, userID, listID int64) (int64, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM lists WHERE id = $1 AND user_id = $2`,
		listID, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

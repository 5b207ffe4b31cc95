// Package repository provides PostgreSQL persistence for users, lists and tasks.
package repository

import (
	"context"
	"database/sql"

	"listpad/internal/models"
)

// PostgresUserRepository implements user persistence using a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UserExists checks whether a user with the specified username exists.
func (r *PostgresUserRepository) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new user row and returns the created record.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
         RETURNING id, username, created_at, updated_at`,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UserByUsername returns the user record and password hash for a username.
// sql.ErrNoRows is returned when the user does not exist.
func (r *PostgresUserRepository) UserByUsername(ctx context.Context, username string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, created_at, updated_at
           FROM users
          WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &hash, &u.CreatedAt, &u.UpdatedAt)
	return u, hash, err
}

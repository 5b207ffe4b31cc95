package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserExists(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "existing user", exists: true},
		{name: "unknown user", exists: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`)).
				WithArgs("fu").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewPostgresUserRepository(db)
			got, err := repo.UserExists(context.Background(), "fu")
			if err != nil {
				t.Fatalf("UserExists failed: %v", err)
			}
			if got != tt.exists {
				t.Errorf("expected %v, got %v", tt.exists, got)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, password_hash)`)).
		WithArgs("fu", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at", "updated_at"}).
			AddRow(int64(7), "fu", now, now))

	repo := NewPostgresUserRepository(db)
	user, err := repo.CreateUser(context.Background(), "fu", "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID != 7 || user.Username != "fu" {
		t.Errorf("unexpected user %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at, updated_at`)).
		WithArgs("fu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(7), "fu", "hash", now, now))

	repo := NewPostgresUserRepository(db)
	user, hash, err := repo.UserByUsername(context.Background(), "fu")
	if err != nil {
		t.Fatalf("UserByUsername failed: %v", err)
	}
	if user.ID != 7 || hash != "hash" {
		t.Errorf("unexpected result user=%+v hash=%q", user, hash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserByUsername_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at, updated_at`)).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresUserRepository(db)
	_, _, err = repo.UserByUsername(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

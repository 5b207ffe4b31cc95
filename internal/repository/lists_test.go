package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListsByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM lists WHERE user_id = $1 ORDER BY id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Groceries").
			AddRow(int64(2), "Chores"))

	repo := NewPostgresListRepository(db)
	lists, err := repo.ListsByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListsByUser failed: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	if lists[0].Name != "Groceries" || lists[1].Name != "Chores" {
		t.Errorf("unexpected lists %+v", lists)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListsByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM lists WHERE user_id = $1 ORDER BY id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	repo := NewPostgresListRepository(db)
	lists, err := repo.ListsByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListsByUser failed: %v", err)
	}
	if lists == nil {
		t.Error("expected an empty slice, not nil, so the handler encodes []")
	}
	if len(lists) != 0 {
		t.Errorf("expected no lists, got %+v", lists)
	}
}

func TestListByID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM lists WHERE id = $1 AND user_id = $2`)).
		WithArgs(int64(42), int64(1)).
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresListRepository(db)
	_, err = repo.ListByID(context.Background(), 1, 42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestCreateList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO lists (user_id, name) VALUES ($1, $2) RETURNING id, name`)).
		WithArgs(int64(1), "Groceries").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(5), "Groceries"))

	repo := NewPostgresListRepository(db)
	list, err := repo.CreateList(context.Background(), 1, "Groceries")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if list.ID != 5 || list.Name != "Groceries" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestUpdateList_AffectedRows(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "owned list", affected: 1},
		{name: "foreign or missing list", affected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE lists SET name = $1 WHERE id = $2 AND user_id = $3`)).
				WithArgs("new name", int64(5), int64(1)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			repo := NewPostgresListRepository(db)
			n, err := repo.UpdateList(context.Background(), 1, 5, "new name")
			if err != nil {
				t.Fatalf("UpdateList failed: %v", err)
			}
			if n != tt.affected {
				t.Errorf("expected %d affected rows, got %d", tt.affected, n)
			}
		})
	}
}

func TestDeleteList_AffectedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM lists WHERE id = $1 AND user_id = $2`)).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresListRepository(db)
	n, err := repo.DeleteList(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted row, got %d", n)
	}
}

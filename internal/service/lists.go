package service

import (
	"context"
	"database/sql"
	"errors"

	"listpad/internal/models"
)

var (
	// ErrListNotFound is returned when a list does not exist for the user.
	ErrListNotFound = errors.New("list not found")
	// ErrTaskNotFound is returned when a task does not exist for the user.
	ErrTaskNotFound = errors.New("task not found")
)

// ListRepository defines the list persistence operations required by ListService.
type ListRepository interface {
	ListsByUser(ctx context.Context, userID int64) ([]models.List, error)
	ListByID(ctx context.Context, userID, listID int64) (models.List, error)
	CreateList(ctx context.Context, userID int64, name string) (models.List, error)
	UpdateList(ctx context.Context, userID, listID int64, name string) (int64, error)
	DeleteList(ctx context.Context, userID, listID int64) (int64, error)
}

// TaskRepository defines the task persistence operations required by ListService.
type TaskRepository interface {
	CreateTask(ctx context.Context, userID, listID int64, title string) (models.Task, error)
	TasksByList(ctx context.Context, userID, listID int64) ([]models.Task, error)
	TaskByID(ctx context.Context, userID, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, title string) (int64, error)
	DeleteTask(ctx context.Context, userID, taskID int64) (int64, error)
	DeleteTasksByList(ctx context.Context, userID, listID int64) (int64, error)
}

// ListService implements list and task operations by delegating to the
// repositories. Every call is scoped to the authenticated user.
type ListService struct {
	lists ListRepository
	tasks TaskRepository
}

// NewListService constructs a ListService using the provided repositories.
func NewListService(lists ListRepository, tasks TaskRepository) *ListService {
	return &ListService{lists: lists, tasks: tasks}
}

// Lists returns all lists of the user.
func (s *ListService) Lists(ctx context.Context, userID int64) ([]models.List, error) {
	return s.lists.ListsByUser(ctx, userID)
}

// List returns a single list. found is false when the list does not exist
// for this user.
func (s *ListService) List(ctx context.Context, userID, listID int64) (models.List, bool, error) {
	l, err := s.lists.ListByID(ctx, userID, listID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.List{}, false, nil
	}
	if err != nil {
		return models.List{}, false, err
	}
	return l, true, nil
}

// CreateList creates a list with the given name.
func (s *ListService) CreateList(ctx context.Context, userID int64, name string) (models.List, error) {
	return s.lists.CreateList(ctx, userID, name)
}

// UpdateList renames a list and returns the affected-row count.
func (s *ListService) UpdateList(ctx context.Context, userID, listID int64, name string) (int64, error) {
	return s.lists.UpdateList(ctx, userID, listID, name)
}

// DeleteList removes a list. Returns ErrListNotFound when nothing was deleted.
func (s *ListService) DeleteList(ctx context.Context, userID, listID int64) error {
	n, err := s.lists.DeleteList(ctx, userID, listID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrListNotFound
	}
	return nil
}

// CreateTask creates a task under a list. Returns ErrListNotFound when the
// list does not exist for this user.
func (s *ListService) CreateTask(ctx context.Context, userID, listID int64, title string) (models.Task, error) {
	t, err := s.tasks.CreateTask(ctx, userID, listID, title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrListNotFound
	}
	return t, err
}

// Tasks returns all tasks of a list.
func (s *ListService) Tasks(ctx context.Context, userID, listID int64) ([]models.Task, error) {
	return s.tasks.TasksByList(ctx, userID, listID)
}

// Task returns a single task. found is false when it does not exist for
// this user.
func (s *ListService) Task(ctx context.Context, userID, taskID int64) (models.Task, bool, error) {
	t, err := s.tasks.TaskByID(ctx, userID, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, false, nil
	}
	if err != nil {
		return models.Task{}, false, err
	}
	return t, true, nil
}

// UpdateTask retitles a task and returns the affected-row count.
func (s *ListService) UpdateTask(ctx context.Context, userID, taskID int64, title string) (int64, error) {
	return s.tasks.UpdateTask(ctx, userID, taskID, title)
}

// DeleteTask removes a single task. Returns ErrTaskNotFound when nothing was
// deleted.
func (s *ListService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	n, err := s.tasks.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteListTasks bulk-deletes every task of a list. Deleting tasks of an
// empty list is not an error.
func (s *ListService) DeleteListTasks(ctx context.Context, userID, listID int64) error {
	_, err := s.tasks.DeleteTasksByList(ctx, userID, listID)
	return err
}

// Package model holds the in-memory mirror of the logged-in user's lists and
// tasks. It is the single source of truth the view renders from; every
// mutation is announced on the embedded event bus.
package model

import (
	"errors"
	"fmt"

	"listpad/internal/event"
	"listpad/internal/models"
)

// Event names published by ListModel.
const (
	EventUserChanged = "userChanged"
	EventListAdded   = "listAdded"
	EventListUpdated = "listUpdated"
	EventListDeleted = "listDeleted"
	EventTaskAdded   = "taskAdded"
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
)

// ErrNotTracked is returned when updating or deleting a record the model does
// not currently hold. Tracking is by pointer identity, mirroring how records
// are mutated in place on rename.
var ErrNotTracked = errors.New("not tracked by the model")

// ListModel owns the list and task collections for the current session.
// It is not safe for concurrent use; all mutation happens on the event turn
// that triggered it.
type ListModel struct {
	event.Bus

	user  string
	lists []*models.List
	tasks []*models.Task
}

// New returns an empty ListModel.
func New() *ListModel {
	return &ListModel{}
}

// User returns the current username, or "" in the anonymous state.
func (m *ListModel) User() string {
	return m.user
}

// SetUser stores the username and publishes userChanged. An empty username
// represents logout.
func (m *ListModel) SetUser(user string) {
	m.user = user
	m.Publish(EventUserChanged, user)
}

// ListIDs returns the ids of all tracked lists, in insertion order.
func (m *ListModel) ListIDs() []int64 {
	ids := make([]int64, 0, len(m.lists))
	for _, l := range m.lists {
		ids = append(ids, l.ID)
	}
	return ids
}

// ListTasks returns the tracked tasks belonging to the list, in insertion
// order.
func (m *ListModel) ListTasks(listID int64) []*models.Task {
	var tasks []*models.Task
	for _, t := range m.tasks {
		if t.ListID == listID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// AddList appends a list and publishes listAdded.
func (m *ListModel) AddList(list *models.List) {
	m.lists = append(m.lists, list)
	m.Publish(EventListAdded, list)
}

// UpdateList publishes listUpdated for a list whose fields the caller has
// already mutated in place. Returns ErrNotTracked when the list is unknown.
func (m *ListModel) UpdateList(list *models.List) error {
	if m.indexOfList(list) == -1 {
		return fmt.Errorf("list %d: %w", list.ID, ErrNotTracked)
	}
	m.Publish(EventListUpdated, list)
	return nil
}

// DeleteList removes a list by reference and publishes listDeleted.
// Returns ErrNotTracked when the list is unknown.
func (m *ListModel) DeleteList(list *models.List) error {
	i := m.indexOfList(list)
	if i == -1 {
		return fmt.Errorf("list %d: %w", list.ID, ErrNotTracked)
	}
	m.lists = append(m.lists[:i], m.lists[i+1:]...)
	m.Publish(EventListDeleted, list)
	return nil
}

// AddTask appends a task and publishes taskAdded.
func (m *ListModel) AddTask(task *models.Task) {
	m.tasks = append(m.tasks, task)
	m.Publish(EventTaskAdded, task)
}

// UpdateTask publishes taskUpdated for a task whose fields the caller has
// already mutated in place. Returns ErrNotTracked when the task is unknown.
func (m *ListModel) UpdateTask(task *models.Task) error {
	if m.indexOfTask(task) == -1 {
		return fmt.Errorf("task %d: %w", task.ID, ErrNotTracked)
	}
	m.Publish(EventTaskUpdated, task)
	return nil
}

// DeleteTask removes a task by reference and publishes taskDeleted.
// Returns ErrNotTracked when the task is unknown.
func (m *ListModel) DeleteTask(task *models.Task) error {
	i := m.indexOfTask(task)
	if i == -1 {
		return fmt.Errorf("task %d: %w", task.ID, ErrNotTracked)
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	m.Publish(EventTaskDeleted, task)
	return nil
}

// ClearTasks publishes taskDeleted once per tracked task, in collection
// order, then empties the collection.
func (m *ListModel) ClearTasks() {
	for _, t := range m.tasks {
		m.Publish(EventTaskDeleted, t)
	}
	m.tasks = nil
}

// ClearLists publishes listDeleted once per tracked list, in collection
// order, then empties the collection.
func (m *ListModel) ClearLists() {
	for _, l := range m.lists {
		m.Publish(EventListDeleted, l)
	}
	m.lists = nil
}

func (m *ListModel) indexOfList(list *models.List) int {
	for i, l := range m.lists {
		if l == list {
			return i
		}
	}
	return -1
}

func (m *ListModel) indexOfTask(task *models.Task) int {
	for i, t := range m.tasks {
		if t == task {
			return i
		}
	}
	return -1
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"listpad/internal/middleware"
	"listpad/internal/models"
	"listpad/internal/service"
)

// TasksService defines the interface for task operations required by the
// HTTP handlers.
type TasksService interface {
	CreateTask(ctx context.Context, userID, listID int64, title string) (models.Task, error)
	Tasks(ctx context.Context, userID, listID int64) ([]models.Task, error)
	Task(ctx context.Context, userID, taskID int64) (models.Task, bool, error)
	UpdateTask(ctx context.Context, userID, taskID int64, title string) (int64, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
	DeleteListTasks(ctx context.Context, userID, listID int64) error
}

// TaskHandler handles HTTP requests for task CRUD.
type TaskHandler struct {
	// TasksService performs the underlying task operations.
	TasksService TasksService
}

// taskCreateRequest represents the JSON payload for task creation.
// Field names follow the wire format: "idlist" and "task".
type taskCreateRequest struct {
	ListID int64  `json:"idlist"`
	Title  string `json:"task"`
}

// taskUpdateRequest represents the JSON payload for a task retitle.
type taskUpdateRequest struct {
	Title string `json:"task"`
}

// Create handles POST /tasks and responds with 201 and the created task.
// 404 is returned when the target list does not exist for this user.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.ListID == 0 {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	task, err := h.TasksService.CreateTask(r.Context(), userID, req.ListID, req.Title)
	if errors.Is(err, service.ErrListNotFound) {
		http.Error(w, "list not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// ByList handles GET /list/tasks/{listID} and responds with the array of the
// list's tasks, possibly empty.
func (h *TaskHandler) ByList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	listID, err := pathID(r, "listID")
	if err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	tasks, err := h.TasksService.Tasks(r.Context(), userID, listID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}. The response is the task payload, or an empty
// body when the task does not exist, matching the shape the historical API
// exposed.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	taskID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	task, found, err := h.TasksService.Task(r.Context(), userID, taskID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}. The response is a one-element array holding
// the affected-row count.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	taskID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	affected, err := h.TasksService.UpdateTask(r.Context(), userID, taskID, req.Title)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, []int64{affected})
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	taskID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	err = h.TasksService.DeleteTask(r.Context(), userID, taskID)
	if errors.Is(err, service.ErrTaskNotFound) {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteByList handles DELETE /list/tasks/{listID}, bulk-deleting every task
// of the list. It responds with 200 explicitly because clients treat that
// status as the success contract for this endpoint.
func (h *TaskHandler) DeleteByList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	listID, err := pathID(r, "listID")
	if err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	if err := h.TasksService.DeleteListTasks(r.Context(), userID, listID); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

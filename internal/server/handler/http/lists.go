package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"listpad/internal/middleware"
	"listpad/internal/models"
	"listpad/internal/service"
)

// ListsService defines the interface for list operations required by the
// HTTP handlers.
type ListsService interface {
	Lists(ctx context.Context, userID int64) ([]models.List, error)
	List(ctx context.Context, userID, listID int64) (models.List, bool, error)
	CreateList(ctx context.Context, userID int64, name string) (models.List, error)
	UpdateList(ctx context.Context, userID, listID int64, name string) (int64, error)
	DeleteList(ctx context.Context, userID, listID int64) error
}

// ListHandler handles HTTP requests for list CRUD.
type ListHandler struct {
	// ListsService performs the underlying list operations.
	ListsService ListsService
}

// listRequest represents the JSON payload for list creation and rename.
type listRequest struct {
	Name string `json:"name"`
}

// List handles GET /list and responds with the array of the user's lists.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	lists, err := h.ListsService.Lists(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

// Get handles GET /list/{id}. The response is an array holding zero or one
// list payloads, matching the shape the historical API exposed.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	listID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	list, found, err := h.ListsService.List(r.Context(), userID, listID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	result := []models.List{}
	if found {
		result = append(result, list)
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /list and responds with 201 and the created list.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	list, err := h.ListsService.CreateList(r.Context(), userID, req.Name)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, list)
}

// Update handles PUT /list/{id}. The response is a one-element array holding
// the affected-row count, matching the shape the historical API exposed.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	listID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	affected, err := h.ListsService.UpdateList(r.Context(), userID, listID, req.Name)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, []int64{affected})
}

// Delete handles DELETE /list/{id}. Malformed ids are rejected with 400
// rather than the 202 the historical API was known to return.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	listID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	err = h.ListsService.DeleteList(r.Context(), userID, listID)
	if errors.Is(err, service.ErrListNotFound) {
		http.Error(w, "list not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a numeric id from the chi route parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

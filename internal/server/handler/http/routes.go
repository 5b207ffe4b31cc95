package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"listpad/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the list API.
// It applies JSON content-type enforcement and request logging, and mounts
// bearer-token authentication on everything except registration and login.
//
// Routes:
//
//	POST   /users                  → authHandler.Register
//	POST   /users/login            → authHandler.Login
//	GET    /list                   → listHandler.List
//	POST   /list                   → listHandler.Create
//	GET    /list/{id}              → listHandler.Get
//	PUT    /list/{id}              → listHandler.Update
//	DELETE /list/{id}              → listHandler.Delete
//	GET    /list/tasks/{listID}    → taskHandler.ByList
//	DELETE /list/tasks/{listID}    → taskHandler.DeleteByList
//	POST   /tasks                  → taskHandler.Create
//	GET    /tasks/{id}             → taskHandler.Get
//	PUT    /tasks/{id}             → taskHandler.Update
//	DELETE /tasks/{id}             → taskHandler.Delete
func NewRouter(
	authHandler *AuthHandler,
	listHandler *ListHandler,
	taskHandler *TaskHandler,
	logger *zap.Logger,
	secret []byte,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Post("/users", authHandler.Register)
	r.Post("/users/login", authHandler.Login)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(secret))

		r.Get("/list", listHandler.List)
		r.Post("/list", listHandler.Create)
		r.Get("/list/{id}", listHandler.Get)
		r.Put("/list/{id}", listHandler.Update)
		r.Delete("/list/{id}", listHandler.Delete)

		r.Get("/list/tasks/{listID}", taskHandler.ByList)
		r.Delete("/list/tasks/{listID}", taskHandler.DeleteByList)

		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Put("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return r
}

// Package models defines the core data structures for users, lists and tasks.
// JSON tags follow the wire format of the remote list API.
package models

import "time"

// User represents an application user as returned by the registration endpoint.
type User struct {
	// ID is the server-assigned identifier of the user.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last modification timestamp.
	UpdatedAt time.Time `json:"updatedAt"`
}

// List is a named collection of tasks owned by a user.
type List struct {
	// ID is the server-assigned identifier of the list.
	ID int64 `json:"id"`
	// Name is the display name of the list. It is mutated in place on rename.
	Name string `json:"name"`
}

// Task is a single to-do item belonging to exactly one list.
type Task struct {
	// ID is the server-assigned identifier of the task.
	ID int64 `json:"id"`
	// ListID references the parent list. The wire name is "idlist".
	ListID int64 `json:"idlist"`
	// Title is the task text. The wire name is "task".
	Title string `json:"task"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

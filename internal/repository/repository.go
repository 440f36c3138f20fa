package repository

import (
	"context"

	"github.com/cirocosta/offmychest/internal/model"
)

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// FindAll returns all todos
	FindAll(ctx context.Context) ([]model.Todo, error)

	// Create adds a new todo, assigning its ID
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)

	// Delete removes a todo, returning ErrTodoNotFound if there is none
	Delete(ctx context.Context, id string) error
}

// ThoughtRepository defines the interface for thought data access
type ThoughtRepository interface {
	// FindAll returns all thoughts
	FindAll(ctx context.Context) ([]model.Thought, error)

	// Create adds a new thought, assigning its ID if empty
	Create(ctx context.Context, thought model.Thought) (model.Thought, error)
}

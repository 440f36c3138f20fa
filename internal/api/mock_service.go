package api

import (
	"context"

	"github.com/cirocosta/offmychest/internal/model"
)

// NoopTodoService is a TodoService that does nothing and is used solely for
// OpenAPI documentation generation
type NoopTodoService struct{}

// ListTodos implements TodoService
func (NoopTodoService) ListTodos(ctx context.Context) ([]model.Todo, error) {
	return nil, nil
}

// CreateTodo implements TodoService
func (NoopTodoService) CreateTodo(ctx context.Context, req model.TodoDTO) (model.Todo, error) {
	return model.Todo{}, nil
}

// DeleteTodo implements TodoService
func (NoopTodoService) DeleteTodo(ctx context.Context, id string) error {
	return nil
}

// NoopThoughtService is the ThoughtService counterpart of NoopTodoService
type NoopThoughtService struct{}

// ListThoughts implements ThoughtService
func (NoopThoughtService) ListThoughts(ctx context.Context) ([]model.Thought, error) {
	return nil, nil
}

// CreateThought implements ThoughtService
func (NoopThoughtService) CreateThought(ctx context.Context, req model.ThoughtDTO) (model.Thought, error) {
	return model.Thought{}, nil
}

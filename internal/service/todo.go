// package service implements business logic for the application
package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/repository"
)

// SeedTitles are the titles a development seed todo is drawn from
var SeedTitles = []string{
	"Eat bananas",
	"Read a book",
	"Go for a walk",
	"Write some code",
	"Cook dinner",
}

// TodoService handles business logic for todo operations
type TodoService struct {
	repo repository.TodoRepository
	seed bool
	pick func(titles []string) string
}

// NewTodoService creates a new todo service with the given repository. When
// seed is true every listing first inserts a random todo, which is only
// meant for development.
func NewTodoService(repo repository.TodoRepository, seed bool) *TodoService {
	return &TodoService{
		repo: repo,
		seed: seed,
		pick: func(titles []string) string {
			return titles[rand.IntN(len(titles))]
		},
	}
}

// ListTodos returns all todos
func (s *TodoService) ListTodos(ctx context.Context) ([]model.Todo, error) {
	if s.seed {
		if _, err := s.repo.Create(ctx, model.Todo{Title: s.pick(SeedTitles)}); err != nil {
			return nil, fmt.Errorf("seed todo: %w", err)
		}
	}

	return s.repo.FindAll(ctx)
}

// CreateTodo creates a new todo; the title is not validated
func (s *TodoService) CreateTodo(ctx context.Context, req model.TodoDTO) (model.Todo, error) {
	return s.repo.Create(ctx, req.ToModel())
}

// DeleteTodo deletes a todo. Ids that are not UUIDs cannot exist and are
// reported as not found.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrTodoNotFound{ID: id}
	}

	return s.repo.Delete(ctx, id)
}

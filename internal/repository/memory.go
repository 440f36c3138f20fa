package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/cirocosta/offmychest/internal/model"
)

// InMemoryTodoRepository implements TodoRepository with an in-memory map
type InMemoryTodoRepository struct {
	todos map[string]model.Todo
	order []string
	mutex sync.RWMutex
}

// NewInMemoryTodoRepository creates an empty in-memory todo repository
func NewInMemoryTodoRepository() *InMemoryTodoRepository {
	return &InMemoryTodoRepository{
		todos: make(map[string]model.Todo),
	}
}

// FindAll returns all todos in insertion order
func (r *InMemoryTodoRepository) FindAll(ctx context.Context) ([]model.Todo, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	todos := make([]model.Todo, 0, len(r.order))
	for _, id := range r.order {
		todos = append(todos, r.todos[id])
	}

	return todos, nil
}

// Create adds a new todo
func (r *InMemoryTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	todo.ID = uuid.NewString()
	r.todos[todo.ID] = todo
	r.order = append(r.order, todo.ID)

	return todo, nil
}

// Delete removes a todo
func (r *InMemoryTodoRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.todos[id]; !exists {
		return ErrTodoNotFound{ID: id}
	}

	delete(r.todos, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

// InMemoryThoughtRepository implements ThoughtRepository with an in-memory slice
type InMemoryThoughtRepository struct {
	thoughts []model.Thought
	mutex    sync.RWMutex
}

// NewInMemoryThoughtRepository creates an empty in-memory thought repository
func NewInMemoryThoughtRepository() *InMemoryThoughtRepository {
	return &InMemoryThoughtRepository{}
}

// FindAll returns all thoughts in insertion order
func (r *InMemoryThoughtRepository) FindAll(ctx context.Context) ([]model.Thought, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return slices.Clone(r.thoughts), nil
}

// Create adds a new thought
func (r *InMemoryThoughtRepository) Create(ctx context.Context, thought model.Thought) (model.Thought, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if thought.ID == "" {
		thought.ID = uuid.NewString()
	}
	r.thoughts = append(r.thoughts, thought)

	return thought, nil
}

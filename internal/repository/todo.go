package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/cirocosta/offmychest/internal/model"
)

const todosTable = "todos"

// todoRow maps a todo to its columns
type todoRow struct {
	ID    string `db:"id"`
	Title string `db:"title"`
}

func (r todoRow) toModel() model.Todo {
	return model.Todo{ID: r.ID, Title: r.Title}
}

// SQLTodoRepository implements TodoRepository on top of a SQL database
type SQLTodoRepository struct {
	db *DB
}

// NewSQLTodoRepository creates a todo repository backed by db
func NewSQLTodoRepository(db *DB) *SQLTodoRepository {
	return &SQLTodoRepository{db: db}
}

// FindAll returns all todos
func (r *SQLTodoRepository) FindAll(ctx context.Context) ([]model.Todo, error) {
	query, args, err := squirrel.Select("id", "title").
		From(todosTable).
		PlaceholderFormat(r.db.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list todos query: %w", err)
	}

	var rows []todoRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]model.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toModel())
	}

	return todos, nil
}

// Create inserts a todo with a freshly generated ID
func (r *SQLTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	row := todoRow{ID: uuid.NewString(), Title: todo.Title}

	query, args, err := squirrel.Insert(todosTable).
		Columns("id", "title").
		Values(row.ID, row.Title).
		PlaceholderFormat(r.db.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return model.Todo{}, fmt.Errorf("build create todo query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	return row.toModel(), nil
}

// Delete removes the todo with the given ID
func (r *SQLTodoRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.Delete(todosTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(r.db.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete todo query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	if affected == 0 {
		return ErrTodoNotFound{ID: id}
	}

	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/cirocosta/offmychest/internal/model"
)

const thoughtsTable = "thoughts"

// thoughtRow maps a thought to its columns; antidote and inserted_at are nullable
type thoughtRow struct {
	ID         string     `db:"id"`
	Text       string     `db:"text"`
	Antidote   *string    `db:"antidote"`
	InsertedAt *time.Time `db:"inserted_at"`
}

func (r thoughtRow) toModel() model.Thought {
	return model.Thought{
		ID:         r.ID,
		Text:       r.Text,
		Antidote:   r.Antidote,
		InsertedAt: r.InsertedAt,
	}
}

// SQLThoughtRepository implements ThoughtRepository on top of a SQL database
type SQLThoughtRepository struct {
	db *DB
}

// NewSQLThoughtRepository creates a thought repository backed by db
func NewSQLThoughtRepository(db *DB) *SQLThoughtRepository {
	return &SQLThoughtRepository{db: db}
}

// FindAll returns all thoughts
func (r *SQLThoughtRepository) FindAll(ctx context.Context) ([]model.Thought, error) {
	query, args, err := squirrel.Select("id", "text", "antidote", "inserted_at").
		From(thoughtsTable).
		PlaceholderFormat(r.db.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list thoughts query: %w", err)
	}

	var rows []thoughtRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
	}

	thoughts := make([]model.Thought, 0, len(rows))
	for _, row := range rows {
		thoughts = append(thoughts, row.toModel())
	}

	return thoughts, nil
}

// Create inserts a thought, generating an ID when the caller did not pick one
func (r *SQLThoughtRepository) Create(ctx context.Context, thought model.Thought) (model.Thought, error) {
	row := thoughtRow{
		ID:         thought.ID,
		Text:       thought.Text,
		Antidote:   thought.Antidote,
		InsertedAt: thought.InsertedAt,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	query, args, err := squirrel.Insert(thoughtsTable).
		Columns("id", "text", "antidote", "inserted_at").
		Values(row.ID, row.Text, row.Antidote, row.InsertedAt).
		PlaceholderFormat(r.db.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return model.Thought{}, fmt.Errorf("build create thought query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Thought{}, fmt.Errorf("create thought: %w", err)
	}

	return row.toModel(), nil
}

package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
)

const migrationsTable = "schema_migrations"

// Migration is a named, reversible schema change
type Migration struct {
	Name string
	Up   func(d Dialect) string
	Down func(d Dialect) string
}

// Migrations lists the schema of the application in the order it is applied
var Migrations = []Migration{
	{
		Name: "create_todo",
		Up: func(d Dialect) string {
			return fmt.Sprintf(`CREATE TABLE todos (
	id %s PRIMARY KEY,
	title TEXT NOT NULL
)`, d.IDType)
		},
		Down: func(d Dialect) string { return "DROP TABLE todos" },
	},
	{
		Name: "create_thought",
		Up: func(d Dialect) string {
			return fmt.Sprintf(`CREATE TABLE thoughts (
	id %s PRIMARY KEY,
	text TEXT NOT NULL,
	antidote TEXT,
	inserted_at %s
)`, d.IDType, d.TimeType)
		},
		Down: func(d Dialect) string { return "DROP TABLE thoughts" },
	},
}

// Migrator applies and reverts migrations, recording them in schema_migrations
type Migrator struct {
	db         *DB
	migrations []Migration
	logger     *slog.Logger
	now        func() time.Time
}

// NewMigrator creates a migrator for the given migrations
func NewMigrator(db *DB, migrations []Migration, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Migrator{
		db:         db,
		migrations: migrations,
		logger:     logger.With("component", "migration"),
		now:        time.Now,
	}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	name TEXT PRIMARY KEY,
	applied_at %s NOT NULL
)`, migrationsTable, m.db.Dialect.TimeType)

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", migrationsTable, err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	query, args, err := squirrel.Select("name").
		From(migrationsTable).
		PlaceholderFormat(m.db.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build applied migrations query: %w", err)
	}

	var names []string
	if err := m.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the names of the ones applied
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, migration := range m.migrations {
		if applied[migration.Name] {
			continue
		}

		record, args, err := squirrel.Insert(migrationsTable).
			Columns("name", "applied_at").
			Values(migration.Name, m.now().UTC()).
			PlaceholderFormat(m.db.Dialect.Placeholder).
			ToSql()
		if err != nil {
			return done, fmt.Errorf("build record for migration %s: %w", migration.Name, err)
		}

		if err := m.inTx(ctx, migration.Up(m.db.Dialect), record, args); err != nil {
			return done, fmt.Errorf("apply migration %s: %w", migration.Name, err)
		}

		m.logger.Info("applied migration", "name", migration.Name)
		done = append(done, migration.Name)
	}

	return done, nil
}

// Revert undoes the most recently applied migration. It returns an empty
// name when nothing is applied.
func (m *Migrator) Revert(ctx context.Context) (string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return "", err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return "", err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if !applied[migration.Name] {
			continue
		}

		record, args, err := squirrel.Delete(migrationsTable).
			Where(squirrel.Eq{"name": migration.Name}).
			PlaceholderFormat(m.db.Dialect.Placeholder).
			ToSql()
		if err != nil {
			return "", fmt.Errorf("build record for migration %s: %w", migration.Name, err)
		}

		if err := m.inTx(ctx, migration.Down(m.db.Dialect), record, args); err != nil {
			return "", fmt.Errorf("revert migration %s: %w", migration.Name, err)
		}

		m.logger.Info("reverted migration", "name", migration.Name)
		return migration.Name, nil
	}

	return "", nil
}

// inTx runs the schema statement and its bookkeeping statement atomically
func (m *Migrator) inTx(ctx context.Context, schema, record string, args []any) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirocosta/offmychest/internal/model"
)

func newMockDB(t *testing.T, dialect Dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDB(sqlx.NewDb(db, dialect.DriverName), dialect), mock
}

func TestSQLTodoRepositoryFindAll(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t, SQLite)
	repo := NewSQLTodoRepository(db)

	mock.ExpectQuery(`SELECT id, title FROM todos`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("1", "Eat bananas").
			AddRow("2", "Buy milk"))

	todos, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{
		{ID: "1", Title: "Eat bananas"},
		{ID: "2", Title: "Buy milk"},
	}, todos)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTodoRepositoryFindAllError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t, SQLite)
	repo := NewSQLTodoRepository(db)

	mock.ExpectQuery(`SELECT id, title FROM todos`).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list todos")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTodoRepositoryCreate(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		dialect Dialect
		query   string
	}{
		"sqlite":   {dialect: SQLite, query: `INSERT INTO todos \(id,title\) VALUES \(\?,\?\)`},
		"postgres": {dialect: Postgres, query: `INSERT INTO todos \(id,title\) VALUES \(\$1,\$2\)`},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t, tc.dialect)
			repo := NewSQLTodoRepository(db)

			mock.ExpectExec(tc.query).
				WithArgs(sqlmock.AnyArg(), "Buy milk").
				WillReturnResult(sqlmock.NewResult(1, 1))

			todo, err := repo.Create(context.Background(), model.Todo{Title: "Buy milk"})
			require.NoError(t, err)
			assert.NotEmpty(t, todo.ID)
			assert.Equal(t, "Buy milk", todo.Title)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLTodoRepositoryDelete(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		setupMock func(m sqlmock.Sqlmock)
		wantErr   error
	}{
		"deleted": {
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`DELETE FROM todos WHERE id = \?`).
					WithArgs("123").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		"not found": {
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectExec(`DELETE FROM todos WHERE id = \?`).
					WithArgs("123").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrTodoNotFound{ID: "123"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t, SQLite)
			repo := NewSQLTodoRepository(db)
			tc.setupMock(mock)

			err := repo.Delete(context.Background(), "123")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLTodoRepositoryDeleteStorageError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t, SQLite)
	repo := NewSQLTodoRepository(db)

	mock.ExpectExec(`DELETE FROM todos WHERE id = \?`).
		WithArgs("123").
		WillReturnError(errors.New("database is locked"))

	err := repo.Delete(context.Background(), "123")
	require.Error(t, err)

	var notFound ErrTodoNotFound
	assert.False(t, errors.As(err, &notFound))

	require.NoError(t, mock.ExpectationsWereMet())
}

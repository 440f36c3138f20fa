package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/repository"
)

// mockThoughtRepository is a mock implementation of repository.ThoughtRepository
type mockThoughtRepository struct {
	mock.Mock
}

func (m *mockThoughtRepository) FindAll(ctx context.Context) ([]model.Thought, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Thought), args.Error(1)
}

func (m *mockThoughtRepository) Create(ctx context.Context, thought model.Thought) (model.Thought, error) {
	args := m.Called(ctx, thought)
	return args.Get(0).(model.Thought), args.Error(1)
}

func TestCreateThought(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	backdated := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	empty := ""
	tea := "tea"

	for name, tc := range map[string]struct {
		req           model.ThoughtDTO
		setupMock     func(m *mockThoughtRepository)
		wantField     string
		wantMessage   string
		wantStoreFail bool
	}{
		"stores with defaults": {
			req: model.ThoughtDTO{Text: "heavy", Antidote: &empty},
			setupMock: func(m *mockThoughtRepository) {
				m.On("Create", mock.Anything, model.Thought{Text: "heavy", InsertedAt: &now}).
					Return(model.Thought{ID: "1", Text: "heavy", InsertedAt: &now}, nil)
			},
		},
		"stores caller values": {
			req: model.ThoughtDTO{Text: "heavy", Antidote: &tea, InsertedAt: &backdated},
			setupMock: func(m *mockThoughtRepository) {
				m.On("Create", mock.Anything, model.Thought{Text: "heavy", Antidote: &tea, InsertedAt: &backdated}).
					Return(model.Thought{ID: "1", Text: "heavy", Antidote: &tea, InsertedAt: &backdated}, nil)
			},
		},
		"empty text": {
			req:         model.ThoughtDTO{Text: "", Antidote: &tea},
			setupMock:   func(m *mockThoughtRepository) {},
			wantField:   "text",
			wantMessage: ThoughtTextRequired,
		},
		"empty text and bad id": {
			req:         model.ThoughtDTO{ID: "nope"},
			setupMock:   func(m *mockThoughtRepository) {},
			wantField:   "text",
			wantMessage: ThoughtTextRequired,
		},
		"bad id": {
			req:         model.ThoughtDTO{ID: "nope", Text: "heavy"},
			setupMock:   func(m *mockThoughtRepository) {},
			wantField:   "id",
			wantMessage: `"nope" is not a valid UUID`,
		},
		"storage error": {
			req: model.ThoughtDTO{Text: "heavy"},
			setupMock: func(m *mockThoughtRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(model.Thought{}, errors.New("database error"))
			},
			wantStoreFail: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo := new(mockThoughtRepository)
			tc.setupMock(repo)

			svc := NewThoughtService(repo)
			svc.now = func() time.Time { return now }

			_, err := svc.CreateThought(context.Background(), tc.req)

			switch {
			case tc.wantField != "":
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tc.wantField, validationErr.Field)
				assert.Equal(t, tc.wantMessage, validationErr.Message)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tc.wantStoreFail:
				require.Error(t, err)
				var validationErr *ValidationError
				assert.False(t, errors.As(err, &validationErr))
			default:
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCreatedThoughtIsListed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewThoughtService(repository.NewInMemoryThoughtRepository())

	before := time.Now()
	_, err := svc.CreateThought(ctx, model.ThoughtDTO{Text: "the build is red"})
	require.NoError(t, err)
	_, err = svc.CreateThought(ctx, model.ThoughtDTO{Text: ""})
	require.Error(t, err)

	thoughts, err := svc.ListThoughts(ctx)
	require.NoError(t, err)
	require.Len(t, thoughts, 1)
	assert.Equal(t, "the build is red", thoughts[0].Text)
	require.NotNil(t, thoughts[0].InsertedAt)
	assert.WithinDuration(t, before, *thoughts[0].InsertedAt, 5*time.Second)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/service"
	"github.com/cirocosta/offmychest/internal/view"
)

// mockThoughtService is a mock implementation of ThoughtService
type mockThoughtService struct {
	mock.Mock
}

func (m *mockThoughtService) ListThoughts(ctx context.Context) ([]model.Thought, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Thought), args.Error(1)
}

func (m *mockThoughtService) CreateThought(ctx context.Context, req model.ThoughtDTO) (model.Thought, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Thought), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestIndex(t *testing.T) {
	t.Parallel()

	thoughts := []model.Thought{{ID: "1", Text: "heavy", Antidote: ptr("tea")}}

	mockService := new(mockThoughtService)
	mockService.On("ListThoughts", mock.Anything).Return(thoughts, nil)
	views := &recordingRenderer{}

	handler := NewThoughtHandler(mockService, views, discardLogger)
	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, view.Index, views.name)

	want := model.ThoughtListView{Title: "All todos!", Thoughts: thoughts}
	if diff := cmp.Diff(want, views.data); diff != "" {
		t.Errorf("view data mismatch (-want +got):\n%s", diff)
	}
	mockService.AssertExpectations(t)
}

func TestIndexServiceError(t *testing.T) {
	t.Parallel()

	mockService := new(mockThoughtService)
	mockService.On("ListThoughts", mock.Anything).Return([]model.Thought(nil), errors.New("database error"))
	views := &recordingRenderer{}

	handler := NewThoughtHandler(mockService, views, discardLogger)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.Index(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error listing thoughts\n", rec.Body.String())
	assert.Empty(t, views.name)
}

func TestCreateThought(t *testing.T) {
	t.Parallel()

	backdated := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	validationErr := &service.ValidationError{Field: "text", Message: service.ThoughtTextRequired}

	for name, tc := range map[string]struct {
		contentType  string
		accept       string
		body         string
		setupMock    func(m *mockThoughtService)
		wantStatus   int
		wantLocation string
		wantErr      string
		wantView     *model.ThoughtListView
	}{
		"form": {
			contentType: "application/x-www-form-urlencoded",
			body:        "text=heavy&antidote=tea",
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, model.ThoughtDTO{Text: "heavy", Antidote: ptr("tea")}).
					Return(model.Thought{ID: "1", Text: "heavy"}, nil)
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		"form with empty optional fields": {
			contentType: "application/x-www-form-urlencoded",
			body:        "text=heavy&antidote=&insertedAt=",
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, mock.MatchedBy(func(dto model.ThoughtDTO) bool {
					return dto.Text == "heavy" &&
						dto.Antidote != nil && *dto.Antidote == "" &&
						(dto.InsertedAt == nil || dto.InsertedAt.IsZero())
				})).Return(model.Thought{ID: "1", Text: "heavy"}, nil)
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		"form with timestamp": {
			contentType: "application/x-www-form-urlencoded",
			body:        "text=heavy&insertedAt=2020-01-02T03%3A04%3A05Z",
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, model.ThoughtDTO{Text: "heavy", InsertedAt: &backdated}).
					Return(model.Thought{ID: "1", Text: "heavy"}, nil)
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		"json": {
			contentType: "application/json",
			body:        `{"text": "heavy", "insertedAt": "2020-01-02T03:04:05Z"}`,
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, model.ThoughtDTO{Text: "heavy", InsertedAt: &backdated}).
					Return(model.Thought{ID: "1", Text: "heavy"}, nil)
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		"malformed timestamp": {
			contentType: "application/x-www-form-urlencoded",
			body:        "text=heavy&insertedAt=yesterday",
			setupMock:   func(m *mockThoughtService) {},
			wantStatus:  http.StatusBadRequest,
			wantErr:     "invalid request body",
		},
		"validation error for api client": {
			contentType: "application/json",
			accept:      "application/json",
			body:        `{"text": ""}`,
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, model.ThoughtDTO{}).Return(model.Thought{}, validationErr)
			},
			wantStatus: http.StatusBadRequest,
			wantErr:    "You need to provide something to get off your chest!",
		},
		"validation error for browser": {
			contentType: "application/x-www-form-urlencoded",
			accept:      "text/html,application/xhtml+xml",
			body:        "text=",
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, model.ThoughtDTO{}).Return(model.Thought{}, validationErr)
				m.On("ListThoughts", mock.Anything).Return([]model.Thought{{ID: "1", Text: "old"}}, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantView: &model.ThoughtListView{
				Title:           "All todos!",
				Thoughts:        []model.Thought{{ID: "1", Text: "old"}},
				ValidationError: "You need to provide something to get off your chest!",
			},
		},
		"service error": {
			contentType: "application/json",
			body:        `{"text": "heavy"}`,
			setupMock: func(m *mockThoughtService) {
				m.On("CreateThought", mock.Anything, model.ThoughtDTO{Text: "heavy"}).
					Return(model.Thought{}, errors.New("database error"))
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "error creating thought",
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mockService := new(mockThoughtService)
			tc.setupMock(mockService)
			views := &recordingRenderer{}

			handler := NewThoughtHandler(mockService, views, discardLogger)
			req := httptest.NewRequest(http.MethodPost, "/thoughts", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			rec := httptest.NewRecorder()

			handler.CreateThought(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			mockService.AssertExpectations(t)

			switch {
			case tc.wantErr != "":
				var errResp model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tc.wantErr, errResp.Error)

			case tc.wantView != nil:
				assert.Equal(t, view.Index, views.name)
				assert.Equal(t, http.StatusBadRequest, views.status)
				if diff := cmp.Diff(*tc.wantView, views.data); diff != "" {
					t.Errorf("view data mismatch (-want +got):\n%s", diff)
				}

			default:
				assert.Equal(t, tc.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

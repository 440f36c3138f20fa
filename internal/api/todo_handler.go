package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/repository"
	"github.com/cirocosta/offmychest/internal/view"
)

// TodoHandler handles HTTP requests for todo operations
type TodoHandler struct {
	todoService TodoService
	views       Renderer
	logger      *slog.Logger
}

// NewTodoHandler creates a new todo handler with the given service
func NewTodoHandler(todoService TodoService, views Renderer, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		views:       views,
		logger:      logger.With("component", "todo_handler"),
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListTodos(r.Context())
	if err != nil {
		serverError(h.logger, w, r, "error listing todos", err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	if prefersJSON(r) {
		writeJSON(w, model.TodoListResponse{Todos: todos}, http.StatusOK)
		return
	}

	render(h.logger, h.views, w, r, http.StatusOK, view.Todos, model.TodoListView{
		Title: "All todos!",
		Todos: todos,
	})
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req model.TodoDTO
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	todo, err := h.todoService.CreateTodo(r.Context(), req)
	if err != nil {
		serverError(h.logger, w, r, "error creating todo", err)
		return
	}

	h.logger.DebugContext(r.Context(), "todo created", "id", todo.ID)
	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

// DeleteTodo handles DELETE /todos/{todoID}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("todoID")

	if err := h.todoService.DeleteTodo(r.Context(), id); err != nil {
		var notFoundErr repository.ErrTodoNotFound
		if errors.As(err, &notFoundErr) {
			writeError(w, "todo not found", http.StatusNotFound)
			return
		}
		serverError(h.logger, w, r, "error deleting todo", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
	}
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: message,
	})
}

// serverError logs err and answers 500, as plain text to browsers and as
// JSON to everyone else
func serverError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, message string, err error) {
	logger.ErrorContext(r.Context(), message,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)

	if acceptsHTML(r) {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeError(w, message, http.StatusInternalServerError)
}

// render writes the view or a 500 when the template fails
func render(logger *slog.Logger, views Renderer, w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := views.Render(w, status, name, data); err != nil {
		serverError(logger, w, r, "error rendering page", err)
	}
}

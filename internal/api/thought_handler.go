package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/service"
	"github.com/cirocosta/offmychest/internal/view"
)

const thoughtsTitle = "All todos!"

// ThoughtHandler handles HTTP requests for thought operations
type ThoughtHandler struct {
	thoughtService ThoughtService
	views          Renderer
	logger         *slog.Logger
}

// NewThoughtHandler creates a new thought handler with the given service
func NewThoughtHandler(thoughtService ThoughtService, views Renderer, logger *slog.Logger) *ThoughtHandler {
	return &ThoughtHandler{
		thoughtService: thoughtService,
		views:          views,
		logger:         logger.With("component", "thought_handler"),
	}
}

// Index handles GET /
func (h *ThoughtHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, http.StatusOK, "")
}

// CreateThought handles POST /thoughts
func (h *ThoughtHandler) CreateThought(w http.ResponseWriter, r *http.Request) {
	var req model.ThoughtDTO
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	thought, err := h.thoughtService.CreateThought(r.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			h.rejectThought(w, r, validationErr.Message)
			return
		}
		serverError(h.logger, w, r, "error creating thought", err)
		return
	}

	h.logger.DebugContext(r.Context(), "thought created", "id", thought.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// rejectThought answers a failed validation: browsers get the page back with
// the message shown above the form, API clients a JSON error
func (h *ThoughtHandler) rejectThought(w http.ResponseWriter, r *http.Request, message string) {
	if acceptsHTML(r) {
		h.renderIndex(w, r, http.StatusBadRequest, message)
		return
	}
	writeError(w, message, http.StatusBadRequest)
}

func (h *ThoughtHandler) renderIndex(w http.ResponseWriter, r *http.Request, status int, validationError string) {
	thoughts, err := h.thoughtService.ListThoughts(r.Context())
	if err != nil {
		serverError(h.logger, w, r, "error listing thoughts", err)
		return
	}

	render(h.logger, h.views, w, r, status, view.Index, model.ThoughtListView{
		Title:           thoughtsTitle,
		Thoughts:        thoughts,
		ValidationError: validationError,
	})
}

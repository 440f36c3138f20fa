package api

import (
	"log/slog"
	"net/http"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/view"
)

// PageHandler serves the pages that need no storage
type PageHandler struct {
	views  Renderer
	logger *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(views Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{views: views, logger: logger}
}

// About handles GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	render(h.logger, h.views, w, r, http.StatusOK, view.About, model.PageView{Title: "About"})
}

// Hello handles GET /hello
func (h *PageHandler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello, world!"))
}

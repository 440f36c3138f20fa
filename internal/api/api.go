// package api provides the HTTP API for the application
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cirocosta/offmychest/internal/model"
	"github.com/cirocosta/offmychest/internal/view"
	"github.com/cirocosta/offmychest/pkg/router"
)

// TodoService defines the minimal interface needed by the todo handlers
type TodoService interface {
	// ListTodos returns all todos
	ListTodos(ctx context.Context) ([]model.Todo, error)

	// CreateTodo creates a new todo
	CreateTodo(ctx context.Context, req model.TodoDTO) (model.Todo, error)

	// DeleteTodo deletes a todo
	DeleteTodo(ctx context.Context, id string) error
}

// ThoughtService defines the minimal interface needed by the thought handlers
type ThoughtService interface {
	// ListThoughts returns all thoughts
	ListThoughts(ctx context.Context) ([]model.Thought, error)

	// CreateThought validates and stores a thought
	CreateThought(ctx context.Context, req model.ThoughtDTO) (model.Thought, error)
}

// Renderer writes a named HTML view
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// Options tune the router; the zero value is usable
type Options struct {
	Logger *slog.Logger

	// Registry receives the HTTP metrics and is exposed on /metrics. A fresh
	// registry with the Go and process collectors is used when nil.
	Registry *prometheus.Registry

	// Renderer defaults to the embedded templates
	Renderer Renderer
}

// API holds the components needed to register routes
type API struct {
	router         *router.DocRouter
	todoHandler    *TodoHandler
	thoughtHandler *ThoughtHandler
	pageHandler    *PageHandler
	registry       *prometheus.Registry
}

// NewRouter creates a new router with all routes configured
func NewRouter(todoService TodoService, thoughtService ThoughtService, opts Options) (*router.DocRouter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	renderer := opts.Renderer
	if renderer == nil {
		views, err := view.New()
		if err != nil {
			return nil, err
		}
		renderer = views
	}

	r := router.NewDocRouter("offmychest",
		"Thoughts to get off your chest, and a few todos",
		"1.0.0",
	)

	r.Use(
		loggerMiddleware(logger),
		recovererMiddleware(logger),
		newMetrics(registry).middleware,
		securityHeadersMiddleware,
	)

	api := &API{
		router:         r,
		todoHandler:    NewTodoHandler(todoService, renderer, logger),
		thoughtHandler: NewThoughtHandler(thoughtService, renderer, logger),
		pageHandler:    NewPageHandler(renderer, logger),
		registry:       registry,
	}

	api.registerRoutes()

	return r, nil
}

// registerRoutes configures all routes with documentation
func (api *API) registerRoutes() {
	errSchema := &model.ErrorResponse{}

	api.router = api.router.
		WithTag("Thoughts", "Things to get off your chest").
		WithTag("Todos", "Operations related to todo items").
		WithTag("Pages", "Static pages")

	api.router.Route("GET", "/", api.thoughtHandler.Index).
		WithName("List Thoughts").
		WithDescription("HTML page listing every thought with a form to add one").
		WithContentResponse("200", "Thoughts page", router.ContentTypeHTML).
		WithErrorResponse("500", "Internal Server Error", errSchema).
		WithTags("Thoughts").
		Register()

	api.router.Route("POST", "/thoughts", api.thoughtHandler.CreateThought).
		WithName("Create Thought").
		WithDescription("Store a thought and redirect to the thoughts page. HTML clients get the page back with the validation message on failure.").
		WithRequest(&model.ThoughtDTO{}, router.ContentTypeForm, router.ContentTypeJSON).
		WithContentResponse("303", "Stored, redirecting to /", "").
		WithErrorResponse("400", "Bad Request", errSchema,
			router.Example{
				ContentType: router.ContentTypeJSON,
				Value:       `{"error": "You need to provide something to get off your chest!"}`,
			}).
		WithErrorResponse("415", "Unsupported Media Type", errSchema).
		WithErrorResponse("500", "Internal Server Error", errSchema).
		WithTags("Thoughts").
		Register()

	api.router.Route("GET", "/about", api.pageHandler.About).
		WithName("About").
		WithContentResponse("200", "About page", router.ContentTypeHTML).
		WithTags("Pages").
		Register()

	api.router.Route("GET", "/hello", api.pageHandler.Hello).
		WithName("Hello").
		WithContentResponse("200", "Greeting", router.ContentTypeText,
			router.Example{ContentType: router.ContentTypeText, Value: "Hello, world!"}).
		WithTags("Pages").
		Register()

	api.router.Route("GET", "/todos", api.todoHandler.ListTodos).
		WithName("List Todos").
		WithDescription("Get all todo items as HTML, or as JSON when the client asks for application/json. Outside production one random todo is added first.").
		WithResponse(&model.TodoListResponse{}).
		WithErrorResponse("500", "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()

	api.router.Route("POST", "/todos", api.todoHandler.CreateTodo).
		WithName("Create Todo").
		WithDescription("Create a new todo item and redirect to the list").
		WithRequest(&model.TodoDTO{}, router.ContentTypeForm, router.ContentTypeJSON).
		WithContentResponse("303", "Created, redirecting to /todos", "").
		WithErrorResponse("400", "Bad Request", errSchema,
			router.Example{
				ContentType: router.ContentTypeJSON,
				Value:       `{"error": "invalid request body"}`,
			}).
		WithErrorResponse("415", "Unsupported Media Type", errSchema).
		WithErrorResponse("500", "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()

	api.router.Route("DELETE", "/todos/{todoID}", api.todoHandler.DeleteTodo).
		WithName("Delete Todo").
		WithDescription("Delete a todo item").
		WithContentResponse("204", "Deleted", "").
		WithErrorResponse("404", "Not Found", errSchema,
			router.Example{
				ContentType: router.ContentTypeJSON,
				Value:       `{"error": "todo not found"}`,
			}).
		WithErrorResponse("500", "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()

	api.router.Handle("GET /static/", view.Static())
	api.router.Handle("GET /metrics", promhttp.HandlerFor(api.registry, promhttp.HandlerOpts{}))
	api.router.Handle("GET /openapi.json", http.HandlerFunc(api.openAPIHandler))
}

// openAPIHandler serves the document describing the routes above
func (api *API) openAPIHandler(w http.ResponseWriter, r *http.Request) {
	data, err := api.router.OpenAPIJSON()
	if err != nil {
		writeError(w, "error generating openapi document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", router.ContentTypeJSON)
	w.Write(data)
}

// package router provides a router wrapper that captures documentation data
package router

import (
	"net/http"
)

// Common content types used when documenting routes
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeHTML = "text/html"
	ContentTypeText = "text/plain"
)

// Example represents an example payload for documentation
type Example struct {
	ContentType string // Content type of the example (e.g., "application/json")
	Value       string // Example value as string
}

// RouteResponse represents a documented response for a specific HTTP status code
type RouteResponse struct {
	StatusCode  string    // HTTP status code (e.g., "200", "400")
	Description string    // Description of the response
	ContentType string    // Media type of the body; empty for bodiless responses
	Schema      any       // Response schema/type (optional)
	Examples    []Example // Example responses (optional)
}

// RouteInfo stores documentation for a route
type RouteInfo struct {
	Method       string                   // HTTP method (GET, POST, etc.)
	Path         string                   // URL path, with {param} placeholders
	Name         string                   // Friendly name for the endpoint
	Description  string                   // Description of what the endpoint does
	Handler      http.Handler             // The actual handler function
	RequestType  any                      // Example request type (for schema generation)
	RequestTypes []string                 // Media types accepted for the request body
	Responses    map[string]RouteResponse // Map of HTTP status codes to responses
	Tags         []string                 // Tags for grouping endpoints
}

// Tag groups routes in the generated document
type Tag struct {
	Name        string
	Description string
}

// RouteConfig is a builder for route configuration
type RouteConfig struct {
	router       *DocRouter
	method       string
	path         string
	handler      http.HandlerFunc
	name         string
	description  string
	requestType  any
	requestTypes []string
	responses    map[string]RouteResponse
	tags         []string
}

// DocRouter wraps http.ServeMux to add documentation capabilities
type DocRouter struct {
	title       string
	description string
	version     string
	tags        []Tag

	mux     *http.ServeMux
	handler http.Handler
	routes  []RouteInfo
}

// NewDocRouter creates a new documented router
func NewDocRouter(title, description, version string) *DocRouter {
	mux := http.NewServeMux()
	return &DocRouter{
		title:       title,
		description: description,
		version:     version,
		mux:         mux,
		handler:     mux,
	}
}

// WithTag declares a tag used to group routes
func (dr *DocRouter) WithTag(name, description string) *DocRouter {
	dr.tags = append(dr.tags, Tag{Name: name, Description: description})
	return dr
}

// Route starts a route configuration chain
func (dr *DocRouter) Route(method, path string, handler http.HandlerFunc) *RouteConfig {
	return &RouteConfig{
		router:    dr,
		method:    method,
		path:      path,
		handler:   handler,
		responses: make(map[string]RouteResponse),
	}
}

// Handle registers an undocumented handler, e.g. for assets or metrics
func (dr *DocRouter) Handle(pattern string, handler http.Handler) {
	dr.mux.Handle(pattern, handler)
}

// WithName adds a name to the route
func (rc *RouteConfig) WithName(name string) *RouteConfig {
	rc.name = name
	return rc
}

// WithDescription adds a description to the route
func (rc *RouteConfig) WithDescription(description string) *RouteConfig {
	rc.description = description
	return rc
}

// WithRequest adds a request type to the route. The body is documented as
// JSON unless other media types are given.
func (rc *RouteConfig) WithRequest(requestType any, contentTypes ...string) *RouteConfig {
	if len(contentTypes) == 0 {
		contentTypes = []string{ContentTypeJSON}
	}
	rc.requestType = requestType
	rc.requestTypes = contentTypes
	return rc
}

// WithResponse adds a JSON success (200) response type to the route
func (rc *RouteConfig) WithResponse(responseType any) *RouteConfig {
	rc.responses["200"] = RouteResponse{
		StatusCode:  "200",
		Description: "successful operation",
		ContentType: ContentTypeJSON,
		Schema:      responseType,
	}
	return rc
}

// WithContentResponse documents a response that is not a JSON schema, such
// as an HTML page, a plain text body or a redirect (empty content type)
func (rc *RouteConfig) WithContentResponse(statusCode, description, contentType string, examples ...Example) *RouteConfig {
	rc.responses[statusCode] = RouteResponse{
		StatusCode:  statusCode,
		Description: description,
		ContentType: contentType,
		Examples:    examples,
	}
	return rc
}

// WithErrorResponse adds a JSON error response to the route
func (rc *RouteConfig) WithErrorResponse(statusCode, description string, schema any, examples ...Example) *RouteConfig {
	rc.responses[statusCode] = RouteResponse{
		StatusCode:  statusCode,
		Description: description,
		ContentType: ContentTypeJSON,
		Schema:      schema,
		Examples:    examples,
	}
	return rc
}

// WithTags adds tags to the route
func (rc *RouteConfig) WithTags(tags ...string) *RouteConfig {
	rc.tags = tags
	return rc
}

// Register finalizes the route configuration and registers it with the router
func (rc *RouteConfig) Register() {
	pattern := rc.path
	if pattern == "/" {
		// only the root itself, not every unmatched path
		pattern = "/{$}"
	}
	rc.router.mux.Handle(rc.method+" "+pattern, rc.handler)

	rc.router.routes = append(rc.router.routes, RouteInfo{
		Method:       rc.method,
		Path:         rc.path,
		Name:         rc.name,
		Description:  rc.description,
		Handler:      rc.handler,
		RequestType:  rc.requestType,
		RequestTypes: rc.requestTypes,
		Responses:    rc.responses,
		Tags:         rc.tags,
	})
}

// GetRoutes returns all documented routes
func (dr *DocRouter) GetRoutes() []RouteInfo {
	return dr.routes
}

// Use wraps the router with middleware. The first middleware given is the
// outermost; routes registered later are still served through the chain.
func (dr *DocRouter) Use(middleware ...func(http.Handler) http.Handler) {
	for i := len(middleware) - 1; i >= 0; i-- {
		dr.handler = middleware[i](dr.handler)
	}
}

// ServeHTTP makes DocRouter implement the http.Handler interface
func (dr *DocRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dr.handler.ServeHTTP(w, r)
}

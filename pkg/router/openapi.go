package router

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OpenAPI generates an OpenAPI 3 document describing the registered routes
func (dr *DocRouter) OpenAPI() map[string]any {
	registry := newSchemaRegistry()

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       dr.title,
			"description": dr.description,
			"version":     dr.version,
		},
		"paths": generatePaths(dr.routes, registry),
		"components": map[string]any{
			"schemas": registry.components(),
		},
	}

	if len(dr.tags) > 0 {
		tags := make([]any, 0, len(dr.tags))
		for _, tag := range dr.tags {
			tags = append(tags, map[string]any{
				"name":        tag.Name,
				"description": tag.Description,
			})
		}
		spec["tags"] = tags
	}

	return spec
}

// OpenAPIJSON returns the OpenAPI document as indented JSON
func (dr *DocRouter) OpenAPIJSON() ([]byte, error) {
	data, err := json.MarshalIndent(dr.OpenAPI(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return data, nil
}

// extractPathParams gets path parameters from a URL path
func extractPathParams(path string) []string {
	var params []string

	for _, part := range strings.Split(path, "/") {
		if len(part) > 2 && part[0] == '{' && part[len(part)-1] == '}' {
			// {name...} wildcards document as a plain parameter
			params = append(params, strings.TrimSuffix(part[1:len(part)-1], "..."))
		}
	}

	return params
}

// generatePathParameters creates parameter objects for path parameters
func generatePathParameters(params []string) []any {
	parameters := make([]any, 0, len(params))

	for _, param := range params {
		parameters = append(parameters, map[string]any{
			"name":     param,
			"in":       "path",
			"required": true,
			"schema": map[string]any{
				"type": "string",
			},
		})
	}

	return parameters
}

// operationID derives a stable identifier, e.g. delete_todos_todoID
func operationID(method, path string) string {
	trimmed := strings.NewReplacer("{", "", "}", "", "...", "").Replace(strings.Trim(path, "/"))
	if trimmed == "" {
		trimmed = "root"
	}
	return strings.ToLower(method) + "_" + strings.ReplaceAll(trimmed, "/", "_")
}

// generatePaths creates the paths section of the document
func generatePaths(routes []RouteInfo, registry *schemaRegistry) map[string]any {
	paths := map[string]any{}

	for _, route := range routes {
		pathItem, ok := paths[route.Path].(map[string]any)
		if !ok {
			pathItem = map[string]any{}
			paths[route.Path] = pathItem
		}

		operation := map[string]any{
			"summary":     route.Name,
			"operationId": operationID(route.Method, route.Path),
			"responses":   generateResponses(route, registry),
		}

		if route.Description != "" {
			operation["description"] = route.Description
		}

		if len(route.Tags) > 0 {
			operation["tags"] = route.Tags
		}

		if params := extractPathParams(route.Path); len(params) > 0 {
			operation["parameters"] = generatePathParameters(params)
		}

		if route.RequestType != nil {
			operation["requestBody"] = generateRequestBody(route, registry)
		}

		pathItem[strings.ToLower(route.Method)] = operation
	}

	return paths
}

// generateResponses creates response documentation
func generateResponses(route RouteInfo, registry *schemaRegistry) map[string]any {
	responses := map[string]any{}

	for statusCode, routeResponse := range route.Responses {
		response := map[string]any{
			"description": routeResponse.Description,
		}

		if routeResponse.ContentType != "" {
			media := map[string]any{}

			if routeResponse.Schema != nil {
				media["schema"] = registry.ref(routeResponse.Schema)
			} else if routeResponse.ContentType != ContentTypeJSON {
				media["schema"] = map[string]any{"type": "string"}
			}

			if len(routeResponse.Examples) > 0 {
				examples := map[string]any{}
				for i, example := range routeResponse.Examples {
					examples[fmt.Sprintf("example%d", i+1)] = map[string]any{
						"value": example.Value,
					}
				}
				media["examples"] = examples
			}

			if len(media) > 0 {
				response["content"] = map[string]any{
					routeResponse.ContentType: media,
				}
			}
		}

		responses[statusCode] = response
	}

	if len(responses) == 0 {
		responses["200"] = map[string]any{
			"description": "successful operation",
		}
	}

	return responses
}

// generateRequestBody creates request body documentation
func generateRequestBody(route RouteInfo, registry *schemaRegistry) map[string]any {
	schema := registry.ref(route.RequestType)

	content := map[string]any{}
	for _, contentType := range route.RequestTypes {
		content[contentType] = map[string]any{
			"schema": schema,
		}
	}

	return map[string]any{
		"description": fmt.Sprintf("request body for %s", route.Name),
		"required":    true,
		"content":     content,
	}
}

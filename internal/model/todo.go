// package model contains the entities and wire types of the application
package model

// Todo represents a todo item in the system
type Todo struct {
	ID    string `json:"id" doc:"Unique identifier for the todo item" example:"123e4567-e89b-12d3-a456-426614174000"`
	Title string `json:"title" doc:"Title of the todo item" example:"Buy milk"`
}

// TodoDTO is used when creating a new todo item from a form or JSON body
type TodoDTO struct {
	Title string `json:"title" form:"title" doc:"Title of the todo item" example:"Buy milk"`
}

// ToModel builds the entity to persist; the id is assigned by the store
func (d TodoDTO) ToModel() Todo {
	return Todo{Title: d.Title}
}

// TodoListResponse is used for JSON responses with multiple todo items
type TodoListResponse struct {
	Todos []Todo `json:"todos" doc:"List of todo items"`
}

// TodoListView is the context handed to the todos view
type TodoListView struct {
	Title string
	Todos []Todo
}

// ErrorResponse represents an error returned by the API
type ErrorResponse struct {
	Error string `json:"error" doc:"Error message" example:"todo not found"`
}

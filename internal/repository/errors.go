// package repository provides data access and error types
package repository

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDriver is returned when the configured database driver is unknown
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// ErrTodoNotFound is returned when a todo with the specified ID does not exist
type ErrTodoNotFound struct {
	ID string
}

// Error implements the error interface
func (e ErrTodoNotFound) Error() string {
	return fmt.Sprintf("todo with id %s not found", e.ID)
}

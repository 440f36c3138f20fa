package service

import "fmt"

// ThoughtTextRequired is reported when a thought is submitted without text
const ThoughtTextRequired = "You need to provide something to get off your chest!"

// ValidationError is returned when client-supplied data breaks a declared rule
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

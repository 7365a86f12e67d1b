package utils

import "errors"

// NewError creates a new error with a message
func NewError(message string) error {
	return errors.New(message)
}

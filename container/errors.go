package container

import (
	"fmt"
	"reflect"
)

// BindingNotFoundError indicates a resolution attempt for an unregistered
// type.
type BindingNotFoundError struct {
	Type reflect.Type
}

// Error implements the error interface
func (e *BindingNotFoundError) Error() string {
	return fmt.Sprintf("no binding registered for %s", e.Type)
}

// FactoryError wraps a failure inside a registered factory.
type FactoryError struct {
	Type reflect.Type
	Err  error
}

// Error implements the error interface
func (e *FactoryError) Error() string {
	return fmt.Sprintf("factory for %s failed: %v", e.Type, e.Err)
}

// Unwrap returns the factory failure
func (e *FactoryError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a factory produced a value that does not
// match its registered type.
type TypeMismatchError struct {
	Expected reflect.Type
	Got      reflect.Type
}

// Error implements the error interface
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

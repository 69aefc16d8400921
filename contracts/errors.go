package contracts

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrAsyncFault is the generic fault synthesized when an asynchronous
// interceptor body fails without producing an error of its own.
var ErrAsyncFault = errors.New("asynchronous interceptor body failed without an error")

// ConfigError reports an invalid interception setup, such as registering
// a contract that is not an interface. It is raised eagerly at
// registration or proxy construction, never during a call.
type ConfigError struct {
	Contract reflect.Type
	Reason   string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Contract != nil {
		return fmt.Sprintf("invalid interception configuration for %s: %s", e.Contract, e.Reason)
	}
	return fmt.Sprintf("invalid interception configuration: %s", e.Reason)
}

// ResolutionError reports a dependency that could not be resolved from the
// provider while preparing a call. The call is aborted before any
// interceptor body runs.
type ResolutionError struct {
	Type reflect.Type
	Err  error
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve dependency %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying resolution failure
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// MethodNotFoundError reports a dispatch attempt for a method name that is
// not part of the contract.
type MethodNotFoundError struct {
	Contract reflect.Type
	Method   string
}

// Error implements the error interface
func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("contract %s has no method %s", e.Contract, e.Method)
}

// AsyncError carries a fault captured from an asynchronous interceptor body
// and re-raised synchronously to the caller.
type AsyncError struct {
	Interceptor string
	Err         error
}

// Error implements the error interface
func (e *AsyncError) Error() string {
	return fmt.Sprintf("asynchronous interceptor %s failed: %v", e.Interceptor, e.Err)
}

// Unwrap returns the captured fault
func (e *AsyncError) Unwrap() error {
	return e.Err
}

// ArgumentError reports an argument list that does not match the target
// method's parameters.
type ArgumentError struct {
	Method   string
	Expected int
	Got      int
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("method %s expects %d arguments, got %d", e.Method, e.Expected, e.Got)
}

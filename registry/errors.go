package registry

import "fmt"

// DuplicateControllerError is returned when registering a controller under
// a name that already exists. Registration never overwrites.
type DuplicateControllerError struct {
	// Name is the controller name that was already taken.
	Name string
}

func (e *DuplicateControllerError) Error() string {
	return fmt.Sprintf("controller %q is already registered", e.Name)
}

// ControllerNotFoundError is returned when attaching handlers to a name
// that was never registered.
type ControllerNotFoundError struct {
	// Name is the unknown controller name.
	Name string
}

func (e *ControllerNotFoundError) Error() string {
	return fmt.Sprintf("controller %q is not registered", e.Name)
}

// InvalidHandlerError is returned when a handler declaration cannot be
// bound: unsupported verb, malformed path, or a method that does not exist
// on the controller instance or has the wrong signature. Attachment fails
// before any binding takes place.
type InvalidHandlerError struct {
	// Controller is the controller name the declaration targeted.
	Controller string

	// Method is the declared method name.
	Method string

	// Reason describes why the declaration was rejected.
	Reason string
}

func (e *InvalidHandlerError) Error() string {
	return fmt.Sprintf("invalid handler %s.%s: %s", e.Controller, e.Method, e.Reason)
}

// HandlerInvocationError wraps an error returned by a controller method
// during dispatch. It is surfaced to the client as a server error response
// and affects only the failing request.
type HandlerInvocationError struct {
	// Controller is the controller whose method failed.
	Controller string

	// Method is the method that failed.
	Method string

	// Err is the error the method returned.
	Err error
}

func (e *HandlerInvocationError) Error() string {
	return fmt.Sprintf("%s.%s failed: %v", e.Controller, e.Method, e.Err)
}

func (e *HandlerInvocationError) Unwrap() error {
	return e.Err
}

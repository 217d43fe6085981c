/*
Package registry implements the controller registry and request dispatcher.

A controller is a named unit owning one or more request-handling methods.
Controllers register under a unique name; registration creates the entry and
mounts a fresh routing scope into the HTTP engine in one atomic step, so no
half-registered controller is ever observable. Handler declarations then
bind (verb, path) routes within that scope to the controller's methods.

# Controller Methods

A dispatchable method is an exported method on the controller instance with
the signature

	func (c *MyController) List(r *http.Request) (any, error)

The method name is declared as a string, but it is resolved and captured at
attachment time; a declaration naming a missing or ill-typed method fails
AttachHandlers synchronously and binds nothing.

# Dispatch

On a matching inbound request the dispatch shim invokes the method, waits
for it to complete, and writes the returned value as the response body. A
returned error is wrapped in [HandlerInvocationError] and answered with a
server error status; failure handling beyond that is the method's own
responsibility. Dispatch failures are per-request and isolated.

# Uniqueness and Idempotency

Controller names are unique: registering a taken name fails with
[DuplicateControllerError] and never overwrites. Within a controller,
bindings are unique by the full (verb, path, method) tuple; attaching an
identical declaration again is a no-op end to end.
*/
package registry

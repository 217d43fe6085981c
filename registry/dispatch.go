package registry

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-chi/render"

	"github.com/devclay92/basic-service/metrics"
)

// handlerFunc is the dispatchable method shape: controller methods take
// the inbound request and return the response value, or an error.
type handlerFunc func(*http.Request) (any, error)

// resolveMethod looks up methodName on the controller instance and returns
// it as a direct callable. Resolution happens once, at attachment time, so
// a missing or ill-typed method is a synchronous configuration error rather
// than a request-time surprise.
func resolveMethod(instance any, controller, methodName string) (handlerFunc, error) {
	m := reflect.ValueOf(instance).MethodByName(methodName)
	if !m.IsValid() {
		return nil, &InvalidHandlerError{Controller: controller, Method: methodName,
			Reason: "no such method on controller instance"}
	}
	fn, ok := m.Interface().(func(*http.Request) (any, error))
	if !ok {
		return nil, &InvalidHandlerError{Controller: controller, Method: methodName,
			Reason: fmt.Sprintf("method has signature %s, want func(*http.Request) (any, error)", m.Type())}
	}
	return fn, nil
}

// dispatchShim adapts a resolved controller method to the engine's handler
// contract. The shim invokes the method, waits for it to complete, and
// writes the returned value as the response body using the engine's default
// content negotiation. A method error is wrapped in HandlerInvocationError
// and surfaced as a server error response; it never touches the registry or
// other in-flight requests.
func (r *Registry) dispatchShim(controller string, binding HandlerBinding, invoke handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		metrics.DispatchTotal.WithLabelValues(controller, binding.MethodName, binding.Verb).Inc()

		v, err := invoke(req)
		if err != nil {
			metrics.DispatchErrors.WithLabelValues(controller, binding.MethodName, binding.Verb).Inc()
			invErr := &HandlerInvocationError{Controller: controller, Method: binding.MethodName, Err: err}
			http.Error(w, invErr.Error(), http.StatusInternalServerError)
			return
		}

		render.Respond(w, req, v)
	}
}

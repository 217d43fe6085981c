package registry

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/devclay92/basic-service/metrics"
)

// Engine is the routing capability the registry needs from the HTTP
// server: a fresh namespace to mount a controller's routes into.
type Engine interface {
	Scope() chi.Router
}

// HandlerDeclaration declares one endpoint of a controller: an HTTP verb,
// a path, and the name of the controller method that serves it.
type HandlerDeclaration struct {
	Verb       string
	Path       string
	MethodName string
}

// HandlerBinding is a declaration that has been attached to a controller.
// Bindings are immutable; two bindings are the same when the full
// (verb, path, method) tuple matches.
type HandlerBinding struct {
	Verb       string
	Path       string
	MethodName string
}

// ControllerEntry is the registry's record for one controller: its unique
// name, the instance whose methods serve requests, the bindings attached so
// far, and the routing scope its routes are mounted in.
type ControllerEntry struct {
	name     string
	instance any
	handlers []HandlerBinding
	scope    chi.Router
}

// Name returns the controller's unique name.
func (e *ControllerEntry) Name() string { return e.name }

// Instance returns the controller instance.
func (e *ControllerEntry) Instance() any { return e.instance }

// Scope returns the routing scope the controller's handlers are mounted in.
func (e *ControllerEntry) Scope() chi.Router { return e.scope }

// Handlers returns a copy of the bindings attached to the controller, in
// attachment order.
func (e *ControllerEntry) Handlers() []HandlerBinding {
	out := make([]HandlerBinding, len(e.handlers))
	copy(out, e.handlers)
	return out
}

func (e *ControllerEntry) hasBinding(b HandlerBinding) bool {
	for _, h := range e.handlers {
		if h == b {
			return true
		}
	}
	return false
}

// Registry maps controller names to their entries and binds declared
// handlers into the HTTP engine. Names are unique; registering a duplicate
// fails and never overwrites. Mutations are guarded by a lock so that
// registration may safely race with live traffic.
type Registry struct {
	mu          sync.RWMutex
	engine      Engine
	log         *slog.Logger
	controllers map[string]*ControllerEntry
}

// New creates an empty registry bound to the given engine.
func New(engine Engine, log *slog.Logger) *Registry {
	return &Registry{
		engine:      engine,
		log:         log,
		controllers: make(map[string]*ControllerEntry),
	}
}

// RegisterController creates an entry for the named controller and mounts
// a fresh routing scope for it in the engine, atomically. The scope is
// valid even while the controller declares zero handlers; later
// AttachHandlers calls extend it.
//
// Returns *DuplicateControllerError if the name is already taken; the
// registry is left untouched.
func (r *Registry) RegisterController(name string, instance any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controllers[name]; exists {
		return &DuplicateControllerError{Name: name}
	}

	r.controllers[name] = &ControllerEntry{
		name:     name,
		instance: instance,
		scope:    r.engine.Scope(),
	}
	metrics.ControllersRegistered.Inc()
	r.log.Info("Controller registered", "controller", name)
	return nil
}

// AttachHandlers binds one or more handler declarations to the named
// controller. Every declaration is validated before any route is bound:
// the verb must be one of GET, POST, PUT or DELETE, the path must be
// rooted, and the declared method must exist on the controller instance
// with the dispatchable signature (see Dispatch). A failed validation
// leaves both the registry and the engine untouched.
//
// Attaching a declaration structurally equal to one already attached is a
// no-op: the handler list keeps a single entry and the engine route is not
// rebound.
func (r *Registry) AttachHandlers(name string, decls ...HandlerDeclaration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.controllers[name]
	if !ok {
		return &ControllerNotFoundError{Name: name}
	}

	type resolved struct {
		binding HandlerBinding
		invoke  handlerFunc
	}
	pending := make([]resolved, 0, len(decls))
	for _, d := range decls {
		if !supportedVerb(d.Verb) {
			return &InvalidHandlerError{Controller: name, Method: d.MethodName,
				Reason: "unsupported verb " + d.Verb}
		}
		if !strings.HasPrefix(d.Path, "/") {
			return &InvalidHandlerError{Controller: name, Method: d.MethodName,
				Reason: "path must begin with /"}
		}
		invoke, err := resolveMethod(entry.instance, name, d.MethodName)
		if err != nil {
			return err
		}
		pending = append(pending, resolved{binding: HandlerBinding(d), invoke: invoke})
	}

	for _, p := range pending {
		if entry.hasBinding(p.binding) {
			r.log.Debug("Handler already attached, skipping",
				"controller", name, "verb", p.binding.Verb, "path", p.binding.Path)
			continue
		}
		entry.scope.Method(p.binding.Verb, p.binding.Path,
			r.dispatchShim(name, p.binding, p.invoke))
		entry.handlers = append(entry.handlers, p.binding)
		r.log.Info("Handler attached", "controller", name,
			"verb", p.binding.Verb, "path", p.binding.Path, "method", p.binding.MethodName)
	}
	return nil
}

// Controller returns the entry for the named controller, if registered.
func (r *Registry) Controller(name string) (*ControllerEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.controllers[name]
	return entry, ok
}

// Names returns the registered controller names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops every controller entry. Routes already bound in the engine
// are not unbound; Reset is meant for full teardown where the engine is
// discarded with it.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	metrics.ControllersRegistered.Sub(float64(len(r.controllers)))
	r.controllers = make(map[string]*ControllerEntry)
}

func supportedVerb(verb string) bool {
	switch verb {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

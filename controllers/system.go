// Package controllers provides the controllers shipped with the service
// binary. They double as reference implementations of the dispatchable
// method convention.
package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/devclay92/basic-service/app"
	"github.com/devclay92/basic-service/registry"
)

// SystemControllerName is the registry name the system controller is
// registered under.
const SystemControllerName = "System"

// SystemController serves the service's own endpoints: health, version,
// and a body echo useful for smoke testing deployments.
type SystemController struct {
	version string
	started time.Time
}

// NewSystemController creates a system controller reporting the given
// version string.
func NewSystemController(version string) *SystemController {
	return &SystemController{
		version: version,
		started: time.Now(),
	}
}

// Health reports service liveness and uptime.
func (c *SystemController) Health(r *http.Request) (any, error) {
	return map[string]any{
		"status": "ok",
		"uptime": time.Since(c.started).String(),
	}, nil
}

// Version reports the build version.
func (c *SystemController) Version(r *http.Request) (any, error) {
	return map[string]string{"version": c.version}, nil
}

// Echo returns the request body back to the caller. An empty body is an
// error, exercising the dispatcher's failure path.
func (c *SystemController) Echo(r *http.Request) (any, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("empty request body")
	}
	return map[string]string{"echo": string(body)}, nil
}

// Register wires the controller into the application under
// SystemControllerName with its standard endpoints.
func (c *SystemController) Register(a *app.Application) error {
	if err := a.RegisterController(SystemControllerName, c); err != nil {
		return err
	}
	return a.AttachHandlers(SystemControllerName,
		registry.HandlerDeclaration{Verb: http.MethodGet, Path: "/healthz", MethodName: "Health"},
		registry.HandlerDeclaration{Verb: http.MethodGet, Path: "/version", MethodName: "Version"},
		registry.HandlerDeclaration{Verb: http.MethodPost, Path: "/echo", MethodName: "Echo"},
	)
}

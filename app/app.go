package app

import (
	"io"
	"log/slog"
	"sync"

	"github.com/devclay92/basic-service/common"
	"github.com/devclay92/basic-service/httpserver"
	"github.com/devclay92/basic-service/registry"
)

// Application owns the HTTP engine adapter and the controller registry and
// exposes the lifecycle operations of the service. Applications are
// explicitly constructed with New; GetInstance additionally maintains one
// process-wide instance for consumers that want the singleton behavior.
type Application struct {
	cfg Config
	log *slog.Logger

	server   *httpserver.Server
	registry *registry.Registry
}

// New constructs an application from cfg. The returned application is not
// listening; controllers may be registered and documentation prepared
// before Listen.
func New(cfg Config, log *slog.Logger) (*Application, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	server, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               cfg.ListenAddr(),
		MetricsAddr:              cfg.MetricsAddr,
		EnablePprof:              cfg.EnablePprof,
		Log:                      log,
		DrainDuration:            cfg.DrainDuration,
		GracefulShutdownDuration: cfg.GracefulShutdownDuration,
		ReadTimeout:              cfg.ReadTimeout,
		WriteTimeout:             cfg.WriteTimeout,
	})
	if err != nil {
		return nil, err
	}

	return &Application{
		cfg:      cfg,
		log:      log,
		server:   server,
		registry: registry.New(server, log),
	}, nil
}

var (
	instanceMu sync.Mutex
	instance   *Application
)

// GetInstance returns the process-wide application, constructing it on
// first access from the environment configuration and the default logger.
// Concurrent first access yields exactly one instance.
func GetInstance() *Application {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		cfg, err := ConfigFromEnv()
		if err != nil {
			cfg = DefaultConfig()
		}
		log := common.SetupLogger(&common.LoggingOpts{
			Service: common.PackageName,
			Version: common.Version,
		})
		app, err := New(cfg, log)
		if err != nil {
			// New only fails on metrics server construction; fall back
			// to a config without one so the singleton contract holds.
			cfg.MetricsAddr = ""
			app, _ = New(cfg, log)
		}
		instance = app
	}
	return instance
}

// ResetInstance closes and discards the process-wide application so the
// next GetInstance constructs a fresh one. Intended for test teardown.
func ResetInstance() {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		instance.registry.Reset()
		_ = instance.server.Close()
		instance = nil
	}
}

// RegisterController registers a named controller with the registry,
// mounting its routing scope into the HTTP engine.
func (a *Application) RegisterController(name string, controller any) error {
	return a.registry.RegisterController(name, controller)
}

// AttachHandlers binds one or more handler declarations to a registered
// controller.
func (a *Application) AttachHandlers(name string, decls ...registry.HandlerDeclaration) error {
	return a.registry.AttachHandlers(name, decls...)
}

// Registry returns the controller registry.
func (a *Application) Registry() *registry.Registry {
	return a.registry
}

// Server returns the HTTP engine adapter.
func (a *Application) Server() *httpserver.Server {
	return a.server
}

// PrepareDocumentation configures static exposure of the API documentation:
// the UI assets under docsPath (default /docs) from assetDir (default
// public), and the descriptor at the configured swagger location. A no-op
// when the configuration disables swagger.
func (a *Application) PrepareDocumentation(docsPath, assetDir string) {
	if !a.cfg.Swagger {
		a.log.Debug("Documentation disabled by configuration")
		return
	}
	if docsPath == "" {
		docsPath = a.cfg.DocsPath
	}
	if assetDir == "" {
		assetDir = a.cfg.AssetDir
	}
	a.server.ServeDocs(docsPath, assetDir, a.cfg.SwaggerLocation)
}

// Listen starts accepting connections on the configured address. onReady,
// if non-nil, runs once the socket is bound.
func (a *Application) Listen(onReady func()) error {
	return a.server.Listen(onReady)
}

// Addr returns the bound listen address, or "" before Listen.
func (a *Application) Addr() string {
	return a.server.Addr()
}

// Close releases the listening socket. The controller registry is left
// intact; consumers needing a clean slate reset explicitly. Idempotent.
func (a *Application) Close() error {
	return a.server.Close()
}

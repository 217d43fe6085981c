package app

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the construction surface of the application. Every field can be
// populated from the environment (BASIC_SERVICE_* variables); cmd/server
// lets command-line flags override the result.
type Config struct {
	// Host and Port form the API listen address. Port 0 lets the
	// operating system pick a free port.
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port int    `envconfig:"PORT" default:"8080"`

	// MetricsAddr is the Prometheus listen address; empty disables the
	// metrics server.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`

	// Swagger enables the documentation endpoints. When false,
	// PrepareDocumentation is a no-op.
	Swagger bool `envconfig:"SWAGGER" default:"true"`

	// DocsPath is the mount point of the documentation UI.
	DocsPath string `envconfig:"DOCS_PATH" default:"/docs"`

	// AssetDir is the directory the documentation assets are served from.
	AssetDir string `envconfig:"ASSET_DIR" default:"public"`

	// SwaggerLocation is the fixed, well-known path of the documentation
	// descriptor.
	SwaggerLocation string `envconfig:"SWAGGER_LOCATION" default:"/swagger.json"`

	// EnablePprof mounts the profiler under /debug.
	EnablePprof bool `envconfig:"PPROF" default:"false"`

	// DrainDuration is how long /drain waits before reporting completion.
	DrainDuration time.Duration `envconfig:"DRAIN_DURATION" default:"45s"`

	// GracefulShutdownDuration bounds how long Close waits for in-flight
	// requests.
	GracefulShutdownDuration time.Duration `envconfig:"GRACEFUL_SHUTDOWN_DURATION" default:"30s"`

	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"60s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
}

// ListenAddr returns the API listen address derived from Host and Port.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		Host:                     "127.0.0.1",
		Port:                     8080,
		Swagger:                  true,
		DocsPath:                 "/docs",
		AssetDir:                 "public",
		SwaggerLocation:          "/swagger.json",
		DrainDuration:            45 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

// ConfigFromEnv loads the configuration from BASIC_SERVICE_* environment
// variables, falling back to the struct defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("basic_service", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config from environment: %w", err)
	}
	return cfg, nil
}

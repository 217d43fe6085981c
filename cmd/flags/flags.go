// Package flags defines the command-line surface shared by the service
// binaries and the helpers that turn parsed flags into a logger and an
// application configuration.
package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/devclay92/basic-service/app"
	"github.com/devclay92/basic-service/common"
)

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "",
	Usage: "address to listen on for the API (overrides BASIC_SERVICE_HOST/PORT)",
}

var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "",
	Usage: "address to listen on for Prometheus metrics (empty disables)",
}

var DocsPathFlag = &cli.StringFlag{
	Name:  "docs-path",
	Value: "",
	Usage: "mount point of the API documentation UI",
}

var DocsAssetsFlag = &cli.StringFlag{
	Name:  "docs-assets",
	Value: "",
	Usage: "directory the documentation assets are served from",
}

var NoSwaggerFlag = &cli.BoolFlag{
	Name:  "no-swagger",
	Value: false,
	Usage: "disable the documentation endpoints entirely",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}

// ServerFlags is the full flag set of the API server binary.
var ServerFlags = []cli.Flag{
	ListenAddrFlag,
	MetricsAddrFlag,
	DocsPathFlag,
	DocsAssetsFlag,
	NoSwaggerFlag,
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
	PprofFlag,
	DrainSecondsFlag,
}

// SetupLogger builds the process logger from the logging flags.
func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUidFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// BuildConfig loads the environment configuration and applies flag
// overrides on top of it.
func BuildConfig(cCtx *cli.Context) (app.Config, error) {
	cfg, err := app.ConfigFromEnv()
	if err != nil {
		return app.Config{}, err
	}

	if addr := cCtx.String(ListenAddrFlag.Name); addr != "" {
		host, port, err := splitListenAddr(addr)
		if err != nil {
			return app.Config{}, err
		}
		cfg.Host, cfg.Port = host, port
	}
	if addr := cCtx.String(MetricsAddrFlag.Name); addr != "" {
		cfg.MetricsAddr = addr
	}
	if p := cCtx.String(DocsPathFlag.Name); p != "" {
		cfg.DocsPath = p
	}
	if d := cCtx.String(DocsAssetsFlag.Name); d != "" {
		cfg.AssetDir = d
	}
	if cCtx.Bool(NoSwaggerFlag.Name) {
		cfg.Swagger = false
	}
	cfg.EnablePprof = cCtx.Bool(PprofFlag.Name)
	cfg.DrainDuration = time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return cfg, nil
}

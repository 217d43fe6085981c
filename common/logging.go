package common

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// LoggingOpts configures the process-wide logger.
type LoggingOpts struct {
	// Debug lowers the log level to slog.LevelDebug.
	Debug bool

	// JSON switches the handler to JSON output. The default is colored
	// text output suitable for development.
	JSON bool

	// Service is added as a "service" attribute to all log records.
	Service string

	// Version is added as a "version" attribute to all log records.
	Version string
}

// SetupLogger creates the process logger according to opts. All components
// receive this logger (or a child of it) via their constructors.
func SetupLogger(opts *LoggingOpts) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level})
	}

	log := slog.New(handler)
	if opts.Service != "" {
		log = log.With("service", opts.Service)
	}
	if opts.Version != "" {
		log = log.With("version", opts.Version)
	}
	return log
}

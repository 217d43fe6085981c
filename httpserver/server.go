package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/atomic"

	"github.com/devclay92/basic-service/common"
	"github.com/devclay92/basic-service/metrics"
)

// HTTPServerConfig contains all configuration parameters for the HTTP server.
type HTTPServerConfig struct {
	// ListenAddr is the address and port the HTTP server will listen on.
	// A port of 0 lets the operating system pick a free port.
	ListenAddr string

	// MetricsAddr is the address and port for the metrics server.
	// If empty, the metrics server will not be started.
	MetricsAddr string

	// EnablePprof enables the pprof debugging API when true.
	EnablePprof bool

	// Log is the structured logger for server operations.
	Log *slog.Logger

	// DrainDuration is the time to wait after marking the server not
	// ready, allowing load balancers to detect the change.
	DrainDuration time.Duration

	// GracefulShutdownDuration is the maximum time to wait for in-flight
	// requests to complete during Close.
	GracefulShutdownDuration time.Duration

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of
	// the response.
	WriteTimeout time.Duration
}

// Server wraps the chi router and net/http machinery behind the small
// surface the rest of the service needs: routing scopes, static docs
// exposure, and listen/close lifecycle.
type Server struct {
	cfg *HTTPServerConfig
	log *slog.Logger

	mux        *chi.Mux
	srv        *http.Server
	metricsSrv *metrics.MetricsServer

	ln        net.Listener
	isReady   atomic.Bool
	listening atomic.Bool
	closed    atomic.Bool
}

// New creates a server from cfg. The returned server is not yet listening;
// routing scopes may be mounted and routes bound before Listen is called.
func New(cfg *HTTPServerConfig) (srv *Server, err error) {
	var metricsSrv *metrics.MetricsServer
	if cfg.MetricsAddr != "" {
		metricsSrv, err = metrics.New(common.PackageName, cfg.MetricsAddr)
		if err != nil {
			return nil, err
		}
	}

	srv = &Server{
		cfg:        cfg,
		log:        cfg.Log,
		metricsSrv: metricsSrv,
	}
	srv.isReady.Store(true)
	srv.mux = srv.newRouter()

	srv.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return srv, nil
}

func (srv *Server) newRouter() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(srv.httpLogger)
	mux.Use(middleware.Recoverer)

	// Health and diagnostic endpoints
	mux.Get("/livez", srv.handleLivenessCheck)
	mux.Get("/readyz", srv.handleReadinessCheck)
	mux.Get("/drain", srv.handleDrain)
	mux.Get("/undrain", srv.handleUndrain)

	if srv.cfg.EnablePprof {
		srv.log.Info("pprof API enabled")
		mux.Mount("/debug", middleware.Profiler())
	}
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

// Scope returns a fresh routing namespace attached to the root router.
// Routes bound within the scope are served by this server immediately; a
// scope with no routes is valid.
func (srv *Server) Scope() chi.Router {
	return srv.mux.Group(nil)
}

// Handler returns the root router, for driving the server in tests without
// a listener.
func (srv *Server) Handler() http.Handler {
	return srv.mux
}

// Listen binds the configured address and starts serving in the
// background. onReady, if non-nil, is invoked once the socket is bound.
func (srv *Server) Listen(onReady func()) error {
	ln, err := net.Listen("tcp", srv.cfg.ListenAddr)
	if err != nil {
		return err
	}
	srv.ln = ln
	srv.listening.Store(true)

	if srv.metricsSrv != nil {
		go func() {
			srv.log.With("metricsAddress", srv.cfg.MetricsAddr).Info("Starting metrics server")
			err := srv.metricsSrv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				srv.log.Error("Metrics server failed", "err", err)
			}
		}()
	}

	go func() {
		srv.log.Info("Starting HTTP server", "listenAddress", ln.Addr().String())
		if err := srv.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("HTTP server failed", "err", err)
		}
	}()

	if onReady != nil {
		onReady()
	}
	return nil
}

// Addr returns the bound listen address, or "" when the server is not
// listening.
func (srv *Server) Addr() string {
	if !srv.listening.Load() {
		return ""
	}
	return srv.ln.Addr().String()
}

// Close stops accepting new connections and releases the listening socket,
// waiting up to GracefulShutdownDuration for in-flight requests. Closing a
// server twice, or one that never listened, is not an error.
func (srv *Server) Close() error {
	if srv.closed.Swap(true) {
		return nil
	}
	if !srv.listening.Swap(false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		srv.log.Error("Graceful HTTP server shutdown failed", "err", err)
		return err
	}
	srv.log.Info("HTTP server gracefully stopped")

	if srv.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
		defer cancel()

		if err := srv.metricsSrv.Shutdown(ctx); err != nil {
			srv.log.Error("Graceful metrics server shutdown failed", "err", err)
		} else {
			srv.log.Info("Metrics server gracefully stopped")
		}
	}
	return nil
}

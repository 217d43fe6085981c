// Package metrics exposes Prometheus instrumentation for the service: a
// standalone metrics HTTP server and the dispatch counters recorded on
// every routed request.
package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "basic_service"

var (
	// DispatchTotal counts every dispatched request by controller,
	// method and HTTP verb.
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_total",
		Help:      "Number of requests dispatched to controller methods.",
	}, []string{"controller", "method", "verb"})

	// DispatchErrors counts dispatched requests whose controller method
	// returned an error.
	DispatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatch_errors_total",
		Help:      "Number of dispatched requests that failed in the controller method.",
	}, []string{"controller", "method", "verb"})

	// ControllersRegistered tracks the number of controllers currently
	// held by the registry.
	ControllersRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "controllers_registered",
		Help:      "Number of controllers currently registered.",
	})
)

// MetricsServer serves the Prometheus scrape endpoint on its own listener,
// separate from the API server.
type MetricsServer struct {
	name string
	srv  *http.Server
}

// New creates a metrics server for the given service name listening on
// listenAddr. The name is normalized and exported as a service info metric.
func New(name, listenAddr string) (*MetricsServer, error) {
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "info",
		Help:      "Service identity, always 1.",
	}, []string{"service"})
	if err := prometheus.Register(info); err == nil {
		info.WithLabelValues(strings.ReplaceAll(name, "-", "_")).Set(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		name: name,
		srv: &http.Server{
			Addr:         listenAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the scrape handler, used directly in tests.
func (s *MetricsServer) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe blocks serving the scrape endpoint until Shutdown is
// called or the listener fails.
func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

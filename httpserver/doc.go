/*
Package httpserver wraps the chi HTTP engine behind the surface the rest of
the service uses: routing scopes, static documentation exposure, and the
listen/close lifecycle.

The server is created idle. Routing scopes obtained from [Server.Scope] can
be populated before or after Listen; routes bound into a scope are served as
soon as the listener is up. Close drains in-flight requests within the
configured graceful shutdown window and is safe to call repeatedly, or on a
server that never listened.

# Diagnostic Endpoints

  - GET /livez - Liveness check
  - GET /readyz - Readiness check
  - GET /drain - Gracefully mark server as not ready
  - GET /undrain - Mark server as ready

When MetricsAddr is configured, a Prometheus scrape endpoint is served on a
separate listener. EnablePprof mounts the profiler under /debug.
*/
package httpserver

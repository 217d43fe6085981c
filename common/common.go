// Package common holds service identity and logger setup shared by all
// binaries and packages.
package common

// PackageName identifies the service in logs and metrics.
const PackageName = "basic-service"

// Version is set at build time via -ldflags.
var Version = "dev"

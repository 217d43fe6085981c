/*
Package app ties the controller registry and the HTTP engine adapter
together into the application lifecycle: construct (or fetch the
process-wide instance), register controllers, attach handlers, prepare the
documentation endpoints, listen, and close.

The singleton is a convenience on top of explicit construction: New builds
an injectable application for tests and for cmd/server, while GetInstance
lazily maintains one shared instance and ResetInstance tears it down
deterministically between test cases.
*/
package app

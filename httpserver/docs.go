package httpserver

import (
	"net/http"
	"path"
	"path/filepath"
)

// ServeDocs exposes the API documentation assets. The directory assetDir is
// served under docsPath, and the documentation descriptor file is served at
// its fixed, well-known swaggerLocation. This is pure configuration; no
// documentation is generated at runtime.
func (srv *Server) ServeDocs(docsPath, assetDir, swaggerLocation string) {
	srv.mux.Get(swaggerLocation, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(assetDir, path.Base(swaggerLocation)))
	})

	srv.mux.Get(docsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPath+"/", http.StatusMovedPermanently)
	})
	srv.mux.Get(docsPath+"/*", http.StripPrefix(docsPath, http.FileServer(http.Dir(assetDir))).ServeHTTP)

	srv.log.Info("Documentation enabled", "docsPath", docsPath, "assetDir", assetDir, "swaggerLocation", swaggerLocation)
}

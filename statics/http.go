package statics

import (
	"net/http"
)

// ServeStatics serves the files under staticsDir, an admin UI or docs built
// separately.
func ServeStatics(staticsDir string) http.HandlerFunc {
	return http.FileServer(http.Dir(staticsDir)).ServeHTTP
}

package api

import (
	"fmt"
	"net/http"
)

// MethodNotAllowedHandler answers a known path called with the wrong method.
// Image routes are read-only apart from DELETE, user routes apart from PATCH.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: fmt.Sprintf("%s is not allowed on %s", r.Method, r.URL.Path)})
	}
}

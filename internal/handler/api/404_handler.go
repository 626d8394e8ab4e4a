package api

import (
	"fmt"
	"net/http"
)

// NotFoundHandler answers routes the router does not know, in the same
// {"error": ...} shape as every other failure.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("no endpoint at %s", r.URL.Path)})
	}
}

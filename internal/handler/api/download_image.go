package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/usecase/image"
)

func DownloadImageHandler(svc port.DownloadLinkGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "image ID is required", nil)
			return
		}

		url, err := svc.GenerateDownloadLink(r.Context(), id)
		if err != nil {
			if errors.Is(err, image.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Image not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not generate download link", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, url, http.StatusFound)
	}
}
